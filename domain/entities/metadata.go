package entities

// Metadata this struct will contain extra information about the data that travels in our system
// + RunID: identifier of the protocol run that produced the data
// + Route: route key (from_to) which belongs the data
// + Type: this field helps us to recognize what type of data is
// + Stage: stage were the Metadata was constructed
// + Message: message with extra information
type Metadata struct {
	RunID   string `json:"run_id"`
	Route   string `json:"route"`
	Type    string `json:"type"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func NewMetadata(runID string, route string, dataType string, stage string, message string) Metadata {
	return Metadata{
		RunID:   runID,
		Route:   route,
		Type:    dataType,
		Stage:   stage,
		Message: message,
	}
}

func (m Metadata) GetRunID() string {
	return m.RunID
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetMessage() string {
	return m.Message
}
