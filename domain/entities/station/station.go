package station

// Station a stop known by the booking platform
// + ID: platform station number, used in every connection and offer request
// + Name: canonical name as returned by the platform (may differ from the name used in the lookup)
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewStation(id string, name string) Station {
	return Station{
		ID:   id,
		Name: name,
	}
}
