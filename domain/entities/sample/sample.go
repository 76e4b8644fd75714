package sample

import "github.com/KevinW1998/nightjetter/domain/entities"

const SampleType = "day-sample"

// SampleMessage published form of a day sample
// + Metadata: metadata added to the structure
// + Date: sampled day (YYYY-MM-DD)
// + Index: offset of the day from the start of the window
// + Available: false when the day had no train or no priced offers
// + Level: availability level name. Empty when Available is false
// + Prices: refund tier tag (spar, komf, flex) to category to total price
type SampleMessage struct {
	Metadata  entities.Metadata             `json:"metadata"`
	Date      string                        `json:"date"`
	Index     int                           `json:"index"`
	Available bool                          `json:"available"`
	Level     string                        `json:"level,omitempty"`
	Prices    map[string]map[string]float64 `json:"prices,omitempty"`
}

func (sm SampleMessage) GetMetadata() entities.Metadata {
	return sm.Metadata
}
