package eof

import "github.com/KevinW1998/nightjetter/domain/entities"

const eofType = "EOF"

// EOFData struct that closes the stream of samples of a window. Has the metadata that is in all domain entities.
// + Metadata: metadata added to the structure
type EOFData struct {
	Metadata entities.Metadata `json:"metadata"`
}

func NewEOF(runID string, route string, stage string, eofMessage string) *EOFData {
	return &EOFData{
		Metadata: entities.NewMetadata(runID, route, eofType, stage, eofMessage),
	}
}

func (eof EOFData) GetMetadata() entities.Metadata {
	return eof.Metadata
}
