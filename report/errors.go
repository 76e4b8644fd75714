package report

import "errors"

var (
	ErrEmptyHeader = errors.New("report header cannot be empty")
	ErrEmptyWindow = errors.New("cannot write a report for an empty window")
	ErrMissingFile = errors.New("report file does not exist")
)
