package booking

import "errors"

var (
	ErrStationNotFound   = errors.New("station not found")
	ErrNoConnection      = errors.New("no connection found")
	ErrNoOffers          = errors.New("no priced offers")
	ErrMalformedResponse = errors.New("malformed booking response")
	ErrUnexpectedStatus  = errors.New("unexpected booking response status")
)
