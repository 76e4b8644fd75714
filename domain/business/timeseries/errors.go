package timeseries

import "errors"

var ErrMisalignedSample = errors.New("sample does not belong to the next day of the window")
