package collector

import "errors"

var ErrInvalidWindowLength = errors.New("window length must be at least one day")
