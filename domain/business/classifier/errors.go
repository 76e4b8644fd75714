package classifier

import "errors"

var ErrMalformedOffer = errors.New("malformed offer")
