package classifier

import "github.com/KevinW1998/nightjetter/domain/entities/offer"

// RefundTier cancellation policy class of an offer
type RefundTier uint8

const (
	NonRefundable RefundTier = iota
	PartialRefund
	FullRefund
)

// policy labels set by the booking platform on each offer
const (
	nonRefundableLabel = "Kein Storno"
	partialRefundLabel = "komfortticketStorno"
	fullRefundLabel    = "Vollstorno"
)

// Tiers returns every refund tier in report order
func Tiers() []RefundTier {
	return []RefundTier{NonRefundable, PartialRefund, FullRefund}
}

// Tag short name of the tier used in report file names
func (rt RefundTier) Tag() string {
	switch rt {
	case NonRefundable:
		return "spar"
	case PartialRefund:
		return "komf"
	case FullRefund:
		return "flex"
	}
	return "unknown"
}

func (rt RefundTier) String() string {
	switch rt {
	case NonRefundable:
		return "NonRefundable"
	case PartialRefund:
		return "PartialRefund"
	case FullRefund:
		return "FullRefund"
	}
	return "Unknown"
}

// tierOf derives the refund tier from the policy labels of an offer.
// Precedence: non-refundable, partial refund, full refund. The second value is false when no marker is present.
func tierOf(o offer.Offer) (RefundTier, bool) {
	if o.HasLabel(nonRefundableLabel) {
		return NonRefundable, true
	}
	if o.HasLabel(partialRefundLabel) {
		return PartialRefund, true
	}
	if o.HasLabel(fullRefundLabel) {
		return FullRefund, true
	}
	return 0, false
}
