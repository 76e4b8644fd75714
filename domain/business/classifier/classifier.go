package classifier

import (
	"fmt"

	"github.com/KevinW1998/nightjetter/domain/entities/offer"
)

// CategoryPrices total price per accommodation category identifier
type CategoryPrices map[string]float64

// Classification result of classifying the offers of one day
// + Level: availability level, derived from the full refund prices only
// + NonRefundable, PartialRefund, FullRefund: price of every category per refund tier
type Classification struct {
	Level         AvailabilityLevel `json:"level"`
	NonRefundable CategoryPrices    `json:"non_refundable"`
	PartialRefund CategoryPrices    `json:"partial_refund"`
	FullRefund    CategoryPrices    `json:"full_refund"`
}

func newClassification() Classification {
	return Classification{
		Level:         None,
		NonRefundable: CategoryPrices{},
		PartialRefund: CategoryPrices{},
		FullRefund:    CategoryPrices{},
	}
}

// Prices returns the category prices of the given tier
func (c Classification) Prices(tier RefundTier) CategoryPrices {
	switch tier {
	case NonRefundable:
		return c.NonRefundable
	case PartialRefund:
		return c.PartialRefund
	case FullRefund:
		return c.FullRefund
	}
	return nil
}

// Classifier turns raw offers into an availability level and per tier category prices. It performs no I/O.
type Classifier struct {
	levels LevelTable
}

// NewClassifier builds a classifier over a copy of the given level table
func NewClassifier(levels LevelTable) *Classifier {
	return &Classifier{
		levels: levels.clone(),
	}
}

// Classify the offers of one day. Offers without a known refund label are skipped.
// When a category appears more than once within a tier, the last compartment wins.
func (c *Classifier) Classify(offers []offer.Offer) (Classification, error) {
	result := newClassification()

	for idx, o := range offers {
		tier, ok := tierOf(o)
		if !ok {
			continue
		}

		segments := o.Reservation.ReservationSegments
		if len(segments) == 0 {
			return Classification{}, fmt.Errorf("%w: offer %d has no reservation segments", ErrMalformedOffer, idx)
		}

		prices := result.Prices(tier)
		for _, compartment := range segments[0].Compartments {
			if compartment.ExternalIdentifier == "" {
				return Classification{}, fmt.Errorf("%w: offer %d has a compartment without external identifier", ErrMalformedOffer, idx)
			}
			total, err := compartmentPrice(compartment)
			if err != nil {
				return Classification{}, fmt.Errorf("offer %d: %w", idx, err)
			}
			prices[compartment.ExternalIdentifier] = total
		}
	}

	result.Level = c.levels.Level(result.FullRefund)
	return result, nil
}

// compartmentPrice sums every priced object of the compartment. Missing objects or prices are malformed.
func compartmentPrice(compartment offer.Compartment) (float64, error) {
	objects := compartment.Objects
	if compartment.HasPrivateVariations() {
		variations := compartment.PrivateVariations
		if len(variations) == 0 || len(variations[0].Allocations) == 0 {
			return 0, fmt.Errorf("%w: compartment %s has a private variation without allocations", ErrMalformedOffer, compartment.ExternalIdentifier)
		}
		objects = variations[0].Allocations[0].Objects
	}
	if objects == nil {
		return 0, fmt.Errorf("%w: compartment %s has no priced objects", ErrMalformedOffer, compartment.ExternalIdentifier)
	}

	var total float64
	for idx, object := range objects {
		if object.Price == nil {
			return 0, fmt.Errorf("%w: compartment %s object %d has no price", ErrMalformedOffer, compartment.ExternalIdentifier, idx)
		}
		total += *object.Price
	}
	return total, nil
}
