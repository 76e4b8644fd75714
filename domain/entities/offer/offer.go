package offer

import (
	"bytes"
	"encoding/json"

	"github.com/KevinW1998/nightjetter/utils"
)

// Offer one priced option returned by the booking platform for a train and a day
// + ProdGroupLabels: policy labels, used to derive the refund tier
// + Reservation: reservation segments of the itinerary. Only the first segment is relevant for direct trains
type Offer struct {
	ProdGroupLabels []string    `json:"prodGroupLabels"`
	Reservation     Reservation `json:"reservation"`
}

type Reservation struct {
	ReservationSegments []ReservationSegment `json:"reservationSegments"`
}

type ReservationSegment struct {
	Compartments []Compartment `json:"compartments"`
}

// Compartment purchasable unit within a segment (seat, couchette, cabin).
// Private cabins carry their priced objects inside the first allocation of the first private variation,
// every other compartment carries them directly in Objects. A nil Objects slice means the key was missing.
type Compartment struct {
	ExternalIdentifier string             `json:"externalIdentifier"`
	Objects            []PricedObject     `json:"objects,omitempty"`
	PrivateVariations  []PrivateVariation `json:"privateVariations,omitempty"`
}

type PrivateVariation struct {
	Allocations []Allocation `json:"allocations"`
}

type Allocation struct {
	Objects []PricedObject `json:"objects"`
}

// PricedObject one priced item of a compartment. Price is nil when the platform sent no price.
type PricedObject struct {
	Price *float64 `json:"price"`
}

func NewPricedObject(price float64) PricedObject {
	return PricedObject{Price: &price}
}

// UnmarshalJSON keeps an explicit "privateVariations": null on the private path, as an empty variation list
func (c *Compartment) UnmarshalJSON(data []byte) error {
	type compartmentAlias Compartment
	var raw struct {
		compartmentAlias
		PrivateVariations json.RawMessage `json:"privateVariations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Compartment(raw.compartmentAlias)
	c.PrivateVariations = nil
	if raw.PrivateVariations == nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw.PrivateVariations), []byte("null")) {
		c.PrivateVariations = []PrivateVariation{}
		return nil
	}

	var variations []PrivateVariation
	if err := json.Unmarshal(raw.PrivateVariations, &variations); err != nil {
		return err
	}
	if variations == nil {
		variations = []PrivateVariation{}
	}
	c.PrivateVariations = variations
	return nil
}

// HasPrivateVariations reports whether the compartment is priced through private variations
func (c Compartment) HasPrivateVariations() bool {
	return c.PrivateVariations != nil
}

// HasLabel reports whether the offer carries the given policy label
func (o Offer) HasLabel(label string) bool {
	return utils.ContainsString(label, o.ProdGroupLabels)
}
