package timeseries

import (
	"time"

	"github.com/KevinW1998/nightjetter/domain/business/classifier"
)

// DaySample outcome of sampling one calendar day
// + Date: sampled day
// + Available: false when there was no train or no priced offer for the day
// + Classification: classified offers. Empty when Available is false
type DaySample struct {
	Date           time.Time                 `json:"date"`
	Available      bool                      `json:"available"`
	Classification classifier.Classification `json:"classification"`
}

func NewDaySample(date time.Time, classification classifier.Classification) DaySample {
	return DaySample{
		Date:           date,
		Available:      true,
		Classification: classification,
	}
}

// NoData sentinel sample for a day without train or without priced offers
func NoData(date time.Time) DaySample {
	return DaySample{
		Date: date,
	}
}

func (ds DaySample) HasData() bool {
	return ds.Available
}

// Level returns the availability level of the day. The second value is false for a no data sample.
func (ds DaySample) Level() (classifier.AvailabilityLevel, bool) {
	if !ds.Available {
		return classifier.None, false
	}
	return ds.Classification.Level, true
}

// Price returns the price of a category in a refund tier. The second value is false when the category
// was not offered that day, or when the day has no data.
func (ds DaySample) Price(tier classifier.RefundTier, category string) (float64, bool) {
	if !ds.Available {
		return 0, false
	}
	price, ok := ds.Classification.Prices(tier)[category]
	return price, ok
}

// Categories every category identifier seen in any refund tier of the day
func (ds DaySample) Categories() []string {
	if !ds.Available {
		return nil
	}
	var categories []string
	for _, tier := range classifier.Tiers() {
		for category := range ds.Classification.Prices(tier) {
			categories = append(categories, category)
		}
	}
	return categories
}
