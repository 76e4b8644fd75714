package collector

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
	"github.com/KevinW1998/nightjetter/utils"
)

const collectorStr = "collector"

// DaySampler samples a single calendar day
type DaySampler interface {
	Sample(ctx context.Context, day time.Time) (timeseries.DaySample, error)
}

// Collector drives a day sampler across a contiguous range of days
type Collector struct {
	sampler  DaySampler
	fromName string
	toName   string
}

func NewCollector(sampler DaySampler, fromName string, toName string) *Collector {
	return &Collector{
		sampler:  sampler,
		fromName: fromName,
		toName:   toName,
	}
}

// Collect samples advanceDays consecutive days starting at start, one at a time and in date order.
// Days without data keep their slot in the window. The first sampling error aborts the collection.
func (c *Collector) Collect(ctx context.Context, start time.Time, advanceDays int) (*timeseries.Window, error) {
	if advanceDays < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowLength, advanceDays)
	}

	window := timeseries.NewWindow(start, advanceDays)
	for _, day := range utils.DaysFrom(start, advanceDays) {
		sample, err := c.sampler.Sample(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("error sampling %s: %w", utils.FormatDate(day), err)
		}

		if err := window.Add(sample); err != nil {
			return nil, err
		}
		log.Infof("[component: %s][status: OK] Processing connection from %s to %s at %s", collectorStr, c.fromName, c.toName, utils.FormatDate(day))
	}

	log.Infof("[component: %s][status: OK] collected %d days from %s to %s, %d with data, %d categories",
		collectorStr, window.Len(), c.fromName, c.toName, window.CountAvailable(), len(window.Categories()))
	return window, nil
}
