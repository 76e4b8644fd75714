package timeseries

import (
	"fmt"
	"time"

	"github.com/KevinW1998/nightjetter/utils"
)

// Window contiguous run of day samples for one route, passenger set and start date.
// + Start: first sampled day. Sample i always belongs to Start + i days
// + samples: collected samples, in date order
// + categories: union of the category identifiers seen in any tier of any day
type Window struct {
	Start      time.Time
	samples    []DaySample
	categories map[string]struct{}
}

func NewWindow(start time.Time, expectedDays int) *Window {
	if expectedDays < 0 {
		expectedDays = 0
	}
	return &Window{
		Start:      start,
		samples:    make([]DaySample, 0, expectedDays),
		categories: make(map[string]struct{}),
	}
}

// NextDate day expected by the next call to Add
func (w *Window) NextDate() time.Time {
	return w.Start.AddDate(0, 0, len(w.samples))
}

// Add appends the sample of the next day and updates the category union. A sample for any other day is rejected.
func (w *Window) Add(sample DaySample) error {
	expected := w.NextDate()
	if !utils.SameDay(expected, sample.Date) {
		return fmt.Errorf("%w: expected %s, got %s", ErrMisalignedSample, utils.FormatDate(expected), utils.FormatDate(sample.Date))
	}

	w.samples = append(w.samples, sample)
	for _, category := range sample.Categories() {
		w.categories[category] = struct{}{}
	}
	return nil
}

func (w *Window) Len() int {
	return len(w.samples)
}

// Samples returns a copy of the collected samples
func (w *Window) Samples() []DaySample {
	samples := make([]DaySample, len(w.samples))
	copy(samples, w.samples)
	return samples
}

// Dates returns the day of every collected sample, in order
func (w *Window) Dates() []time.Time {
	return utils.DaysFrom(w.Start, len(w.samples))
}

// Categories returns the union of categories seen in the window, sorted
func (w *Window) Categories() []string {
	return utils.SortedKeys(w.categories)
}

// CountAvailable returns how many samples carry data
func (w *Window) CountAvailable() int {
	counter := 0
	for _, sample := range w.samples {
		if sample.HasData() {
			counter += 1
		}
	}
	return counter
}
