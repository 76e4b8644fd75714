package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/booking"
	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
	"github.com/KevinW1998/nightjetter/domain/entities/connection"
	"github.com/KevinW1998/nightjetter/domain/entities/offer"
	"github.com/KevinW1998/nightjetter/domain/entities/passenger"
	"github.com/KevinW1998/nightjetter/domain/entities/station"
	"github.com/KevinW1998/nightjetter/utils"
)

const samplerStr = "day-sampler"

// Outcome of sampling one day
const (
	OutcomePriced       = "priced"
	OutcomeNoConnection = "no_connection"
	OutcomeOtherDay     = "other_day"
	OutcomeNoOffers     = "no_offers"
)

// BookingService operations of the booking platform used to sample a day
type BookingService interface {
	FindConnection(ctx context.Context, from station.Station, to station.Station, day time.Time) (connection.Connection, error)
	PriceItinerary(ctx context.Context, from station.Station, to station.Station, conn connection.Connection, passengers []passenger.Passenger) ([]offer.Offer, error)
}

// OutcomeObserver receives the outcome of every sampled day
type OutcomeObserver interface {
	ObserveDaySample(outcome string)
}

// DaySampler samples single days of a fixed route and passenger set
type DaySampler struct {
	service    BookingService
	classifier *classifier.Classifier
	from       station.Station
	to         station.Station
	passengers []passenger.Passenger
	observer   OutcomeObserver
}

// NewDaySampler builds a sampler. The passenger slice is copied, later changes by the caller are not seen.
func NewDaySampler(service BookingService, offerClassifier *classifier.Classifier, from station.Station, to station.Station, passengers []passenger.Passenger, observer OutcomeObserver) *DaySampler {
	ownPassengers := make([]passenger.Passenger, len(passengers))
	copy(ownPassengers, passengers)

	return &DaySampler{
		service:    service,
		classifier: offerClassifier,
		from:       from,
		to:         to,
		passengers: ownPassengers,
		observer:   observer,
	}
}

func (ds *DaySampler) getLogMessage(method string, day time.Time, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][route: %s-%s][day: %s][method: %s][status: ERROR] %s: %s", samplerStr, ds.from.Name, ds.to.Name, utils.FormatDate(day), method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][route: %s-%s][day: %s][method: %s][status: OK] %s", samplerStr, ds.from.Name, ds.to.Name, utils.FormatDate(day), method, message)
}

// Sample samples one day. Days without train, or whose train is not priced, return the no data sample.
// Any other failure of the booking service is returned as an error.
func (ds *DaySampler) Sample(ctx context.Context, day time.Time) (timeseries.DaySample, error) {
	conn, err := ds.service.FindConnection(ctx, ds.from, ds.to, day)
	if errors.Is(err, booking.ErrNoConnection) {
		log.Debug(ds.getLogMessage("Sample", day, "no connection", nil))
		return ds.noData(day, OutcomeNoConnection), nil
	}
	if err != nil {
		log.Error(ds.getLogMessage("Sample", day, "error finding connection", err))
		return timeseries.DaySample{}, err
	}

	if !utils.SameDay(day, conn.Departure) {
		log.Debug(ds.getLogMessage("Sample", day, fmt.Sprintf("first connection departs on %s", utils.FormatDate(conn.Departure.In(day.Location()))), nil))
		return ds.noData(day, OutcomeOtherDay), nil
	}

	offers, err := ds.service.PriceItinerary(ctx, ds.from, ds.to, conn, ds.passengers)
	if errors.Is(err, booking.ErrNoOffers) {
		log.Debug(ds.getLogMessage("Sample", day, fmt.Sprintf("train %s has no priced offers", conn.Train), nil))
		return ds.noData(day, OutcomeNoOffers), nil
	}
	if err != nil {
		log.Error(ds.getLogMessage("Sample", day, "error pricing itinerary", err))
		return timeseries.DaySample{}, err
	}

	classification, err := ds.classifier.Classify(offers)
	if err != nil {
		log.Error(ds.getLogMessage("Sample", day, "error classifying offers", err))
		return timeseries.DaySample{}, err
	}

	ds.observe(OutcomePriced)
	log.Debug(ds.getLogMessage("Sample", day, fmt.Sprintf("train %s: %d offers, level %s", conn.Train, len(offers), classification.Level), nil))
	return timeseries.NewDaySample(day, classification), nil
}

func (ds *DaySampler) noData(day time.Time, outcome string) timeseries.DaySample {
	ds.observe(outcome)
	return timeseries.NoData(day)
}

func (ds *DaySampler) observe(outcome string) {
	if ds.observer != nil {
		ds.observer.ObserveDaySample(outcome)
	}
}
