package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinW1998/nightjetter/booking"
	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/entities/connection"
	"github.com/KevinW1998/nightjetter/domain/entities/offer"
	"github.com/KevinW1998/nightjetter/domain/entities/passenger"
	"github.com/KevinW1998/nightjetter/domain/entities/station"
)

type fakeService struct {
	conn           connection.Connection
	connErr        error
	offers         []offer.Offer
	offersErr      error
	priceCalls     int
	lastPassengers []passenger.Passenger
}

func (fs *fakeService) FindConnection(_ context.Context, _ station.Station, _ station.Station, _ time.Time) (connection.Connection, error) {
	return fs.conn, fs.connErr
}

func (fs *fakeService) PriceItinerary(_ context.Context, _ station.Station, _ station.Station, _ connection.Connection, passengers []passenger.Passenger) ([]offer.Offer, error) {
	fs.priceCalls += 1
	fs.lastPassengers = passengers
	return fs.offers, fs.offersErr
}

type countingObserver map[string]int

func (co countingObserver) ObserveDaySample(outcome string) {
	co[outcome] += 1
}

var (
	day  = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	from = station.NewStation("8096003", "Berlin Hbf")
	to   = station.NewStation("8796001", "Paris Est")
)

func bedOffer() offer.Offer {
	return offer.Offer{
		ProdGroupLabels: []string{"Vollstorno"},
		Reservation: offer.Reservation{ReservationSegments: []offer.ReservationSegment{{
			Compartments: []offer.Compartment{{ExternalIdentifier: "single", Objects: []offer.PricedObject{offer.NewPricedObject(100)}}},
		}}},
	}
}

func newSampler(service BookingService, observer OutcomeObserver) *DaySampler {
	passengers := []passenger.Passenger{passenger.NewPassenger(passenger.Male, passenger.Adult, passenger.Klimaticket)}
	return NewDaySampler(service, classifier.NewClassifier(classifier.DefaultLevelTable()), from, to, passengers, observer)
}

func TestSamplePricedDay(t *testing.T) {
	service := &fakeService{
		conn:   connection.NewConnection("NJ 40490", day.Add(19*time.Hour+40*time.Minute)),
		offers: []offer.Offer{bedOffer()},
	}
	observer := countingObserver{}

	sample, err := newSampler(service, observer).Sample(context.Background(), day)

	require.NoError(t, err)
	assert.True(t, sample.HasData())
	assert.Equal(t, day, sample.Date)
	level, ok := sample.Level()
	assert.True(t, ok)
	assert.Equal(t, classifier.Bed, level)
	assert.Equal(t, classifier.CategoryPrices{"single": 100}, sample.Classification.FullRefund)
	assert.Equal(t, 1, observer[OutcomePriced])
	require.Len(t, service.lastPassengers, 1)
}

func TestSampleNoDataOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		service    *fakeService
		outcome    string
		priceCalls int
	}{
		{
			name:    "no connection",
			service: &fakeService{connErr: booking.ErrNoConnection},
			outcome: OutcomeNoConnection,
		},
		{
			name:    "first connection departs another day",
			service: &fakeService{conn: connection.NewConnection("NJ 40490", day.AddDate(0, 0, 1).Add(time.Hour))},
			outcome: OutcomeOtherDay,
		},
		{
			name: "platform reports no offers",
			service: &fakeService{
				conn:      connection.NewConnection("NJ 40490", day.Add(20*time.Hour)),
				offersErr: booking.ErrNoOffers,
			},
			outcome:    OutcomeNoOffers,
			priceCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observer := countingObserver{}

			sample, err := newSampler(tt.service, observer).Sample(context.Background(), day)

			require.NoError(t, err)
			assert.False(t, sample.HasData())
			assert.Equal(t, day, sample.Date)
			assert.Equal(t, 1, observer[tt.outcome])
			assert.Equal(t, tt.priceCalls, tt.service.priceCalls)
		})
	}
}

func TestSamplePropagatesUnexpectedFailures(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name    string
		service *fakeService
		wantErr error
	}{
		{
			name:    "connection lookup failure",
			service: &fakeService{connErr: boom},
			wantErr: boom,
		},
		{
			name:    "malformed offers response",
			service: &fakeService{conn: connection.NewConnection("NJ 1", day.Add(time.Hour)), offersErr: booking.ErrMalformedResponse},
			wantErr: booking.ErrMalformedResponse,
		},
		{
			name:    "malformed offer",
			service: &fakeService{conn: connection.NewConnection("NJ 1", day.Add(time.Hour)), offers: []offer.Offer{{ProdGroupLabels: []string{"Vollstorno"}}}},
			wantErr: classifier.ErrMalformedOffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSampler(tt.service, nil).Sample(context.Background(), day)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDaySamplerCopiesPassengers(t *testing.T) {
	service := &fakeService{conn: connection.NewConnection("NJ 1", day.Add(time.Hour)), offers: []offer.Offer{bedOffer()}}
	passengers := []passenger.Passenger{passenger.NewPassenger(passenger.Female, passenger.Kid)}
	s := NewDaySampler(service, classifier.NewClassifier(classifier.DefaultLevelTable()), from, to, passengers, nil)
	passengers[0] = passenger.NewPassenger(passenger.Male, passenger.Adult)

	_, err := s.Sample(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, passenger.Female, service.lastPassengers[0].Gender)
}
