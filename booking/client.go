package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/KevinW1998/nightjetter/domain/entities/connection"
	"github.com/KevinW1998/nightjetter/domain/entities/offer"
	"github.com/KevinW1998/nightjetter/domain/entities/passenger"
	"github.com/KevinW1998/nightjetter/domain/entities/station"
)

const (
	clientStr         = "booking-client"
	contentTypeJson   = "application/json"
	connectionDateFmt = "02012006"

	endpointInit        = "init"
	endpointStations    = "stations"
	endpointConnections = "connections"
	endpointOffers      = "offers"
)

// RequestObserver receives the outcome of every request sent to the booking platform
type RequestObserver interface {
	ObserveBookingRequest(endpoint string, duration time.Duration, err error)
}

// Config parameters of the booking platform client
type Config struct {
	BaseURL  string
	Referer  string
	Language string
	Country  string
	Timeout  time.Duration
	Location *time.Location
}

// Client HTTP client of the booking platform. A client owns one session, started by NewClient.
type Client struct {
	httpClient *http.Client
	config     Config
	observer   RequestObserver
	publicID   string
	token      string
}

// NewClient starts a booking session. The session cookie is kept in the client's cookie jar.
func NewClient(ctx context.Context, config Config, observer RequestObserver) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	client := &Client{
		httpClient: &http.Client{Jar: jar, Timeout: config.Timeout},
		config:     config,
		observer:   observer,
	}

	var session initResponse
	err = client.doRequest(ctx, endpointInit, http.MethodPost, client.config.BaseURL+"/nj-booking/init/start", initRequest{Lang: config.Language}, &session)
	if err != nil {
		return nil, fmt.Errorf("error starting booking session: %w", err)
	}
	if session.PublicID == "" || session.Token == "" {
		return nil, fmt.Errorf("%w: session response without publicId or token", ErrMalformedResponse)
	}

	client.publicID = session.PublicID
	client.token = session.Token
	log.Debugf("[client: %s][method: NewClient][status: OK] session started", clientStr)
	return client, nil
}

// FindStation resolves a station name. The first match with a name is taken.
func (c *Client) FindStation(ctx context.Context, name string) (station.Station, error) {
	query := url.Values{}
	query.Set("lang", c.config.Language)
	query.Set("country", c.config.Country)
	query.Set("name", name)

	var stations []stationResponse
	err := c.doRequest(ctx, endpointStations, http.MethodGet, c.config.BaseURL+"/nj-booking/stations/find?"+query.Encode(), nil, &stations)
	if err != nil {
		return station.Station{}, err
	}

	for _, candidate := range stations {
		if candidate.Name == "" {
			continue
		}
		id, err := cast.ToStringE(candidate.Number)
		if err != nil || id == "" {
			return station.Station{}, fmt.Errorf("%w: station %s without number", ErrMalformedResponse, candidate.Name)
		}
		return station.NewStation(id, candidate.Name), nil
	}

	return station.Station{}, fmt.Errorf("%w: %s", ErrStationNotFound, name)
}

// FindConnection returns the first direct connection searched from midnight of day. The departure of the
// returned connection may fall on another day when the platform has no train on day.
func (c *Client) FindConnection(ctx context.Context, from station.Station, to station.Station, day time.Time) (connection.Connection, error) {
	endpoint := fmt.Sprintf("%s/nj-booking/connection/find/%s/%s/%s/00:00?skip=0&limit=1&backward=false&lang=%s",
		c.config.BaseURL,
		url.PathEscape(from.ID),
		url.PathEscape(to.ID),
		day.In(c.config.Location).Format(connectionDateFmt),
		url.QueryEscape(c.config.Language),
	)

	var response connectionResponse
	if err := c.doRequest(ctx, endpointConnections, http.MethodGet, endpoint, nil, &response); err != nil {
		return connection.Connection{}, err
	}
	if response.Results == nil {
		return connection.Connection{}, fmt.Errorf("%w: connection response without results", ErrMalformedResponse)
	}
	if len(*response.Results) == 0 {
		return connection.Connection{}, ErrNoConnection
	}

	first := (*response.Results)[0]
	train, err := cast.ToStringE(first.Train)
	if err != nil || train == "" {
		return connection.Connection{}, fmt.Errorf("%w: connection without train", ErrMalformedResponse)
	}
	if first.From == nil {
		return connection.Connection{}, fmt.Errorf("%w: connection without departure", ErrMalformedResponse)
	}
	departureMillis, err := cast.ToInt64E(first.From.DepartureMillis)
	if err != nil || departureMillis == 0 {
		return connection.Connection{}, fmt.Errorf("%w: invalid departure timestamp %v", ErrMalformedResponse, first.From.DepartureMillis)
	}

	return connection.NewConnection(train, time.UnixMilli(departureMillis).In(c.config.Location)), nil
}

// PriceItinerary returns the offers of a connection for the given passengers
func (c *Client) PriceItinerary(ctx context.Context, from station.Station, to station.Station, conn connection.Connection, passengers []passenger.Passenger) ([]offer.Offer, error) {
	request := offerRequest{
		From:       from.ID,
		Departure:  conn.DepartureMillis(),
		To:         to.ID,
		MaxChanges: 0,
		Filter: offerFilter{
			Train:     conn.Train,
			Departure: conn.DepartureMillis(),
		},
		Objects:   passenger.ToRequestObjects(passengers, time.Now().In(c.config.Location)),
		Relations: []interface{}{},
		Lang:      c.config.Language,
	}

	var response offerResponse
	if err := c.doRequest(ctx, endpointOffers, http.MethodPost, c.config.BaseURL+"/nj-booking/offer/get", request, &response); err != nil {
		return nil, err
	}

	if len(response.Error) > 0 {
		log.Debugf("[client: %s][method: PriceItinerary][status: OK] platform reported an error: %s", clientStr, string(response.Error))
		return nil, ErrNoOffers
	}
	if response.Result == nil || len(*response.Result) == 0 {
		return nil, fmt.Errorf("%w: offer response without result", ErrMalformedResponse)
	}

	first := (*response.Result)[0]
	if first == nil {
		return nil, ErrNoOffers
	}
	if len(first.Connections) == 0 || first.Connections[0].Offers == nil {
		return nil, fmt.Errorf("%w: offer result without connection offers", ErrMalformedResponse)
	}

	return *first.Connections[0].Offers, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, method string, rawURL string, body interface{}, out interface{}) (err error) {
	started := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBookingRequest(endpoint, time.Since(started), err)
		}
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling %s request: %w", endpoint, err)
		}
		reader = bytes.NewBuffer(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("error creating %s request: %w", endpoint, err)
	}

	request.Header.Set("Accept", contentTypeJson)
	if c.config.Referer != "" {
		request.Header.Set("Referer", c.config.Referer)
	}
	if body != nil {
		request.Header.Set("Content-Type", contentTypeJson)
	}
	if c.publicID != "" {
		request.Header.Set("X-Public-ID", c.publicID)
		request.Header.Set("X-Token", c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("error sending %s request: %w", endpoint, err)
	}
	defer response.Body.Close()

	respBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("error reading %s response: %w", endpoint, err)
	}

	if response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %d: %s", ErrUnexpectedStatus, endpoint, response.StatusCode, string(respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrMalformedResponse, endpoint, err.Error())
	}

	log.Tracef("[client: %s][endpoint: %s][status: OK] %s %s", clientStr, endpoint, method, rawURL)
	return nil
}
