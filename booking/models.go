package booking

import (
	"encoding/json"

	"github.com/KevinW1998/nightjetter/domain/entities/offer"
	"github.com/KevinW1998/nightjetter/domain/entities/passenger"
)

type (
	initRequest struct {
		Lang string `json:"lang"`
	}

	initResponse struct {
		PublicID string `json:"publicId"`
		Token    string `json:"token"`
	}

	stationResponse struct {
		Number interface{} `json:"number"`
		Name   string      `json:"name"`
	}

	connectionResponse struct {
		Results *[]connectionResult `json:"results"`
	}

	connectionResult struct {
		Train interface{}         `json:"train"`
		From  *connectionEndpoint `json:"from"`
	}

	connectionEndpoint struct {
		DepartureMillis interface{} `json:"dep_dt"`
	}
)

type (
	offerRequest struct {
		From       string                    `json:"njFrom"`
		Departure  int64                     `json:"njDep"`
		To         string                    `json:"njTo"`
		MaxChanges int                       `json:"maxChanges"`
		Filter     offerFilter               `json:"filter"`
		Objects    []passenger.RequestObject `json:"objects"`
		Relations  []interface{}             `json:"relations"`
		Lang       string                    `json:"lang"`
	}

	offerFilter struct {
		Train     string `json:"njTrain"`
		Departure int64  `json:"njDeparture"`
	}

	offerResponse struct {
		Error  json.RawMessage `json:"error"`
		Result *[]*offerResult `json:"result"`
	}

	offerResult struct {
		Connections []offerConnection `json:"connections"`
	}

	offerConnection struct {
		Offers *[]offer.Offer `json:"offers"`
	}
)
