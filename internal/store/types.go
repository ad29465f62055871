package store

import "errors"

// ErrNotOpen is returned by every operation on a store without a database handle.
var ErrNotOpen = errors.New("database not opened")

// ErrInvalidFlight is returned by AddFlight when the input fails validation.
var ErrInvalidFlight = errors.New("invalid flight")

// FlightNumber is a flight number label, stored once and referenced by id.
type FlightNumber struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Flight is a persisted flight row together with its flight number title.
type Flight struct {
	ID             int64
	Destination    string
	FlightNumberID int64
	FlightNumber   string
	AirplaneType   string
}

// NewFlight is the input to AddFlight. The flight number is given by title
// and resolved to an id inside the write transaction.
type NewFlight struct {
	Destination  string `json:"destination" validate:"required"`
	FlightNumber string `json:"flight_number" validate:"required"`
	AirplaneType string `json:"airplane_type" validate:"required"`
}

// FlightView is a flight joined with its flight number title.
type FlightView struct {
	Destination  string `json:"destination" yaml:"destination"`
	FlightNumber string `json:"flight_number" yaml:"flight_number"`
	AirplaneType string `json:"airplane_type" yaml:"airplane_type"`
}
