package connection

import "time"

// Connection first direct train found for a day
// + Train: platform train identifier, echoed back when pricing
// + Departure: departure timestamp at the origin station
type Connection struct {
	Train     string    `json:"train"`
	Departure time.Time `json:"departure"`
}

func NewConnection(train string, departure time.Time) Connection {
	return Connection{
		Train:     train,
		Departure: departure,
	}
}

// DepartureMillis returns the departure as epoch milliseconds, the unit used by the booking platform
func (c Connection) DepartureMillis() int64 {
	return c.Departure.UnixMilli()
}
