package chrono

import "time"

// API is the interface that anything depending on the system clock should use.
type API interface {
	Now() time.Time
	Location() *time.Location
}

type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl reports the local time of the machine running the scraper.
func NewStandardImpl() StandardImpl {
	return StandardImpl{location: time.Local}
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func NewFixed(year int, month time.Month, day int) Fixed {
	return Fixed{At: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Location() *time.Location {
	return f.At.Location()
}
