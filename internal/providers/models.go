package providers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyQuery         = errors.New("location cannot be empty")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// WeatherResult is only produced by a successful parse of a provider response.
type WeatherResult struct {
	TemperatureCelsius float64 `json:"temperature"`
	Description        string  `json:"description"`
	CityName           string  `json:"city"`
}

type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Lat: %s, Lon: %s", formatCoordinate(c.Latitude), formatCoordinate(c.Longitude))
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinates, c)
	}
	return nil
}

// Query selects a lookup either by city name or by coordinates. Coords wins when both are set.
type Query struct {
	City   string
	Coords *Coordinates
}

func CityQuery(city string) Query {
	return Query{City: city}
}

func CoordinatesQuery(lat, lon float64) Query {
	return Query{Coords: &Coordinates{Latitude: lat, Longitude: lon}}
}

func (q Query) Validate() error {
	if q.Coords != nil {
		return q.Coords.Validate()
	}
	if strings.TrimSpace(q.City) == "" {
		return ErrEmptyQuery
	}
	return nil
}

func (q Query) String() string {
	if q.Coords != nil {
		return q.Coords.String()
	}
	return q.City
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
