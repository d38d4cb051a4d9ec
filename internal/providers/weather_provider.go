package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	metricUnits        = "metric"
	maxBodySize        = 1 << 20
)

var tracer = otel.Tracer("ulascansenturk/weather-fetcher/providers")

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string) (WeatherResult, error)
	FetchByCoordinates(ctx context.Context, coords Coordinates) (WeatherResult, error)
	FetchQuery(ctx context.Context, query Query) (WeatherResult, error)
	GetHTTPClient() *http.Client
}

type openWeatherMapFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherMapFetcher(apiKey, baseURL string, timeout time.Duration) WeatherFetcher {
	return &openWeatherMapFetcher{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Pointer fields tell a missing key apart from a zero value.
type currentWeatherResponse struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Name *string `json:"name"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *openWeatherMapFetcher) Fetch(ctx context.Context, city string) (WeatherResult, error) {
	params := url.Values{}
	params.Set("q", city)

	return s.fetchCurrent(ctx, city, params)
}

func (s *openWeatherMapFetcher) FetchByCoordinates(ctx context.Context, coords Coordinates) (WeatherResult, error) {
	params := url.Values{}
	params.Set("lat", formatCoordinate(coords.Latitude))
	params.Set("lon", formatCoordinate(coords.Longitude))

	return s.fetchCurrent(ctx, coords.String(), params)
}

func (s *openWeatherMapFetcher) FetchQuery(ctx context.Context, query Query) (WeatherResult, error) {
	if query.Coords != nil {
		return s.FetchByCoordinates(ctx, *query.Coords)
	}
	return s.Fetch(ctx, query.City)
}

func (s *openWeatherMapFetcher) GetHTTPClient() *http.Client {
	return s.client
}

func (s *openWeatherMapFetcher) fetchCurrent(ctx context.Context, location string, params url.Values) (WeatherResult, error) {
	ctx, span := tracer.Start(ctx, "openweathermap.current")
	defer span.End()
	span.SetAttributes(attribute.String("weather.query", location))

	result, err := s.doFetch(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Kind(err))
		log.Debug().Err(err).Str("location", location).Str("kind", Kind(err)).Msg("weather fetch failed")
		return WeatherResult{}, err
	}

	span.SetAttributes(attribute.String("weather.city", result.CityName))
	return result, nil
}

func (s *openWeatherMapFetcher) doFetch(ctx context.Context, params url.Values) (WeatherResult, error) {
	params.Set("appid", s.apiKey)
	params.Set("units", metricUnits)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+currentWeatherPath+"?"+params.Encode(), nil)
	if err != nil {
		return WeatherResult{}, &NetworkError{Detail: "failed to build request", Err: redactKey(err, s.apiKey)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return WeatherResult{}, &NetworkError{Detail: "request failed", Err: redactKey(err, s.apiKey)}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode != http.StatusOK {
		providerErr := &ProviderError{StatusCode: resp.StatusCode}
		var errBody errorResponse
		if readErr == nil && json.Unmarshal(body, &errBody) == nil {
			providerErr.Message = errBody.Message
		}
		return WeatherResult{}, providerErr
	}

	if readErr != nil {
		return WeatherResult{}, &NetworkError{Detail: "failed to read response body", Err: readErr}
	}

	return parseCurrentWeather(body)
}

func parseCurrentWeather(body []byte) (WeatherResult, error) {
	var apiResp currentWeatherResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return WeatherResult{}, &ParseError{Detail: "invalid JSON", Err: err}
	}

	if apiResp.Main == nil || apiResp.Main.Temp == nil {
		return WeatherResult{}, &ParseError{Detail: "missing main.temp"}
	}

	if len(apiResp.Weather) == 0 {
		return WeatherResult{}, &ParseError{Detail: "empty weather array"}
	}

	if apiResp.Weather[0].Description == nil {
		return WeatherResult{}, &ParseError{Detail: "missing weather[0].description"}
	}

	if apiResp.Name == nil {
		return WeatherResult{}, &ParseError{Detail: "missing name"}
	}

	return WeatherResult{
		TemperatureCelsius: *apiResp.Main.Temp,
		Description:        *apiResp.Weather[0].Description,
		CityName:           *apiResp.Name,
	}, nil
}

// redactKey keeps the API key out of *url.Error messages, which embed the full request URL.
// Both transport and request-building failures produce them.
func redactKey(err error, apiKey string) error {
	urlErr, ok := err.(*url.Error)
	if !ok || apiKey == "" {
		return err
	}

	redacted := strings.ReplaceAll(urlErr.URL, url.QueryEscape(apiKey), "REDACTED")
	redacted = strings.ReplaceAll(redacted, apiKey, "REDACTED")

	return &url.Error{
		Op:  urlErr.Op,
		URL: redacted,
		Err: urlErr.Err,
	}
}
