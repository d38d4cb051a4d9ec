package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
	"ulascansenturk/weather-fetcher/internal/providers"
	"ulascansenturk/weather-fetcher/internal/service"
	"ulascansenturk/weather-fetcher/internal/telemetry"
)

const SessionHeader = "X-Session-ID"

var errMissingLocation = errors.New("location parameter 'q' or 'lat' and 'lon' is required")

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
	router         chi.Router
}

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration) *WeatherHandler {
	h := &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Route("/v1", func(r chi.Router) {
		r.Get("/weather", h.GetWeather)
		r.Get("/sessions/{sessionID}/latest", h.GetLatest)
		r.Get("/history", h.GetHistory)
	})

	h.router = router

	return h
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(SessionHeader, sessionID)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	outcome, err := h.weatherService.GetWeather(ctx, sessionID, query)
	if err != nil {
		h.respondWithFetchError(r.Context(), w, sessionID, query, err)
		return
	}

	respondWithJSON(w, http.StatusOK, WeatherResponse{
		Token:       outcome.Token,
		Query:       query.String(),
		City:        outcome.Result.CityName,
		Temperature: outcome.Result.TemperatureCelsius,
		Description: outcome.Result.Description,
	})
}

func (h *WeatherHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snapshot, exists, err := h.weatherService.Latest(sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to read session snapshot")
		respondWithError(w, http.StatusInternalServerError, "failed to read session: "+err.Error())
		return
	}

	if !exists {
		respondWithError(w, http.StatusNotFound, "no weather result for session")
		return
	}

	respondWithJSON(w, http.StatusOK, LatestResponse{
		SessionID:   sessionID,
		Token:       snapshot.Token,
		Query:       snapshot.Query,
		City:        snapshot.City,
		Temperature: snapshot.Temperature,
		Description: snapshot.Description,
		Error:       snapshot.Error,
		CompletedAt: snapshot.CompletedAt,
	})
}

func (h *WeatherHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("q")
	if location == "" {
		respondWithError(w, http.StatusBadRequest, "location parameter 'q' is required")
		return
	}

	record, err := h.weatherService.History(location)
	switch {
	case errors.Is(err, service.ErrHistoryDisabled):
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, weatherquery.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "no history for location")
		return
	case err != nil:
		log.Error().Err(err).Str("location", location).Msg("failed to read weather history")
		respondWithError(w, http.StatusInternalServerError, "failed to read weather history: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, HistoryResponse{
		Query:       record.Query,
		City:        record.CityName,
		Temperature: record.Temperature,
		Description: record.Description,
		Outcome:     record.Outcome,
		StatusCode:  record.StatusCode,
		CreatedAt:   record.CreatedAt,
	})
}

func (h *WeatherHandler) respondWithFetchError(ctx context.Context, w http.ResponseWriter, sessionID string, query providers.Query, err error) {
	var (
		providerErr *providers.ProviderError
		parseErr    *providers.ParseError
		networkErr  *providers.NetworkError
	)

	switch {
	case errors.Is(err, providers.ErrEmptyQuery), errors.Is(err, providers.ErrInvalidCoordinates):
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrSuperseded):
		log.Debug().Str("session_id", sessionID).Str("query", query.String()).Msg("weather request superseded")
		respondWithError(w, http.StatusConflict, err.Error())
		return
	}

	log.Error().
		Err(err).
		Str("session_id", sessionID).
		Str("query", query.String()).
		Str("trace_id", telemetry.TraceID(ctx)).
		Msg("failed to get weather data")

	switch {
	case errors.As(err, &providerErr), errors.As(err, &parseErr):
		respondWithError(w, http.StatusBadGateway, providers.UserMessage(err))
	case errors.As(err, &networkErr), errors.Is(err, context.DeadlineExceeded):
		respondWithError(w, http.StatusGatewayTimeout, providers.UserMessage(err))
	case errors.Is(err, service.ErrShuttingDown):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "failed to get weather data: "+err.Error())
	}
}

func parseQuery(r *http.Request) (providers.Query, error) {
	params := r.URL.Query()

	if city := params.Get("q"); city != "" {
		query := providers.CityQuery(city)
		return query, query.Validate()
	}

	rawLat, rawLon := params.Get("lat"), params.Get("lon")
	if rawLat == "" && rawLon == "" {
		return providers.Query{}, errMissingLocation
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lon, lonErr := strconv.ParseFloat(rawLon, 64)
	if latErr != nil || lonErr != nil {
		return providers.Query{}, providers.ErrInvalidCoordinates
	}

	query := providers.CoordinatesQuery(lat, lon)
	return query, query.Validate()
}
