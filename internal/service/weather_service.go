package service

import (
	"context"
	"errors"

	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
	"ulascansenturk/weather-fetcher/internal/providers"
	"ulascansenturk/weather-fetcher/internal/session"
)

var ErrHistoryDisabled = errors.New("weather history is not enabled")

type WeatherService interface {
	GetWeather(ctx context.Context, sessionID string, query providers.Query) (Outcome, error)
	Latest(sessionID string) (*session.Snapshot, bool, error)
	History(query string) (*weatherquery.WeatherQuery, error)
}

type weatherService struct {
	dispatcher       RequestDispatcher
	sessions         session.Store
	weatherQueryRepo weatherquery.Repository
}

func NewWeatherService(dispatcher RequestDispatcher, sessions session.Store, weatherQueryRepo weatherquery.Repository) WeatherService {
	return &weatherService{
		dispatcher:       dispatcher,
		sessions:         sessions,
		weatherQueryRepo: weatherQueryRepo,
	}
}

func (s *weatherService) GetWeather(ctx context.Context, sessionID string, query providers.Query) (Outcome, error) {
	if err := query.Validate(); err != nil {
		return Outcome{}, err
	}

	responseChan, err := s.dispatcher.Submit(ctx, sessionID, query)
	if err != nil {
		return Outcome{}, err
	}

	select {
	case outcome, ok := <-responseChan:
		if !ok {
			return Outcome{}, ErrShuttingDown
		}
		if outcome.Err != nil {
			return outcome, outcome.Err
		}
		return outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (s *weatherService) Latest(sessionID string) (*session.Snapshot, bool, error) {
	return s.sessions.Latest(sessionID)
}

func (s *weatherService) History(query string) (*weatherquery.WeatherQuery, error) {
	if s.weatherQueryRepo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.weatherQueryRepo.GetRecentWeatherQuery(query)
}
