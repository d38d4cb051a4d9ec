package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
	"ulascansenturk/weather-fetcher/internal/mocks"
	"ulascansenturk/weather-fetcher/internal/providers"
	"ulascansenturk/weather-fetcher/internal/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-fetcher/internal/service"
)

type WeatherServiceTestSuite struct {
	suite.Suite
	mockDispatcher *mocks.MockRequestDispatcher
	mockRepo       *mocks.MockRepository
	sessions       *session.InMemoryStore
	service        service.WeatherService
	ctx            context.Context
}

func (s *WeatherServiceTestSuite) SetupTest() {
	s.mockDispatcher = mocks.NewMockRequestDispatcher(s.T())
	s.mockRepo = mocks.NewMockRepository(s.T())
	s.sessions = session.NewInMemoryStore(time.Minute, time.Minute)
	s.service = service.NewWeatherService(s.mockDispatcher, s.sessions, s.mockRepo)
	s.ctx = context.Background()
}

func (s *WeatherServiceTestSuite) TearDownTest() {
	s.sessions.Close()
}

func convertToReceiveOnlyChannel(ch chan service.Outcome) <-chan service.Outcome {
	return ch
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithValidCity() {
	query := providers.CityQuery("Madrid")
	expected := service.Outcome{
		Token: 1,
		Query: query,
		Result: providers.WeatherResult{
			TemperatureCelsius: 21.5,
			Description:        "clear sky",
			CityName:           "Madrid",
		},
	}

	responseChan := make(chan service.Outcome, 1)
	responseChan <- expected
	close(responseChan)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	result, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.NoError(err)
	s.Equal(expected, result)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithCoordinates() {
	query := providers.CoordinatesQuery(40.4168, -3.7038)
	expected := service.Outcome{
		Token:  2,
		Query:  query,
		Result: providers.WeatherResult{TemperatureCelsius: 30.5, Description: "clear sky", CityName: "Madrid"},
	}

	responseChan := make(chan service.Outcome, 1)
	responseChan <- expected
	close(responseChan)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	result, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.NoError(err)
	s.Equal("Madrid", result.Result.CityName)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithEmptyCity() {
	result, err := s.service.GetWeather(s.ctx, "session-1", providers.CityQuery(""))

	s.Error(err)
	s.Equal(service.Outcome{}, result)
	s.Contains(err.Error(), "location cannot be empty")

	s.mockDispatcher.AssertNotCalled(s.T(), "Submit")
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithInvalidCoordinates() {
	_, err := s.service.GetWeather(s.ctx, "session-1", providers.CoordinatesQuery(120, 0))

	s.ErrorIs(err, providers.ErrInvalidCoordinates)
	s.mockDispatcher.AssertNotCalled(s.T(), "Submit")
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithDispatcherError() {
	query := providers.CityQuery("Paris")

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return((<-chan service.Outcome)(nil), service.ErrShuttingDown)

	result, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.ErrorIs(err, service.ErrShuttingDown)
	s.Equal(service.Outcome{}, result)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithErrorOutcome() {
	query := providers.CityQuery("London")
	providerErr := &providers.ProviderError{StatusCode: 500}
	errorOutcome := service.Outcome{Token: 3, Query: query, Err: providerErr}

	responseChan := make(chan service.Outcome, 1)
	responseChan <- errorOutcome
	close(responseChan)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	result, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.Error(err)
	s.Equal(errorOutcome, result)

	var target *providers.ProviderError
	s.True(errors.As(err, &target))
	s.Equal(500, target.StatusCode)
}

func (s *WeatherServiceTestSuite) TestGetWeatherSuperseded() {
	query := providers.CityQuery("Berlin")

	responseChan := make(chan service.Outcome, 1)
	responseChan <- service.Outcome{Token: 4, Query: query, Err: service.ErrSuperseded}
	close(responseChan)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	_, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.ErrorIs(err, service.ErrSuperseded)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithContextTimeout() {
	query := providers.CityQuery("Tokyo")

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	responseChan := make(chan service.Outcome)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	result, err := s.service.GetWeather(ctx, "session-1", query)

	s.Error(err)
	s.Equal(service.Outcome{}, result)
	s.Contains(err.Error(), "context deadline exceeded")
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithClosedChannel() {
	query := providers.CityQuery("Lima")

	responseChan := make(chan service.Outcome)
	close(responseChan)

	s.mockDispatcher.On("Submit", mock.Anything, "session-1", query).
		Return(convertToReceiveOnlyChannel(responseChan), nil)

	_, err := s.service.GetWeather(s.ctx, "session-1", query)

	s.ErrorIs(err, service.ErrShuttingDown)
}

func (s *WeatherServiceTestSuite) TestLatest() {
	token := s.sessions.Begin("session-1", func() {})
	_, err := s.sessions.Complete("session-1", token, &session.Snapshot{Token: token, City: "Sydney", Temperature: 28.7})
	s.Require().NoError(err)

	snapshot, exists, err := s.service.Latest("session-1")
	s.NoError(err)
	s.True(exists)
	s.Equal("Sydney", snapshot.City)

	_, exists, err = s.service.Latest("unknown")
	s.NoError(err)
	s.False(exists)
}

func (s *WeatherServiceTestSuite) TestHistory() {
	record := &weatherquery.WeatherQuery{ID: 1, Query: "Madrid", CityName: "Madrid", Temperature: 21.5, Outcome: "ok"}
	s.mockRepo.On("GetRecentWeatherQuery", "Madrid").Return(record, nil)

	result, err := s.service.History("Madrid")

	s.NoError(err)
	s.Equal(record, result)
}

func (s *WeatherServiceTestSuite) TestHistoryDisabled() {
	svc := service.NewWeatherService(s.mockDispatcher, s.sessions, nil)

	result, err := svc.History("Madrid")

	s.ErrorIs(err, service.ErrHistoryDisabled)
	s.Nil(result)
}

func TestWeatherServiceSuite(t *testing.T) {
	suite.Run(t, new(WeatherServiceTestSuite))
}
