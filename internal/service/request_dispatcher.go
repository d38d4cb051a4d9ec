package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
	"ulascansenturk/weather-fetcher/internal/providers"
	"ulascansenturk/weather-fetcher/internal/session"
)

var (
	ErrSuperseded   = errors.New("request superseded by a newer request")
	ErrShuttingDown = errors.New("dispatcher is shutting down")
)

// Outcome is the result of one submitted request. Exactly one of Result and Err is set.
type Outcome struct {
	Token  uint64
	Query  providers.Query
	Result providers.WeatherResult
	Err    error
}

type RequestDispatcher interface {
	Submit(ctx context.Context, sessionID string, query providers.Query) (<-chan Outcome, error)
	Shutdown()
}

type requestDispatcher struct {
	fetcher          providers.WeatherFetcher
	sessions         session.Store
	weatherQueryRepo weatherquery.Repository

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRequestDispatcher returns a dispatcher that runs every fetch in its own
// goroutine. weatherQueryRepo may be nil.
func NewRequestDispatcher(
	fetcher providers.WeatherFetcher,
	sessions session.Store,
	weatherQueryRepo weatherquery.Repository,
) RequestDispatcher {
	return &requestDispatcher{
		fetcher:          fetcher,
		sessions:         sessions,
		weatherQueryRepo: weatherQueryRepo,
	}
}

// Submit starts a fetch for the session and returns a channel that receives
// exactly one Outcome and is then closed. A newer Submit for the same session
// cancels this one, whose outcome then carries ErrSuperseded.
func (d *requestDispatcher) Submit(ctx context.Context, sessionID string, query providers.Query) (<-chan Outcome, error) {
	// buffered so the worker never blocks on a caller that stopped listening
	responseChan := make(chan Outcome, 1)

	fetchCtx, cancel := context.WithCancel(ctx)

	// Begin runs under mu so a concurrent Shutdown's CancelAll sees this fetch.
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		cancel()
		return nil, ErrShuttingDown
	}
	d.wg.Add(1)
	token := d.sessions.Begin(sessionID, cancel)
	d.mu.Unlock()

	log.Debug().
		Str("session_id", sessionID).
		Uint64("token", token).
		Str("query", query.String()).
		Msg("weather request submitted")

	go d.run(ctx, fetchCtx, cancel, sessionID, token, query, responseChan)

	return responseChan, nil
}

func (d *requestDispatcher) run(
	callerCtx context.Context,
	ctx context.Context,
	cancel context.CancelFunc,
	sessionID string,
	token uint64,
	query providers.Query,
	responseChan chan<- Outcome,
) {
	defer d.wg.Done()
	defer close(responseChan)
	defer cancel()

	result, err := d.fetcher.FetchQuery(ctx, query)
	outcome := Outcome{Token: token, Query: query, Result: result, Err: err}

	// The caller went away: the failure says nothing about the weather, so the
	// session keeps its previous snapshot and no history is written.
	if err != nil && callerCtx.Err() != nil {
		d.sessions.Release(sessionID, token)

		log.Debug().
			Str("session_id", sessionID).
			Uint64("token", token).
			Msg("weather request abandoned by caller")

		responseChan <- Outcome{Token: token, Query: query, Err: callerCtx.Err()}
		return
	}

	accepted, storeErr := d.sessions.Complete(sessionID, token, newSnapshot(outcome))
	if storeErr != nil {
		log.Error().Err(storeErr).Str("session_id", sessionID).Msg("failed to store session snapshot")
	} else if !accepted {
		log.Debug().
			Str("session_id", sessionID).
			Uint64("token", token).
			Msg("discarding superseded weather response")

		responseChan <- Outcome{Token: token, Query: query, Err: ErrSuperseded}
		return
	}

	d.logHistory(sessionID, outcome)

	responseChan <- outcome
}

func (d *requestDispatcher) logHistory(sessionID string, outcome Outcome) {
	if d.weatherQueryRepo == nil {
		return
	}

	entry := &weatherquery.WeatherQuery{
		SessionID:   sessionID,
		Query:       outcome.Query.String(),
		CityName:    outcome.Result.CityName,
		Temperature: outcome.Result.TemperatureCelsius,
		Description: outcome.Result.Description,
		Outcome:     providers.Kind(outcome.Err),
		StatusCode:  providers.StatusCode(outcome.Err),
	}
	if outcome.Err != nil {
		entry.ErrorMessage = outcome.Err.Error()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.weatherQueryRepo.LogWeatherQuery(entry); err != nil {
			log.Error().Err(err).Str("query", entry.Query).Msg("Failed to log weather query")
		}
	}()
}

// Shutdown rejects new submissions, cancels in-flight fetches and waits for
// pending workers and history writes.
func (d *requestDispatcher) Shutdown() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.sessions.CancelAll()
	d.wg.Wait()
}

func newSnapshot(outcome Outcome) *session.Snapshot {
	snapshot := &session.Snapshot{
		Token:       outcome.Token,
		Query:       outcome.Query.String(),
		Temperature: outcome.Result.TemperatureCelsius,
		Description: outcome.Result.Description,
		City:        outcome.Result.CityName,
		CompletedAt: time.Now(),
	}
	if outcome.Err != nil {
		snapshot.Error = providers.UserMessage(outcome.Err)
	}
	return snapshot
}
