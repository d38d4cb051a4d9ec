package session_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"ulascansenturk/weather-fetcher/internal/session"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreTestSuite struct {
	suite.Suite
	store *session.InMemoryStore
}

func (s *InMemoryStoreTestSuite) SetupTest() {
	s.store = session.NewInMemoryStore(time.Minute, 100*time.Millisecond)
}

func (s *InMemoryStoreTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *InMemoryStoreTestSuite) TestLatestUnknownSession() {
	value, exists, err := s.store.Latest("nonexistent")

	s.NoError(err)
	s.False(exists)
	s.Nil(value)
}

func (s *InMemoryStoreTestSuite) TestBeginAndComplete() {
	token := s.store.Begin("session-1", func() {})

	accepted, err := s.store.Complete("session-1", token, &session.Snapshot{
		Token:       token,
		Query:       "Paris",
		Temperature: 22.5,
		Description: "clear sky",
		City:        "Paris",
	})
	s.NoError(err)
	s.True(accepted)

	value, exists, err := s.store.Latest("session-1")
	s.NoError(err)
	s.True(exists)
	s.Require().NotNil(value)
	s.Equal(token, value.Token)
	s.Equal(22.5, value.Temperature)
	s.Equal("clear sky", value.Description)
	s.Equal("Paris", value.City)
	s.Empty(value.Error)
}

func (s *InMemoryStoreTestSuite) TestBeginCancelsPreviousRequest() {
	ctx, cancel := context.WithCancel(context.Background())

	first := s.store.Begin("session-1", cancel)
	second := s.store.Begin("session-1", func() {})

	s.Greater(second, first)

	select {
	case <-ctx.Done():
	default:
		s.Fail("previous request should have been canceled")
	}
}

func (s *InMemoryStoreTestSuite) TestStaleCompletionIsDiscarded() {
	first := s.store.Begin("session-1", func() {})
	second := s.store.Begin("session-1", func() {})

	accepted, err := s.store.Complete("session-1", second, &session.Snapshot{Token: second, City: "Berlin"})
	s.NoError(err)
	s.True(accepted)

	accepted, err = s.store.Complete("session-1", first, &session.Snapshot{Token: first, City: "Rome"})
	s.NoError(err)
	s.False(accepted)

	value, exists, err := s.store.Latest("session-1")
	s.NoError(err)
	s.True(exists)
	s.Equal("Berlin", value.City)
	s.Equal(second, value.Token)
}

func (s *InMemoryStoreTestSuite) TestSessionsAreIndependent() {
	london := s.store.Begin("london", func() {})
	tokyo := s.store.Begin("tokyo", func() {})

	s.NotEqual(london, tokyo)

	accepted, err := s.store.Complete("london", london, &session.Snapshot{City: "London", Temperature: 18.5})
	s.NoError(err)
	s.True(accepted)

	accepted, err = s.store.Complete("tokyo", tokyo, &session.Snapshot{City: "Tokyo", Temperature: 30.0})
	s.NoError(err)
	s.True(accepted)

	value1, exists1, err1 := s.store.Latest("london")
	s.NoError(err1)
	s.True(exists1)
	s.Equal("London", value1.City)

	value2, exists2, err2 := s.store.Latest("tokyo")
	s.NoError(err2)
	s.True(exists2)
	s.Equal("Tokyo", value2.City)
}

func (s *InMemoryStoreTestSuite) TestReleaseKeepsPreviousSnapshot() {
	first := s.store.Begin("session-1", func() {})
	_, err := s.store.Complete("session-1", first, &session.Snapshot{Token: first, City: "Lisbon"})
	s.Require().NoError(err)

	canceled := false
	second := s.store.Begin("session-1", func() { canceled = true })
	s.store.Release("session-1", second)

	value, exists, err := s.store.Latest("session-1")
	s.NoError(err)
	s.True(exists)
	s.Equal("Lisbon", value.City)
	s.Equal(first, value.Token)

	// released requests are no longer canceled by CancelAll
	s.store.CancelAll()
	s.False(canceled)

	accepted, err := s.store.Complete("session-1", second, &session.Snapshot{Token: second, City: "Porto"})
	s.NoError(err)
	s.True(accepted)
}

func (s *InMemoryStoreTestSuite) TestReleaseStaleTokenIsIgnored() {
	first := s.store.Begin("session-1", func() {})
	second := s.store.Begin("session-1", func() {})

	s.store.Release("session-1", first)
	s.store.Release("unknown", first)

	accepted, err := s.store.Complete("session-1", second, &session.Snapshot{Token: second, City: "Oslo"})
	s.NoError(err)
	s.True(accepted)
}

func (s *InMemoryStoreTestSuite) TestCompleteUnknownSession() {
	accepted, err := s.store.Complete("ghost", 42, &session.Snapshot{})
	s.NoError(err)
	s.False(accepted)
}

func (s *InMemoryStoreTestSuite) TestAutomaticCleanup() {
	store := session.NewInMemoryStore(50*time.Millisecond, 20*time.Millisecond)
	defer store.Close()

	token := store.Begin("idle", func() {})
	_, err := store.Complete("idle", token, &session.Snapshot{City: "Sydney"})
	s.NoError(err)

	store.Begin("in-flight", func() {})

	time.Sleep(200 * time.Millisecond)

	value, exists, err := store.Latest("idle")
	s.NoError(err)
	s.False(exists)
	s.Nil(value)

	// the in-flight session survives and can still complete
	accepted, err := store.Complete("in-flight", token+1, &session.Snapshot{City: "Madrid"})
	s.NoError(err)
	s.True(accepted)
}

func (s *InMemoryStoreTestSuite) TestCancelAll() {
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())

	s.store.Begin("a", cancel1)
	s.store.Begin("b", cancel2)

	s.store.CancelAll()

	s.Error(ctx1.Err())
	s.Error(ctx2.Err())
}

func (s *InMemoryStoreTestSuite) TestConcurrentBegin() {
	iterations := 100
	tokens := make(chan uint64, iterations)

	var wg sync.WaitGroup
	wg.Add(iterations)
	for i := 0; i < iterations; i++ {
		go func() {
			defer wg.Done()
			tokens <- s.store.Begin("shared", func() {})
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[uint64]bool)
	var highest uint64
	for token := range tokens {
		s.False(seen[token])
		seen[token] = true
		if token > highest {
			highest = token
		}
	}
	s.Len(seen, iterations)

	accepted, err := s.store.Complete("shared", highest, &session.Snapshot{Token: highest})
	s.NoError(err)
	s.True(accepted)
}

func TestInMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreTestSuite))
}
