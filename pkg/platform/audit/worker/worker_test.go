package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	audit "citizengate/pkg/platform/audit"
)

type fakeSink struct {
	mu        sync.Mutex
	err       error
	published []audit.Event
}

func (f *fakeSink) Publish(_ context.Context, event audit.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeSink) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type WorkerSuite struct {
	suite.Suite
	sink   *fakeSink
	worker *Worker
}

func (s *WorkerSuite) SetupTest() {
	s.sink = &fakeSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.worker = New(s.sink, make(chan audit.Event), logger)
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) event(n int) audit.Event {
	return audit.Event{ID: fmt.Sprintf("evt-%d", n), UserID: "u-1", Action: audit.ActionTaskCreated}
}

func (s *WorkerSuite) openBreaker() {
	s.sink.fail(errors.New("broker down"))
	for i := 0; i < 5; i++ {
		s.worker.deliver(context.Background(), s.event(i))
	}
	s.Require().True(s.worker.breaker.IsOpen())
}

func (s *WorkerSuite) TestDeliverPublishes() {
	s.worker.deliver(context.Background(), s.event(0))
	s.Equal(1, s.sink.count())
	s.False(s.worker.breaker.IsOpen())
}

func (s *WorkerSuite) TestBreakerOpensAfterRepeatedFailures() {
	s.openBreaker()
}

func (s *WorkerSuite) TestOpenBreakerSkipsUntilProbe() {
	s.openBreaker()

	// While open the broker is left alone; only every tenth event probes.
	s.sink.fail(nil)
	for i := 0; i < 9; i++ {
		s.worker.deliver(context.Background(), s.event(i))
	}
	s.Equal(0, s.sink.count())

	s.worker.deliver(context.Background(), s.event(9))
	s.Equal(1, s.sink.count())
}

func (s *WorkerSuite) TestBreakerRecoversAfterSuccessfulProbes() {
	s.openBreaker()

	// Two successful probes close the breaker: one at event 10, one at 20.
	s.sink.fail(nil)
	for i := 0; i < 20; i++ {
		s.worker.deliver(context.Background(), s.event(i))
	}
	s.False(s.worker.breaker.IsOpen())
	s.Equal(2, s.sink.count())

	// Closed again, every event flows straight through.
	s.worker.deliver(context.Background(), s.event(20))
	s.Equal(3, s.sink.count())
}

func (s *WorkerSuite) TestRunDrainsInbox() {
	inbox := make(chan audit.Event, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(s.sink, inbox, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	inbox <- s.event(0)
	s.Eventually(func() bool { return s.sink.count() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	s.Require().ErrorIs(<-done, context.Canceled)
}
