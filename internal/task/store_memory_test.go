package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"citizengate/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) seed(id, userID string) *Task {
	t := &Task{
		ID:          id,
		Type:        "tax_filing",
		CurrentStep: 1,
		TotalSteps:  6,
		Status:      StatusInProgress,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	s.Require().NoError(s.store.Create(context.Background(), t))
	return t
}

func (s *InMemoryStoreSuite) TestCreateAndGet() {
	s.Run("round trip", func() {
		s.seed("t-1", "u-1")
		got, err := s.store.Get(context.Background(), "t-1")
		s.Require().NoError(err)
		s.Equal("u-1", got.UserID)
	})

	s.Run("duplicate id conflicts", func() {
		s.seed("t-dup", "u-1")
		err := s.store.Create(context.Background(), &Task{ID: "t-dup"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("missing id returns ErrNotFound", func() {
		_, err := s.store.Get(context.Background(), "nope")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned task is a copy", func() {
		s.seed("t-copy", "u-1")
		got, err := s.store.Get(context.Background(), "t-copy")
		s.Require().NoError(err)
		got.Status = StatusCancelled
		got.Documents = append(got.Documents, DocumentRecord{ID: "d-1"})

		again, err := s.store.Get(context.Background(), "t-copy")
		s.Require().NoError(err)
		s.Equal(StatusInProgress, again.Status)
		s.Empty(again.Documents)
	})
}

func (s *InMemoryStoreSuite) TestUpdate() {
	s.Run("applies the mutation", func() {
		s.seed("t-1", "u-1")
		updated, err := s.store.Update(context.Background(), "t-1", func(t *Task) error {
			t.CurrentStep = 3
			return nil
		})
		s.Require().NoError(err)
		s.Equal(3, updated.CurrentStep)
	})

	s.Run("a rejected mutation leaves the record untouched", func() {
		s.seed("t-2", "u-1")
		boom := errors.New("boom")
		_, err := s.store.Update(context.Background(), "t-2", func(t *Task) error {
			t.Status = StatusCancelled
			return boom
		})
		s.Require().ErrorIs(err, boom)

		got, err := s.store.Get(context.Background(), "t-2")
		s.Require().NoError(err)
		s.Equal(StatusInProgress, got.Status)
	})

	s.Run("concurrent updates serialize", func() {
		s.seed("t-3", "u-1")
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.store.Update(context.Background(), "t-3", func(t *Task) error {
					t.CurrentStep++
					return nil
				})
				s.NoError(err)
			}()
		}
		wg.Wait()

		got, err := s.store.Get(context.Background(), "t-3")
		s.Require().NoError(err)
		s.Equal(51, got.CurrentStep)
	})
}

func (s *InMemoryStoreSuite) TestDeleteAndList() {
	s.Run("delete removes the record", func() {
		s.seed("t-1", "u-1")
		s.Require().NoError(s.store.Delete(context.Background(), "t-1"))
		s.Require().ErrorIs(s.store.Delete(context.Background(), "t-1"), sentinel.ErrNotFound)
	})

	s.Run("list filters by owner and orders by creation", func() {
		first := s.seed("t-a", "u-1")
		time.Sleep(time.Millisecond)
		second := s.seed("t-b", "u-1")
		s.seed("t-c", "u-2")

		tasks, err := s.store.ListByUser(context.Background(), "u-1")
		s.Require().NoError(err)
		s.Require().Len(tasks, 2)
		s.Equal(first.ID, tasks[0].ID)
		s.Equal(second.ID, tasks[1].ID)
	})
}
