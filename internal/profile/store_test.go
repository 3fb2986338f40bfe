package profile

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"citizengate/pkg/platform/sentinel"
)

// StoreSuite runs the same conformance checks against every Store backend.
type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) Store {
		return NewInMemoryStore()
	}})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedisStore(client)
	}})
}

func (s *StoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nobody")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestUpsertCreatesAndStampsUserID() {
	ctx := context.Background()

	merged, err := s.store.Upsert(ctx, "u-1", Profile{"full_name": "Ali"})
	s.Require().NoError(err)
	s.Equal("Ali", merged["full_name"])
	s.Equal("u-1", merged[FieldUserID])

	got, err := s.store.Get(ctx, "u-1")
	s.Require().NoError(err)
	s.Equal("Ali", got["full_name"])
	s.Equal("u-1", got[FieldUserID])
}

func (s *StoreSuite) TestUpsertMerges() {
	ctx := context.Background()

	_, err := s.store.Upsert(ctx, "u-1", Profile{"full_name": "Ali", "phone": "+60"})
	s.Require().NoError(err)
	_, err = s.store.Upsert(ctx, "u-1", Profile{"phone": "+61", "email": "ali@example.com"})
	s.Require().NoError(err)

	got, err := s.store.Get(ctx, "u-1")
	s.Require().NoError(err)
	s.Equal("Ali", got["full_name"])
	s.Equal("+61", got["phone"])
	s.Equal("ali@example.com", got["email"])
}

func (s *StoreSuite) TestBooleanFlagsSurvive() {
	ctx := context.Background()

	_, err := s.store.Upsert(ctx, "u-1", Profile{"ic_uploaded": true, "photo_uploaded": false})
	s.Require().NoError(err)

	got, err := s.store.Get(ctx, "u-1")
	s.Require().NoError(err)
	s.True(got.Truthy("ic_uploaded"))
	s.False(got.Truthy("photo_uploaded"))
}

func (s *StoreSuite) TestUsersAreIsolated() {
	ctx := context.Background()

	_, err := s.store.Upsert(ctx, "u-1", Profile{"full_name": "Ali"})
	s.Require().NoError(err)
	_, err = s.store.Upsert(ctx, "u-2", Profile{"full_name": "Siti"})
	s.Require().NoError(err)

	got, err := s.store.Get(ctx, "u-2")
	s.Require().NoError(err)
	s.Equal("Siti", got["full_name"])
	s.NotContains(got, "phone")
}

func (s *StoreSuite) TestReturnedProfileIsACopy() {
	ctx := context.Background()

	_, err := s.store.Upsert(ctx, "u-1", Profile{"full_name": "Ali"})
	s.Require().NoError(err)

	first, err := s.store.Get(ctx, "u-1")
	s.Require().NoError(err)
	first["full_name"] = "tampered"

	second, err := s.store.Get(ctx, "u-1")
	s.Require().NoError(err)
	s.Equal("Ali", second["full_name"])
}
