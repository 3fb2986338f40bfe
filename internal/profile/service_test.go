package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	events  *audit.InMemoryStore
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.events = audit.NewInMemoryStore()
	s.service = NewService(s.store, audit.NewPublisher(s.events), nil)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestOverview() {
	ctx := context.Background()

	s.Run("unknown user gets an empty profile and zero completion", func() {
		overview, err := s.service.Overview(ctx, "nobody")
		s.Require().NoError(err)

		s.Equal("nobody", overview.UserID)
		s.Empty(overview.Profile)
		s.NotEmpty(overview.Schema)
		s.Zero(overview.Completion["overall"])
		s.Zero(overview.Completion["personal"])
	})

	s.Run("completion counts only affirmative values", func() {
		_, err := s.service.Update(ctx, "u-1", Profile{
			"full_name":       "Siti Nurhaliza",
			"ic_number":       "850505-08-1234",
			"passport_number": "A12345678",
			"ic_uploaded":     true,
			"photo_uploaded":  false, // false flags do not count
			"gender":          "",    // blanks do not count
		})
		s.Require().NoError(err)

		overview, err := s.service.Overview(ctx, "u-1")
		s.Require().NoError(err)

		// personal: 2 of 8; passport: 1 of 3; documents: 1 of 6.
		s.Equal(25, overview.Completion["personal"])
		s.Equal(33, overview.Completion["passport"])
		s.Equal(17, overview.Completion["documents"])
		s.Equal(0, overview.Completion["employment"])
		// 4 of 35 schema fields overall.
		s.Equal(11, overview.Completion["overall"])
	})
}

func (s *ServiceSuite) TestUpdate() {
	ctx := context.Background()

	s.Run("merge retains fields absent from the update", func() {
		_, err := s.service.Update(ctx, "u-1", Profile{"full_name": "Ali"})
		s.Require().NoError(err)
		_, err = s.service.Update(ctx, "u-1", Profile{"phone": "+60111222333"})
		s.Require().NoError(err)

		p, err := s.service.Fetch(ctx, "u-1")
		s.Require().NoError(err)
		s.Equal("Ali", p["full_name"])
		s.Equal("+60111222333", p["phone"])
	})

	s.Run("first write stamps created_at, every write stamps updated_at", func() {
		created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		later := created.Add(48 * time.Hour)

		_, err := s.service.Update(requestcontext.WithTime(ctx, created), "u-2", Profile{"full_name": "Ali"})
		s.Require().NoError(err)
		_, err = s.service.Update(requestcontext.WithTime(ctx, later), "u-2", Profile{"phone": "x"})
		s.Require().NoError(err)

		p, err := s.service.Fetch(ctx, "u-2")
		s.Require().NoError(err)
		s.Equal(created.Format(time.RFC3339), p[FieldCreatedAt])
		s.Equal(later.Format(time.RFC3339), p[FieldUpdatedAt])
	})

	s.Run("returns the sorted field names and audits the write", func() {
		fields, err := s.service.Update(ctx, "u-3", Profile{
			"phone":     "+60",
			"full_name": "Ali",
		})
		s.Require().NoError(err)
		s.Equal([]string{"full_name", "phone"}, fields)

		events, err := s.events.ListByUser(ctx, "u-3")
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionProfileUpdated, events[0].Action)
	})

	s.Run("empty update is rejected", func() {
		_, err := s.service.Update(ctx, "u-4", Profile{})
		s.Require().Error(err)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestMarkDocument() {
	ctx := context.Background()

	s.Run("sets the flag on a fresh profile", func() {
		s.Require().NoError(s.service.MarkDocument(ctx, "u-1", "ic_uploaded"))

		p, err := s.service.Fetch(ctx, "u-1")
		s.Require().NoError(err)
		s.Equal(true, p["ic_uploaded"])
	})

	s.Run("blank document type is rejected", func() {
		err := s.service.MarkDocument(ctx, "u-1", "  ")
		s.Require().Error(err)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestRequirements() {
	s.Run("resolves labels from the schema", func() {
		view, err := s.service.Requirements("ic_replacement")
		s.Require().NoError(err)

		s.Equal("IC Replacement", view.Description)
		s.Equal("verified", view.RequiredSecurityLevel)

		labels := map[string]string{}
		for _, ref := range view.RequiredFields {
			labels[ref.Field] = ref.Label
		}
		s.Equal("IC Number (MyKad)", labels["ic_number"])
		s.Equal("Home Address", labels["address"])
	})

	s.Run("unknown service is not_found", func() {
		_, err := s.service.Requirements("dog_license")
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestRevocation() {
	ctx := context.Background()

	s.Run("fresh users are active", func() {
		status, err := s.service.RevocationState(ctx, "u-new")
		s.Require().NoError(err)
		s.Equal("active", status.Status)
	})

	s.Run("revoke then restore round trips", func() {
		s.Require().NoError(s.service.Revoke(ctx, "u-1"))

		status, err := s.service.RevocationState(ctx, "u-1")
		s.Require().NoError(err)
		s.Equal("revoked", status.Status)
		s.NotEmpty(status.RevokedAt)

		s.Require().NoError(s.service.Restore(ctx, "u-1"))
		status, err = s.service.RevocationState(ctx, "u-1")
		s.Require().NoError(err)
		s.Equal("active", status.Status)
	})

	s.Run("transitions are audited", func() {
		s.Require().NoError(s.service.Revoke(ctx, "u-2"))
		s.Require().NoError(s.service.Restore(ctx, "u-2"))

		events, err := s.events.ListByUser(ctx, "u-2")
		s.Require().NoError(err)
		s.Require().Len(events, 2)
	})
}
