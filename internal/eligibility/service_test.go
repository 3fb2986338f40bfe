package eligibility

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"citizengate/internal/profile"
	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
)

type AgentSuite struct {
	suite.Suite
	now      time.Time
	profiles *profile.InMemoryStore
	events   *audit.InMemoryStore
	agent    *Agent
}

func (s *AgentSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	s.profiles = profile.NewInMemoryStore()
	s.events = audit.NewInMemoryStore()
	s.agent = NewAgent(s.profiles, audit.NewPublisher(s.events), nil, nil)
}

func TestAgentSuite(t *testing.T) {
	suite.Run(t, new(AgentSuite))
}

func (s *AgentSuite) TestEvaluate() {
	s.Run("unknown service lists valid ids", func() {
		_, err := Evaluate(profile.Profile{}, "space_travel_permit", s.now)
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))

		var de *dErrors.Error
		s.Require().ErrorAs(err, &de)
		s.Contains(de.Details["valid_services"], "visa_application")
	})

	s.Run("warnings do not block eligibility", func() {
		// tax_filing: ic and income present, tax_number missing (medium).
		report, err := Evaluate(profile.Profile{
			"ic_number":      "901231-14-5678",
			"monthly_income": "4500",
		}, "tax_filing", s.now)
		s.Require().NoError(err)

		s.True(report.Eligible)
		s.Equal(3, report.Summary.TotalChecks)
		s.Equal(2, report.Summary.Passed)
		s.Equal(0, report.Summary.Failed)
		s.Equal(1, report.Summary.Warnings)
		s.Equal(67, report.Summary.PassRate)
		s.Equal("Proceed with application", report.Recommendation)
	})

	s.Run("a single failure makes the user ineligible", func() {
		report, err := Evaluate(profile.Profile{
			"monthly_income": "4500",
		}, "tax_filing", s.now)
		s.Require().NoError(err)

		s.False(report.Eligible)
		s.Equal(1, report.Summary.Failed)
		s.Equal("Please fix the failed checks before proceeding", report.Recommendation)
	})

	s.Run("empty profile fails every required check", func() {
		report, err := Evaluate(profile.Profile{}, "visa_application", s.now)
		s.Require().NoError(err)

		s.False(report.Eligible)
		s.Equal(len(RuleSets["visa_application"]), report.Summary.TotalChecks)
		s.Zero(report.Summary.Passed)
	})

	s.Run("results keep rule order", func() {
		report, err := Evaluate(profile.Profile{}, "passport_renewal", s.now)
		s.Require().NoError(err)

		s.Require().Len(report.Results, len(RuleSets["passport_renewal"]))
		for i, rule := range RuleSets["passport_renewal"] {
			s.Equal(rule.ID, report.Results[i].RuleID)
		}
	})
}

func (s *AgentSuite) TestVerify() {
	ctx := context.Background()

	s.Run("unknown user verifies against an empty profile", func() {
		report, err := s.agent.Verify(ctx, "nobody", "tax_filing")
		s.Require().NoError(err)
		s.False(report.Eligible)
	})

	s.Run("emits an audit event with the verdict", func() {
		_, err := s.profiles.Upsert(ctx, "u-1", profile.Profile{
			"ic_number":      "901231-14-5678",
			"monthly_income": "4500",
		})
		s.Require().NoError(err)

		report, err := s.agent.Verify(ctx, "u-1", "tax_filing")
		s.Require().NoError(err)
		s.True(report.Eligible)

		events, err := s.events.ListByUser(ctx, "u-1")
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionVerificationRun, events[0].Action)
		s.Equal("tax_filing", events[0].ServiceType)
		s.Equal("eligible", events[0].Decision)
	})

	s.Run("unknown service does not emit", func() {
		_, err := s.agent.Verify(ctx, "u-2", "nope")
		s.Require().Error(err)

		events, err := s.events.ListByUser(ctx, "u-2")
		s.Require().NoError(err)
		s.Empty(events)
	})
}
