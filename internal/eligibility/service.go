package eligibility

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"citizengate/internal/catalog"
	"citizengate/internal/eligibility/metrics"
	"citizengate/internal/profile"
	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/sentinel"
	"citizengate/pkg/requestcontext"
)

// Evaluate runs every rule for the service against the profile snapshot.
// Pure: no I/O, deterministic given now. Callers that already hold a profile
// (the task gate) use this directly.
func Evaluate(p profile.Profile, serviceID string, now time.Time) (*Report, error) {
	rules, ok := RuleSets[serviceID]
	if !ok {
		return nil, catalog.UnknownServiceError(serviceID)
	}

	results := make([]Result, 0, len(rules))
	var passed, failed, warnings int
	for _, rule := range rules {
		result := evaluate(rule, p, now)
		switch result.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusWarning:
			warnings++
		}
		results = append(results, result)
	}

	eligible := failed == 0
	recommendation := "Proceed with application"
	if !eligible {
		recommendation = "Please fix the failed checks before proceeding"
	}

	return &Report{
		Eligible:    eligible,
		ServiceType: serviceID,
		VerifiedAt:  now.Format(time.RFC3339),
		Summary: Summary{
			TotalChecks: len(rules),
			Passed:      passed,
			Failed:      failed,
			Warnings:    warnings,
			PassRate:    passRate(passed, len(rules)),
		},
		Results:        results,
		Recommendation: recommendation,
	}, nil
}

func passRate(passed, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(passed) / float64(total) * 100))
}

// Agent loads a user's profile and runs Evaluate, recording the outcome in
// metrics and the audit trail.
type Agent struct {
	profiles profile.Store
	audit    *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewAgent(profiles profile.Store, auditPub *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Agent {
	return &Agent{profiles: profiles, audit: auditPub, metrics: m, logger: logger}
}

// Verify runs the full verification for one user and service. An unknown
// user verifies against an empty profile, which fails every required check
// rather than erroring.
func (a *Agent) Verify(ctx context.Context, userID, serviceID string) (*Report, error) {
	started := time.Now()

	p, err := a.profiles.Get(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		p = profile.Profile{}
	} else if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}

	report, err := Evaluate(p, serviceID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	verdict := "ineligible"
	if report.Eligible {
		verdict = "eligible"
	}
	a.metrics.IncrementOutcome(serviceID, verdict)
	for _, result := range report.Results {
		a.metrics.IncrementRule(result.RuleID, string(result.Status))
	}
	a.metrics.ObserveVerifyLatency(time.Since(started))

	a.emit(ctx, userID, serviceID, report, verdict)
	return report, nil
}

func (a *Agent) emit(ctx context.Context, userID, serviceID string, report *Report, verdict string) {
	if a.audit == nil {
		return
	}
	err := a.audit.Emit(ctx, audit.Event{
		UserID:      userID,
		Action:      audit.ActionVerificationRun,
		ServiceType: serviceID,
		Decision:    verdict,
		Reason:      report.Recommendation,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
	})
	if err != nil && a.logger != nil {
		a.logger.ErrorContext(ctx, "audit emit failed",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(audit.ActionVerificationRun),
			"error", err,
		)
	}
}
