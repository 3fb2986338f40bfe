package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"citizengate/internal/catalog"
	"citizengate/internal/profile"
	"citizengate/internal/validation/metrics"
	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/sentinel"
	"citizengate/pkg/requestcontext"
)

// Evaluate checks the profile snapshot against a service's requirements.
// Pure: no I/O. Business fields count toward missing_fields but never toward
// the completion denominator, which covers only core fields and documents.
func Evaluate(p profile.Profile, serviceID string) (*Report, error) {
	req, ok := catalog.RequirementsFor(serviceID)
	if !ok {
		return nil, catalog.UnknownServiceError(serviceID)
	}

	missingFields := []FieldStatus{}
	presentFields := []PresentField{}
	for _, field := range req.RequiredFields {
		if p.Truthy(field) {
			presentFields = append(presentFields, PresentField{
				Field: field,
				Label: catalog.LabelFor(field),
				Value: p[field],
			})
		} else {
			missingFields = append(missingFields, FieldStatus{
				Field: field,
				Label: catalog.LabelFor(field),
			})
		}
	}
	for _, field := range req.RequiredBusinessFields {
		if !p.Truthy(field) {
			missingFields = append(missingFields, FieldStatus{
				Field:    field,
				Label:    catalog.LabelFor(field),
				Category: "business",
			})
		}
	}

	missingDocuments := []FieldStatus{}
	for _, doc := range req.RequiredDocuments {
		if !p.Truthy(doc) {
			missingDocuments = append(missingDocuments, FieldStatus{
				Field: doc,
				Label: catalog.LabelFor(doc),
			})
		}
	}

	securityIssues := securityGaps(p, req.RequiredSecurityLevel)

	valid := len(missingFields) == 0 && len(missingDocuments) == 0 && len(securityIssues) == 0

	reqFields := len(req.RequiredFields)
	reqDocs := len(req.RequiredDocuments)
	present := len(presentFields)
	presentDocs := reqDocs - len(missingDocuments)

	return &Report{
		Valid:                 valid,
		ServiceType:           serviceID,
		ServiceDescription:    req.Description,
		MissingFields:         missingFields,
		MissingDocuments:      missingDocuments,
		SecurityIssues:        securityIssues,
		PresentFields:         presentFields,
		UserSecurityLevel:     string(p.Tier()),
		RequiredSecurityLevel: string(req.RequiredSecurityLevel),
		TotalRequired:         reqFields + reqDocs,
		TotalPresent:          present + presentDocs,
		CompletionPercentage:  completion(present+presentDocs, reqFields+reqDocs),
	}, nil
}

func completion(present, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// securityGaps compares tier ranks. An unknown user tier ranks below basic,
// so garbage in the security_level field is treated as no verification.
func securityGaps(p profile.Profile, required catalog.Tier) []SecurityIssue {
	userTier := p.Tier()
	userRank := catalog.TierRank(userTier)
	requiredRank := catalog.TierRank(required)
	if requiredRank == 0 {
		requiredRank = catalog.TierRank(catalog.TierBasic)
	}
	if userRank >= requiredRank {
		return []SecurityIssue{}
	}

	issues := []SecurityIssue{{
		Issue:         issueInsufficientLevel,
		CurrentLevel:  string(userTier),
		RequiredLevel: string(required),
		Message:       fmt.Sprintf("This service requires '%s' security level.", required),
	}}
	if spec, ok := catalog.SecurityTiers[required]; ok {
		for _, requirement := range spec.Requirements {
			if !p.Truthy(requirement) {
				issues = append(issues, SecurityIssue{
					Issue:       issueMissingRequirement,
					Requirement: requirement,
					Label:       catalog.LabelFor(requirement),
				})
			}
		}
	}
	return issues
}

// Validator loads a user's profile and runs Evaluate, recording the outcome.
type Validator struct {
	profiles profile.Store
	audit    *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewValidator(profiles profile.Store, auditPub *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Validator {
	return &Validator{profiles: profiles, audit: auditPub, metrics: m, logger: logger}
}

// Validate runs the completeness check for one user and service. Unknown
// users validate against an empty profile.
func (v *Validator) Validate(ctx context.Context, userID, serviceID string) (*Report, error) {
	p, err := v.profiles.Get(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		p = profile.Profile{}
	} else if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}

	report, err := Evaluate(p, serviceID)
	if err != nil {
		return nil, err
	}

	verdict := "invalid"
	if report.Valid {
		verdict = "valid"
	}
	v.metrics.IncrementOutcome(serviceID, verdict)
	v.emit(ctx, userID, serviceID, verdict)
	return report, nil
}

func (v *Validator) emit(ctx context.Context, userID, serviceID, verdict string) {
	if v.audit == nil {
		return
	}
	err := v.audit.Emit(ctx, audit.Event{
		UserID:      userID,
		Action:      audit.ActionValidationRun,
		ServiceType: serviceID,
		Decision:    verdict,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
	})
	if err != nil && v.logger != nil {
		v.logger.ErrorContext(ctx, "audit emit failed",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(audit.ActionValidationRun),
			"error", err,
		)
	}
}
