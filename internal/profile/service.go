package profile

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"citizengate/internal/catalog"
	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/sentinel"
	"citizengate/pkg/requestcontext"
)

// FieldRef names a profile field together with its display label.
type FieldRef struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

type fieldView struct {
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Overview is the profile read model: raw fields, the schema for rendering,
// and fill percentages per category.
type Overview struct {
	UserID     string                                   `json:"user_id"`
	Profile    Profile                                  `json:"profile"`
	Schema     map[catalog.Category]map[string]fieldView `json:"schema"`
	Completion map[string]int                            `json:"completion"`
}

// RequirementsView lists what a service demands, with labels resolved.
type RequirementsView struct {
	ServiceType           string     `json:"service_type"`
	Description           string     `json:"description"`
	RequiredFields        []FieldRef `json:"required_fields"`
	RequiredDocuments     []FieldRef `json:"required_documents"`
	RequiredSecurityLevel string     `json:"required_security_level"`
}

// Service owns profile reads and writes. All writes are merges: keys in the
// update overwrite, everything else is retained.
type Service struct {
	store  Store
	audit  *audit.Publisher
	logger *slog.Logger
}

func NewService(store Store, auditPub *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, audit: auditPub, logger: logger}
}

// Fetch returns the stored profile, or an empty one when the user has never
// written anything. Callers treat absent and empty the same way.
func (s *Service) Fetch(ctx context.Context, userID string) (Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Profile{}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}
	return p, nil
}

// Overview builds the profile read model with per-category completion. A
// field counts as filled when it holds an affirmative value, so false
// document flags and blank strings do not count.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	p, err := s.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	completion := make(map[string]int, len(catalog.CategoryOrder)+1)
	totalFields := 0
	filledFields := 0
	for _, category := range catalog.CategoryOrder {
		fields := catalog.ProfileSchema[category]
		filled := 0
		for field := range fields {
			if p.Truthy(field) {
				filled++
			}
		}
		completion[string(category)] = roundPercent(filled, len(fields))
		totalFields += len(fields)
		filledFields += filled
	}
	completion["overall"] = roundPercent(filledFields, totalFields)

	return &Overview{
		UserID:     userID,
		Profile:    p,
		Schema:     schemaView(),
		Completion: completion,
	}, nil
}

// Update merges the given fields into the profile and stamps timestamps.
// Returns the sorted names of the fields the caller sent.
func (s *Service) Update(ctx context.Context, userID string, updates Profile) ([]string, error) {
	if len(updates) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no fields to update")
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	if _, err := s.writeMerge(ctx, userID, updates); err != nil {
		return nil, err
	}

	s.emit(ctx, audit.Event{
		UserID: userID,
		Action: audit.ActionProfileUpdated,
		Reason: "fields: " + strings.Join(fields, ","),
	})
	return fields, nil
}

// MarkDocument flags one document type as uploaded.
func (s *Service) MarkDocument(ctx context.Context, userID, documentType string) error {
	if strings.TrimSpace(documentType) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "document type must not be empty")
	}
	if _, err := s.writeMerge(ctx, userID, Profile{documentType: true}); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		UserID: userID,
		Action: audit.ActionDocumentMarked,
		Reason: documentType,
	})
	return nil
}

// Requirements resolves a service's requirement listing with display labels.
func (s *Service) Requirements(serviceID string) (*RequirementsView, error) {
	req, ok := catalog.RequirementsFor(serviceID)
	if !ok {
		return nil, catalog.UnknownServiceError(serviceID)
	}
	return &RequirementsView{
		ServiceType:           serviceID,
		Description:           req.Description,
		RequiredFields:        fieldRefs(req.RequiredFields),
		RequiredDocuments:     fieldRefs(req.RequiredDocuments),
		RequiredSecurityLevel: string(req.RequiredSecurityLevel),
	}, nil
}

// Trail lists the user's audit events, newest first.
func (s *Service) Trail(ctx context.Context, userID string) ([]audit.Event, error) {
	events, err := s.audit.List(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load audit trail")
	}
	return events, nil
}

func (s *Service) writeMerge(ctx context.Context, userID string, updates Profile) (Profile, error) {
	now := requestcontext.Now(ctx).Format(time.RFC3339)
	_, err := s.store.Get(ctx, userID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		updates[FieldCreatedAt] = now
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}
	updates[FieldUpdatedAt] = now

	merged, err := s.store.Upsert(ctx, userID, updates)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save profile")
	}
	return merged, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	if err := s.audit.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(event.Action),
			"error", err,
		)
	}
}

func fieldRefs(fields []string) []FieldRef {
	refs := make([]FieldRef, 0, len(fields))
	for _, f := range fields {
		refs = append(refs, FieldRef{Field: f, Label: catalog.LabelFor(f)})
	}
	return refs
}

func roundPercent(part, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func schemaView() map[catalog.Category]map[string]fieldView {
	out := make(map[catalog.Category]map[string]fieldView, len(catalog.ProfileSchema))
	for category, fields := range catalog.ProfileSchema {
		view := make(map[string]fieldView, len(fields))
		for name, spec := range fields {
			view[name] = fieldView{Label: spec.Label, Required: spec.Required}
		}
		out[category] = view
	}
	return out
}
