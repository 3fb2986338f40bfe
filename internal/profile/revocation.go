package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/requestcontext"
)

// Revocation state lives on the profile itself, as ordinary fields.
const (
	fieldRevoked    = "revoked"
	fieldRevokedAt  = "revoked_at"
	fieldRestoredAt = "restored_at"
)

// RevocationStatus reports whether a digital ID is usable.
type RevocationStatus struct {
	Status    string `json:"status"`
	RevokedAt string `json:"revoked_at,omitempty"`
	Message   string `json:"message"`
}

// Revoke marks the user's digital ID revoked. Idempotent.
func (s *Service) Revoke(ctx context.Context, userID string) error {
	now := requestcontext.Now(ctx).Format(time.RFC3339)
	if _, err := s.writeMerge(ctx, userID, Profile{fieldRevoked: true, fieldRevokedAt: now}); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionIDRevoked,
		Decision: "revoked",
	})
	return nil
}

// Restore reactivates a revoked digital ID.
func (s *Service) Restore(ctx context.Context, userID string) error {
	now := requestcontext.Now(ctx).Format(time.RFC3339)
	if _, err := s.writeMerge(ctx, userID, Profile{fieldRevoked: false, fieldRestoredAt: now}); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		UserID:   userID,
		Action:   audit.ActionIDRestored,
		Decision: "active",
	})
	return nil
}

// RevocationState reports the current ID status. Users with no profile are
// active: revocation is an explicit act.
func (s *Service) RevocationState(ctx context.Context, userID string) (*RevocationStatus, error) {
	p, err := s.Fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Truthy(fieldRevoked) {
		revokedAt, _ := p.String(fieldRevokedAt)
		return &RevocationStatus{
			Status:    "revoked",
			RevokedAt: revokedAt,
			Message:   "This ID has been permanently revoked.",
		}, nil
	}
	return &RevocationStatus{Status: "active", Message: "ID is active."}, nil
}

// RegisterSecurity mounts the revocation endpoints.
func (h *Handler) RegisterSecurity(r chi.Router) {
	r.Post("/security/revoke", h.handleRevoke)
	r.Post("/security/restore", h.handleRestore)
	r.Get("/security/status", h.handleRevocationStatus)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if err := h.service.Revoke(ctx, userID); err != nil {
		h.logError(ctx, "id revoke failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "revoked",
		"message": "ID has been revoked remotely.",
		"user_id": userID,
	})
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Restore(ctx, requestcontext.UserID(ctx)); err != nil {
		h.logError(ctx, "id restore failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "active",
		"message": "ID restored.",
	})
}

func (h *Handler) handleRevocationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := h.service.RevocationState(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.logError(ctx, "id status failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
