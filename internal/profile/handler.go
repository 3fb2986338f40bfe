package profile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/requestcontext"
)

// HandlerService is the surface the HTTP layer needs from the profile service.
type HandlerService interface {
	Overview(ctx context.Context, userID string) (*Overview, error)
	Update(ctx context.Context, userID string, updates Profile) ([]string, error)
	MarkDocument(ctx context.Context, userID, documentType string) error
	Requirements(serviceID string) (*RequirementsView, error)
	Trail(ctx context.Context, userID string) ([]audit.Event, error)
	Revoke(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) error
	RevocationState(ctx context.Context, userID string) (*RevocationStatus, error)
}

// Handler exposes the /user endpoints.
type Handler struct {
	service HandlerService
	logger  *slog.Logger
}

func NewHandler(service HandlerService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/user/profile", h.handleGetProfile)
	r.Post("/user/profile", h.handleUpdateProfile)
	r.Post("/user/document/{document_type}", h.handleMarkDocument)
	r.Get("/user/requirements/{service_type}", h.handleGetRequirements)
	r.Get("/user/audit", h.handleGetAudit)
	h.RegisterSecurity(r)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overview, err := h.service.Overview(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.logError(ctx, "profile overview failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var updates Profile
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.logger.WarnContext(ctx, "invalid profile update body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	fields, err := h.service.Update(ctx, requestcontext.UserID(ctx), updates)
	if err != nil {
		h.logError(ctx, "profile update failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":        "Profile updated",
		"updated_fields": fields,
	})
}

func (h *Handler) handleMarkDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentType := chi.URLParam(r, "document_type")

	if err := h.service.MarkDocument(ctx, requestcontext.UserID(ctx), documentType); err != nil {
		h.logError(ctx, "mark document failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Document marked as uploaded: " + documentType,
	})
}

func (h *Handler) handleGetRequirements(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Requirements(chi.URLParam(r, "service_type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	events, err := h.service.Trail(ctx, userID)
	if err != nil {
		h.logError(ctx, "audit trail load failed", err)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"events":  events,
	})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
