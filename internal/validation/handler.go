package validation

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/requestcontext"
)

// Checker is the surface the HTTP layer needs from the validator.
type Checker interface {
	Validate(ctx context.Context, userID, serviceID string) (*Report, error)
}

// Handler exposes the validation endpoint.
type Handler struct {
	validator Checker
	logger    *slog.Logger
}

func NewHandler(validator Checker, logger *slog.Logger) *Handler {
	return &Handler{validator: validator, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/user/validate/{service_type}", h.handleValidate)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serviceType := chi.URLParam(r, "service_type")

	report, err := h.validator.Validate(ctx, requestcontext.UserID(ctx), serviceType)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "validation failed",
				"request_id", requestcontext.RequestID(ctx),
				"service_type", serviceType,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}
