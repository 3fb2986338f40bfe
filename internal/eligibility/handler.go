package eligibility

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/requestcontext"
)

// Verifier is the surface the HTTP layer needs from the agent.
type Verifier interface {
	Verify(ctx context.Context, userID, serviceID string) (*Report, error)
}

// Handler exposes the verification agent endpoint.
type Handler struct {
	agent  Verifier
	logger *slog.Logger
}

func NewHandler(agent Verifier, logger *slog.Logger) *Handler {
	return &Handler{agent: agent, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/agent/verify/{service_type}", h.handleVerify)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serviceType := chi.URLParam(r, "service_type")

	report, err := h.agent.Verify(ctx, requestcontext.UserID(ctx), serviceType)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "verification failed",
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
