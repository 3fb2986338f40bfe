package task

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/requestcontext"
)

// EngineAPI is the surface the HTTP layer needs from the engine.
type EngineAPI interface {
	Create(ctx context.Context, userID, serviceID string) (*CreateResult, error)
	CreateGated(ctx context.Context, userID, serviceID string) (*GateResult, error)
	Get(ctx context.Context, taskID string) (*Task, error)
	ListByUser(ctx context.Context, userID string) ([]*Task, error)
	Advance(ctx context.Context, taskID string) (*AdvanceResult, error)
	Cancel(ctx context.Context, taskID string) (*Task, error)
	Delete(ctx context.Context, taskID string) error
	AttachDocument(ctx context.Context, taskID string, req *AttachDocumentRequest) (*DocumentRecord, error)
	Documents(ctx context.Context, taskID string) ([]DocumentRecord, error)
}

// Handler exposes the /task endpoints.
type Handler struct {
	engine EngineAPI
	logger *slog.Logger
}

func NewHandler(engine EngineAPI, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/task/create", h.handleCreate)
	r.Post("/task/start-with-verification", h.handleCreateGated)
	r.Get("/tasks", h.handleList)
	r.Get("/task/{task_id}", h.handleGet)
	r.Post("/task/{task_id}/advance", h.handleAdvance)
	r.Post("/task/{task_id}/cancel", h.handleCancel)
	r.Delete("/task/{task_id}", h.handleDelete)
	r.Post("/task/{task_id}/upload", h.handleUpload)
	r.Get("/task/{task_id}/documents", h.handleDocuments)
}

// requestUser prefers an explicit user_id in the body over the
// request-scoped one.
func requestUser(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	return requestcontext.UserID(ctx)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	result, err := h.engine.Create(ctx, requestUser(ctx, req.UserID), req.TaskType)
	if err != nil {
		h.writeError(ctx, w, "task create failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCreateGated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	result, err := h.engine.CreateGated(ctx, requestUser(ctx, req.UserID), req.TaskType)
	if err != nil {
		h.writeError(ctx, w, "gated task create failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := h.engine.Get(ctx, chi.URLParam(r, "task_id"))
	if err != nil {
		h.writeError(ctx, w, "task load failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tasks, err := h.engine.ListByUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(ctx, w, "task list failed", err)
		return
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.engine.Advance(ctx, chi.URLParam(r, "task_id"))
	if err != nil {
		h.writeError(ctx, w, "task advance failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := h.engine.Cancel(ctx, chi.URLParam(r, "task_id"))
	if err != nil {
		h.writeError(ctx, w, "task cancel failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Task cancelled: " + t.Name,
		"task":    t,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taskID := chi.URLParam(r, "task_id")
	if err := h.engine.Delete(ctx, taskID); err != nil {
		h.writeError(ctx, w, "task delete failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Task deleted: " + taskID,
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AttachDocumentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	doc, err := h.engine.AttachDocument(ctx, chi.URLParam(r, "task_id"), req)
	if err != nil {
		h.writeError(ctx, w, "document attach failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Document uploaded: " + doc.Filename,
		"document": doc,
	})
}

func (h *Handler) handleDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := h.engine.Documents(ctx, chi.URLParam(r, "task_id"))
	if err != nil {
		h.writeError(ctx, w, "document list failed", err)
		return
	}
	if docs == nil {
		docs = []DocumentRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
