package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"citizengate/internal/catalog"
	"citizengate/internal/eligibility"
	"citizengate/internal/profile"
	"citizengate/internal/task/metrics"
	"citizengate/internal/validation"
	dErrors "citizengate/pkg/domain-errors"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/sentinel"
	"citizengate/pkg/requestcontext"
)

// Engine owns the task lifecycle. Creation can be gated: eligibility and
// validation both run against one profile snapshot, and only a clean pass
// creates the task.
type Engine struct {
	store    Store
	profiles profile.Store
	audit    *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewEngine(store Store, profiles profile.Store, auditPub *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		profiles: profiles,
		audit:    auditPub,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("citizengate/internal/task"),
	}
}

// shortID matches the original system's 8-character task and document ids.
func shortID() string {
	return uuid.NewString()[:8]
}

func notFound(taskID string) error {
	return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "task not found: "+taskID)
}

func (e *Engine) newTask(ctx context.Context, userID, serviceID string, svc catalog.Service, startStep int) *Task {
	now := requestcontext.Now(ctx)
	return &Task{
		ID:          shortID(),
		Type:        serviceID,
		Name:        svc.Name,
		Icon:        svc.Icon,
		Description: svc.Description,
		Steps:       append([]catalog.Step(nil), svc.Steps...),
		CurrentStep: startStep,
		TotalSteps:  len(svc.Steps),
		Status:      StatusInProgress,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Documents:   []DocumentRecord{},
	}
}

// Create starts a task at step 1 with no gating.
func (e *Engine) Create(ctx context.Context, userID, serviceID string) (*CreateResult, error) {
	svc, ok := catalog.ServiceFor(serviceID)
	if !ok {
		return nil, catalog.UnknownServiceError(serviceID)
	}

	t := e.newTask(ctx, userID, serviceID, svc, 1)
	if err := e.store.Create(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save task")
	}

	e.metrics.IncrementTransition(serviceID, "created")
	e.emit(ctx, audit.Event{
		UserID:      userID,
		Action:      audit.ActionTaskCreated,
		ServiceType: serviceID,
		TaskID:      t.ID,
	})
	return &CreateResult{
		Message: "Task created: " + svc.Name,
		Task:    t,
	}, nil
}

// CreateGated runs eligibility verification and profile validation against
// one profile snapshot, in parallel, and creates the task only when both
// pass. A failed gate is a normal result carrying the reports. The created
// task starts at step 2: the eligibility step is auto-completed.
func (e *Engine) CreateGated(ctx context.Context, userID, serviceID string) (*GateResult, error) {
	ctx, span := e.tracer.Start(ctx, "task.create_gated", trace.WithAttributes(
		attribute.String("service_type", serviceID),
	))
	defer span.End()
	started := time.Now()

	svc, ok := catalog.ServiceFor(serviceID)
	if !ok {
		return nil, catalog.UnknownServiceError(serviceID)
	}

	snapshot, err := e.profiles.Get(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		snapshot = profile.Profile{}
	} else if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load profile")
	}

	now := requestcontext.Now(ctx)
	var (
		verification   *eligibility.Report
		validationRept *validation.Report
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var evalErr error
		verification, evalErr = eligibility.Evaluate(snapshot, serviceID, now)
		return evalErr
	})
	g.Go(func() error {
		var evalErr error
		validationRept, evalErr = validation.Evaluate(snapshot, serviceID)
		return evalErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.metrics.ObserveGateLatency(time.Since(started))

	if !verification.Eligible {
		span.SetAttributes(attribute.String("gate.result", "ineligible"))
		e.metrics.IncrementGate(serviceID, "ineligible")
		e.emit(ctx, audit.Event{
			UserID:      userID,
			Action:      audit.ActionTaskGateFailed,
			ServiceType: serviceID,
			Decision:    "ineligible",
			Reason:      verification.Recommendation,
		})
		return &GateResult{
			Success:        false,
			Message:        "Eligibility check failed",
			Verification:   verification,
			ActionRequired: "Please update your profile to fix the failed checks",
		}, nil
	}

	if !validationRept.Valid {
		span.SetAttributes(attribute.String("gate.result", "invalid_profile"))
		e.metrics.IncrementGate(serviceID, "invalid_profile")
		e.emit(ctx, audit.Event{
			UserID:      userID,
			Action:      audit.ActionTaskGateFailed,
			ServiceType: serviceID,
			Decision:    "invalid_profile",
			Reason:      fmt.Sprintf("%d field(s) and %d document(s) missing", len(validationRept.MissingFields), len(validationRept.MissingDocuments)),
		})
		return &GateResult{
			Success:        false,
			Message:        "Profile validation failed",
			Verification:   verification,
			Validation:     validationRept,
			ActionRequired: "Please complete your profile with the missing information",
		}, nil
	}

	t := e.newTask(ctx, userID, serviceID, svc, 2)
	t.Verification = verification
	t.UserData = validationRept.PresentFields
	if err := e.store.Create(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save task")
	}

	span.SetAttributes(attribute.String("gate.result", "passed"), attribute.String("task_id", t.ID))
	e.metrics.IncrementGate(serviceID, "passed")
	e.metrics.IncrementTransition(serviceID, "created")
	e.emit(ctx, audit.Event{
		UserID:      userID,
		Action:      audit.ActionTaskCreated,
		ServiceType: serviceID,
		TaskID:      t.ID,
		Decision:    "gate_passed",
	})

	autofill := make(map[string]any, len(validationRept.PresentFields))
	for _, f := range validationRept.PresentFields {
		autofill[f.Field] = f.Value
	}
	return &GateResult{
		Success:      true,
		Message:      "✅ Eligibility verified! Task started: " + svc.Name,
		Task:         t,
		Verification: verification,
		SkippedStep:  "Step 1 (Eligibility Check) - Auto-completed by agent",
		CurrentStep:  t.Step(),
		AutofillData: autofill,
	}, nil
}

// Get returns one task.
func (e *Engine) Get(ctx context.Context, taskID string) (*Task, error) {
	t, err := e.store.Get(ctx, taskID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(taskID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load task")
	}
	return t, nil
}

// ListByUser returns the user's tasks in creation order.
func (e *Engine) ListByUser(ctx context.Context, userID string) ([]*Task, error) {
	tasks, err := e.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list tasks")
	}
	return tasks, nil
}

// Advance moves an in-progress task forward one step. Advancing from the
// last step completes the task instead. Any other status rejects the
// transition.
func (e *Engine) Advance(ctx context.Context, taskID string) (*AdvanceResult, error) {
	now := requestcontext.Now(ctx)
	completed := false
	t, err := e.store.Update(ctx, taskID, func(t *Task) error {
		if t.Status != StatusInProgress {
			return dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeConflict,
				fmt.Sprintf("cannot advance task in status %q", t.Status))
		}
		if t.CurrentStep >= t.TotalSteps {
			t.Status = StatusCompleted
			completed = true
		} else {
			t.CurrentStep++
		}
		t.UpdatedAt = now
		return nil
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(taskID)
	}
	if err != nil {
		return nil, err
	}

	if completed {
		e.metrics.IncrementTransition(t.Type, "completed")
		e.emit(ctx, audit.Event{
			UserID:      t.UserID,
			Action:      audit.ActionTaskCompleted,
			ServiceType: t.Type,
			TaskID:      t.ID,
		})
		return &AdvanceResult{
			Completed: true,
			Message:   fmt.Sprintf("🎉 Task completed: %s!", t.Name),
			Task:      t,
		}, nil
	}

	e.metrics.IncrementTransition(t.Type, "advanced")
	e.emit(ctx, audit.Event{
		UserID:      t.UserID,
		Action:      audit.ActionTaskAdvanced,
		ServiceType: t.Type,
		TaskID:      t.ID,
		Reason:      fmt.Sprintf("step %d", t.CurrentStep),
	})
	return &AdvanceResult{
		Completed: false,
		Message:   fmt.Sprintf("Moved to step %d", t.CurrentStep),
		Task:      t,
		NextStep:  t.Step(),
	}, nil
}

// Cancel marks a task cancelled. Permitted from any state and idempotent:
// cancelling twice, or cancelling a completed task, just overwrites the
// status.
func (e *Engine) Cancel(ctx context.Context, taskID string) (*Task, error) {
	now := requestcontext.Now(ctx)
	t, err := e.store.Update(ctx, taskID, func(t *Task) error {
		t.Status = StatusCancelled
		t.UpdatedAt = now
		return nil
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(taskID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "cancel task")
	}

	e.metrics.IncrementTransition(t.Type, "cancelled")
	e.emit(ctx, audit.Event{
		UserID:      t.UserID,
		Action:      audit.ActionTaskCancelled,
		ServiceType: t.Type,
		TaskID:      t.ID,
	})
	return t, nil
}

// Delete removes a task and its document records.
func (e *Engine) Delete(ctx context.Context, taskID string) error {
	t, err := e.store.Get(ctx, taskID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return notFound(taskID)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "load task")
	}
	if err := e.store.Delete(ctx, taskID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(taskID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete task")
	}

	e.metrics.IncrementTransition(t.Type, "deleted")
	e.emit(ctx, audit.Event{
		UserID:      t.UserID,
		Action:      audit.ActionTaskDeleted,
		ServiceType: t.Type,
		TaskID:      taskID,
	})
	return nil
}

// AttachDocument records document metadata against a task.
func (e *Engine) AttachDocument(ctx context.Context, taskID string, req *AttachDocumentRequest) (*DocumentRecord, error) {
	doc := DocumentRecord{
		ID:          shortID(),
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Size:        req.Size,
		Step:        req.Step,
		UploadedAt:  requestcontext.Now(ctx),
	}
	t, err := e.store.Update(ctx, taskID, func(t *Task) error {
		t.Documents = append(t.Documents, doc)
		t.UpdatedAt = doc.UploadedAt
		return nil
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound(taskID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "attach document")
	}

	e.emit(ctx, audit.Event{
		UserID:      t.UserID,
		Action:      audit.ActionDocumentAttached,
		ServiceType: t.Type,
		TaskID:      taskID,
		Reason:      req.Filename,
	})
	return &doc, nil
}

// Documents lists a task's attached document metadata.
func (e *Engine) Documents(ctx context.Context, taskID string) ([]DocumentRecord, error) {
	t, err := e.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return t.Documents, nil
}

func (e *Engine) emit(ctx context.Context, event audit.Event) {
	if e.audit == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	if err := e.audit.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "audit emit failed",
			"request_id", event.RequestID,
			"action", string(event.Action),
			"error", err,
		)
	}
}
