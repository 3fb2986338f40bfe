// Package task implements the guided-task engine: a per-task step state
// machine whose creation can be gated on eligibility verification and
// profile validation.
package task

import (
	"strings"
	"time"

	"citizengate/internal/catalog"
	"citizengate/internal/eligibility"
	"citizengate/internal/validation"
	dErrors "citizengate/pkg/domain-errors"
)

// Status is the lifecycle state of a task. Only in_progress tasks advance.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// DocumentRecord is metadata for a document attached to a task. Content
// bytes live elsewhere; the engine only tracks what was attached and when.
type DocumentRecord struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size,omitempty"`
	Step        int       `json:"step,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Task is one user's run through a guided service. Steps are snapshotted at
// creation so catalog changes never shift a task under its owner.
// CurrentStep is 1-indexed.
type Task struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
	Steps       []catalog.Step `json:"steps"`
	CurrentStep int            `json:"current_step"`
	TotalSteps  int            `json:"total_steps"`
	Status      Status         `json:"status"`
	UserID      string         `json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Documents   []DocumentRecord `json:"documents"`

	// Set only on gated creation.
	Verification *eligibility.Report       `json:"auto_verification,omitempty"`
	UserData     []validation.PresentField `json:"user_data,omitempty"`
}

// Step returns the step at the task's current position, nil when the
// position has moved past the snapshot.
func (t *Task) Step() *catalog.Step {
	if t.CurrentStep < 1 || t.CurrentStep > len(t.Steps) {
		return nil
	}
	return &t.Steps[t.CurrentStep-1]
}

// Clone returns a deep-enough copy for handing out of the store: slices are
// copied, the step snapshot itself is immutable.
func (t *Task) Clone() *Task {
	out := *t
	out.Steps = append([]catalog.Step(nil), t.Steps...)
	out.Documents = append([]DocumentRecord(nil), t.Documents...)
	return &out
}

// CreateRequest starts a task for a service. UserID overrides the
// request-scoped user when set.
type CreateRequest struct {
	TaskType string `json:"task_type"`
	UserID   string `json:"user_id,omitempty"`
}

func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.TaskType) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "task_type is required")
	}
	return nil
}

// AttachDocumentRequest records one uploaded document's metadata.
type AttachDocumentRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Step        int    `json:"step,omitempty"`
}

func (r *AttachDocumentRequest) Validate() error {
	if strings.TrimSpace(r.Filename) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "filename is required")
	}
	if r.Size < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "size must not be negative")
	}
	return nil
}

// CreateResult wraps an ungated creation.
type CreateResult struct {
	Message string `json:"message"`
	Task    *Task  `json:"task"`
}

// GateResult is the outcome of a gated creation. Success false is a normal
// response, not an error: the reports tell the user what to fix.
type GateResult struct {
	Success        bool                `json:"success"`
	Message        string              `json:"message"`
	Task           *Task               `json:"task,omitempty"`
	Verification   *eligibility.Report `json:"auto_verification"`
	Validation     *validation.Report  `json:"validation,omitempty"`
	ActionRequired string              `json:"action_required,omitempty"`
	SkippedStep    string              `json:"skipped_step,omitempty"`
	CurrentStep    *catalog.Step       `json:"current_step,omitempty"`
	AutofillData   map[string]any      `json:"autofill_data,omitempty"`
}

// AdvanceResult wraps a step advance. Completed is set when the advance
// closed the task instead of moving it.
type AdvanceResult struct {
	Completed bool          `json:"completed"`
	Message   string        `json:"message"`
	Task      *Task         `json:"task"`
	NextStep  *catalog.Step `json:"next_step,omitempty"`
}
