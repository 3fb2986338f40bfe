// Package audit captures structured events for every decision and task
// transition so a citizen's history is reviewable. Events are transport
// agnostic; stores and sinks fan out.
package audit

import "time"

// Action names one auditable occurrence.
type Action string

const (
	ActionProfileUpdated   Action = "profile_updated"
	ActionDocumentMarked   Action = "document_marked"
	ActionVerificationRun  Action = "verification_run"
	ActionValidationRun    Action = "validation_run"
	ActionTaskCreated      Action = "task_created"
	ActionTaskGateFailed   Action = "task_gate_failed"
	ActionTaskAdvanced     Action = "task_advanced"
	ActionTaskCompleted    Action = "task_completed"
	ActionTaskCancelled    Action = "task_cancelled"
	ActionTaskDeleted      Action = "task_deleted"
	ActionDocumentAttached Action = "document_attached"
	ActionIDRevoked        Action = "id_revoked"
	ActionIDRestored       Action = "id_restored"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id"`
	Action      Action    `json:"action"`
	ServiceType string    `json:"service_type,omitempty"`
	TaskID      string    `json:"task_id,omitempty"`
	Decision    string    `json:"decision,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	ClientIP    string    `json:"client_ip,omitempty"`
}
