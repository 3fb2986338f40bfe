// Package validation implements the profile validator: a data-completeness
// check that lists what a service still needs from a user. Distinct from the
// eligibility agent, which judges rule outcomes; the validator only reports
// presence and security tier gaps.
package validation

// FieldStatus names a single required field, with the display label resolved.
// Category is set for business fields so clients can group them.
type FieldStatus struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

// PresentField is a required field that is filled, with its current value.
type PresentField struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

// SecurityIssue describes a tier shortfall or a missing tier requirement.
type SecurityIssue struct {
	Issue         string `json:"issue"`
	CurrentLevel  string `json:"current_level,omitempty"`
	RequiredLevel string `json:"required_level,omitempty"`
	Requirement   string `json:"requirement,omitempty"`
	Label         string `json:"label,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Report is the full validation outcome. Valid holds exactly when nothing is
// missing: no fields, no documents, no security issues.
type Report struct {
	Valid                 bool           `json:"valid"`
	ServiceType           string         `json:"service_type"`
	ServiceDescription    string         `json:"service_description"`
	MissingFields         []FieldStatus  `json:"missing_fields"`
	MissingDocuments      []FieldStatus  `json:"missing_documents"`
	SecurityIssues        []SecurityIssue `json:"security_issues"`
	PresentFields         []PresentField `json:"present_fields"`
	UserSecurityLevel     string         `json:"user_security_level"`
	RequiredSecurityLevel string         `json:"required_security_level"`
	TotalRequired         int            `json:"total_required"`
	TotalPresent          int            `json:"total_present"`
	CompletionPercentage  int            `json:"completion_percentage"`
}

const (
	issueInsufficientLevel  = "insufficient_security_level"
	issueMissingRequirement = "missing_security_requirement"
)
