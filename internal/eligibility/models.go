// Package eligibility implements the verification agent: a rule engine that
// evaluates declarative eligibility rules against a user profile and produces
// a per-rule report with an overall verdict.
package eligibility

// Severity orders how much a rule failure matters. Critical rules block
// eligibility when their generic check fails; lower severities degrade to
// warnings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Status is the outcome of one rule evaluation. Warnings never block.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusWarning Status = "warning"
)

// Rule is one declarative eligibility rule. CheckField may join several
// fields with commas for the generic presence check.
type Rule struct {
	ID          string   `json:"rule_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CheckField  string   `json:"check_field"`
	Severity    Severity `json:"severity"`
}

// Result is one rule's evaluation outcome.
type Result struct {
	RuleID      string   `json:"rule_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Status      Status   `json:"status"`
	Message     string   `json:"message"`
	ValueFound  string   `json:"value_found,omitempty"`
}

// Summary aggregates rule outcomes. PassRate is a whole percentage of passed
// checks over total.
type Summary struct {
	TotalChecks int `json:"total_checks"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Warnings    int `json:"warnings"`
	PassRate    int `json:"pass_rate"`
}

// Report is the full verification outcome for one user and service.
// Eligible holds exactly when no rule failed; warnings do not count.
type Report struct {
	Eligible       bool     `json:"eligible"`
	ServiceType    string   `json:"service_type"`
	VerifiedAt     string   `json:"verification_timestamp"`
	Summary        Summary  `json:"summary"`
	Results        []Result `json:"results"`
	Recommendation string   `json:"recommendation"`
}
