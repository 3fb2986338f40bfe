package eligibility

import (
	"fmt"
	"math"
	"strings"
	"time"

	"citizengate/internal/catalog"
	"citizengate/internal/profile"
)

// outcome is what a rule evaluator produces; the engine merges it into the
// full Result.
type outcome struct {
	status     Status
	message    string
	valueFound string
}

type evaluator func(rule Rule, p profile.Profile, now time.Time) outcome

// evaluators dispatches known rule ids to their typed predicates. Unknown
// ids fall through to the generic presence check.
var evaluators = map[string]evaluator{
	"passport_valid":        evalPassportValid,
	"passport_expiry_check": evalPassportExpiryCheck,
	"age_check":             evalAgeCheck,
	"nationality_check":     evalNationality,
	"security_level":        evalSecurityVerified,
	"security_premium":      evalSecurityPremium,
	"biometric_check":       evalBiometric,
}

func evaluate(rule Rule, p profile.Profile, now time.Time) Result {
	eval, ok := evaluators[rule.ID]
	if !ok {
		eval = evalGenericPresence
	}
	out := eval(rule, p, now)
	return Result{
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Severity:    rule.Severity,
		Status:      out.status,
		Message:     out.message,
		ValueFound:  out.valueFound,
	}
}

// dateLayouts accepted for profile date fields. Bare dates are the common
// case; timestamps tolerated.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// daysBetween floors so a partial day does not count as a full one.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// monthsRemaining converts a day difference to whole months at 30 days per
// month. Day granularity first, then integer division.
func monthsRemaining(now, expiry time.Time) int {
	return daysBetween(now, expiry) / 30
}

func evalPassportValid(_ Rule, p profile.Profile, now time.Time) outcome {
	expiryRaw, _ := p.String("passport_expiry")
	if strings.TrimSpace(expiryRaw) == "" {
		return outcome{status: StatusFailed, message: "❌ No passport expiry date on record"}
	}
	expiry, err := parseDate(expiryRaw)
	if err != nil {
		return outcome{status: StatusFailed, message: "❌ Invalid passport expiry date format"}
	}
	months := monthsRemaining(now, expiry)
	if months >= 6 {
		return outcome{
			status:     StatusPassed,
			message:    fmt.Sprintf("✅ Passport valid until %s (%d months remaining)", expiryRaw, months),
			valueFound: expiryRaw,
		}
	}
	return outcome{
		status:     StatusFailed,
		message:    fmt.Sprintf("❌ Passport expires too soon (%s). Need at least 6 months validity.", expiryRaw),
		valueFound: expiryRaw,
	}
}

func evalPassportExpiryCheck(_ Rule, p profile.Profile, now time.Time) outcome {
	expiryRaw, _ := p.String("passport_expiry")
	if strings.TrimSpace(expiryRaw) == "" {
		return outcome{status: StatusPassed, message: "✅ No existing passport - new application"}
	}
	expiry, err := parseDate(expiryRaw)
	if err != nil {
		return outcome{status: StatusWarning, message: "⚠️ Could not parse passport expiry"}
	}
	months := monthsRemaining(now, expiry)
	switch {
	case months <= 0:
		return outcome{
			status:     StatusPassed,
			message:    fmt.Sprintf("✅ Passport expired on %s - renewal eligible", expiryRaw),
			valueFound: expiryRaw,
		}
	case months <= 6:
		return outcome{
			status:     StatusPassed,
			message:    fmt.Sprintf("✅ Passport expiring soon (%s) - renewal eligible", expiryRaw),
			valueFound: expiryRaw,
		}
	default:
		return outcome{
			status:     StatusWarning,
			message:    fmt.Sprintf("⚠️ Passport still valid until %s. Early renewal available.", expiryRaw),
			valueFound: expiryRaw,
		}
	}
}

func evalAgeCheck(_ Rule, p profile.Profile, now time.Time) outcome {
	dobRaw, _ := p.String("date_of_birth")
	if strings.TrimSpace(dobRaw) == "" {
		return outcome{status: StatusFailed, message: "❌ Date of birth not on record"}
	}
	dob, err := parseDate(dobRaw)
	if err != nil {
		return outcome{status: StatusFailed, message: "❌ Invalid date of birth format"}
	}
	// 365-day years: a known approximation that drifts one day per leap
	// year, kept for result stability.
	age := daysBetween(dob, now) / 365
	if age >= 18 {
		return outcome{
			status:     StatusPassed,
			message:    fmt.Sprintf("✅ Age verified: %d years old", age),
			valueFound: fmt.Sprintf("%d years old", age),
		}
	}
	return outcome{
		status:     StatusFailed,
		message:    fmt.Sprintf("❌ Must be 18+ years old. Current age: %d", age),
		valueFound: fmt.Sprintf("%d years old", age),
	}
}

func evalNationality(_ Rule, p profile.Profile, _ time.Time) outcome {
	nationality, _ := p.String("nationality")
	if nationality != "" && strings.EqualFold(nationality, "malaysian") {
		return outcome{
			status:     StatusPassed,
			message:    "✅ Nationality verified: " + nationality,
			valueFound: nationality,
		}
	}
	found := nationality
	if found == "" {
		found = "Not specified"
	}
	return outcome{
		status:     StatusFailed,
		message:    "❌ Must be Malaysian citizen. Found: " + found,
		valueFound: nationality,
	}
}

func securityLevel(p profile.Profile) string {
	if level, ok := p.String("security_level"); ok && level != "" {
		return level
	}
	return string(catalog.TierBasic)
}

func evalSecurityVerified(_ Rule, p profile.Profile, _ time.Time) outcome {
	level := securityLevel(p)
	if level == string(catalog.TierVerified) || level == string(catalog.TierPremium) {
		return outcome{status: StatusPassed, message: "✅ Security level: " + level, valueFound: level}
	}
	return outcome{
		status:     StatusFailed,
		message:    "❌ Need 'verified' or 'premium' level. Current: " + level,
		valueFound: level,
	}
}

func evalSecurityPremium(_ Rule, p profile.Profile, _ time.Time) outcome {
	level := securityLevel(p)
	if level == string(catalog.TierPremium) {
		return outcome{status: StatusPassed, message: "✅ Premium security level verified", valueFound: level}
	}
	return outcome{
		status:     StatusFailed,
		message:    "❌ Premium security required. Current: " + level,
		valueFound: level,
	}
}

func evalBiometric(_ Rule, p profile.Profile, _ time.Time) outcome {
	registered := p.Truthy("biometric_registered")
	value := "false"
	if registered {
		value = "true"
	}
	if registered {
		return outcome{status: StatusPassed, message: "✅ Biometric data on file", valueFound: value}
	}
	// Missing biometrics never block; capture happens at the counter.
	return outcome{
		status:     StatusWarning,
		message:    "⚠️ Biometric not registered - will need to capture at office",
		valueFound: value,
	}
}

// evalGenericPresence handles rules with no typed predicate: every listed
// field must be present and non-blank. Critical rules fail hard, everything
// else degrades to a warning.
func evalGenericPresence(rule Rule, p profile.Profile, _ time.Time) outcome {
	allFound := true
	var values []string
	for _, field := range strings.Split(rule.CheckField, ",") {
		field = strings.TrimSpace(field)
		if p.Truthy(field) {
			values = append(values, fmt.Sprintf("%s: %v", field, p[field]))
		} else {
			allFound = false
		}
	}

	if allFound {
		return outcome{
			status:     StatusPassed,
			message:    fmt.Sprintf("✅ %s verified", rule.Name),
			valueFound: strings.Join(values, ", "),
		}
	}
	if rule.Severity == SeverityCritical {
		return outcome{
			status:  StatusFailed,
			message: fmt.Sprintf("❌ %s - Required field(s) missing", rule.Name),
		}
	}
	return outcome{
		status:  StatusWarning,
		message: fmt.Sprintf("⚠️ %s - Optional field(s) missing", rule.Name),
	}
}
