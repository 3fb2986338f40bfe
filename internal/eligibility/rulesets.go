package eligibility

// RuleSets holds the eligibility rules per service. The data is static for
// the process lifetime; evaluation order follows slice order.
var RuleSets = map[string][]Rule{
	"visa_application": {
		{ID: "passport_valid", Name: "Passport Validity", Description: "Passport must be valid for at least 6 months", CheckField: "passport_expiry", Severity: SeverityCritical},
		{ID: "passport_exists", Name: "Passport Registered", Description: "Must have a valid passport number", CheckField: "passport_number", Severity: SeverityCritical},
		{ID: "age_check", Name: "Age Verification", Description: "Must be at least 18 years old", CheckField: "date_of_birth", Severity: SeverityCritical},
		{ID: "security_level", Name: "Security Verification", Description: "Account must be verified level or higher", CheckField: "security_level", Severity: SeverityHigh},
		{ID: "contact_info", Name: "Contact Information", Description: "Valid phone and email required", CheckField: "phone,email", Severity: SeverityMedium},
	},
	"passport_renewal": {
		{ID: "nationality_check", Name: "Nationality", Description: "Must be Malaysian citizen", CheckField: "nationality", Severity: SeverityCritical},
		{ID: "ic_exists", Name: "IC Registered", Description: "Must have MyKad number", CheckField: "ic_number", Severity: SeverityCritical},
		{ID: "old_passport_check", Name: "Old Passport", Description: "Old passport number for reference", CheckField: "passport_number", Severity: SeverityHigh},
		{ID: "passport_expiry_check", Name: "Expiry Check", Description: "Check if passport needs renewal", CheckField: "passport_expiry", Severity: SeverityMedium},
	},
	"ic_replacement": {
		{ID: "nationality_check", Name: "Nationality", Description: "Must be Malaysian citizen", CheckField: "nationality", Severity: SeverityCritical},
		{ID: "ic_exists", Name: "IC Number Known", Description: "Previous IC number required", CheckField: "ic_number", Severity: SeverityCritical},
		{ID: "address_check", Name: "Address Verification", Description: "Current address required", CheckField: "address", Severity: SeverityHigh},
		{ID: "biometric_check", Name: "Biometric Registered", Description: "Must have biometric on file", CheckField: "biometric_registered", Severity: SeverityMedium},
	},
	"foreign_worker_permit": {
		{ID: "employer_registered", Name: "Employer Verification", Description: "Employer must be registered", CheckField: "employer_name", Severity: SeverityCritical},
		{ID: "ssm_check", Name: "SSM Registration", Description: "Valid SSM number required", CheckField: "ssm_number", Severity: SeverityCritical},
		{ID: "business_type", Name: "Business Type", Description: "Business entity type must be specified", CheckField: "business_type", Severity: SeverityHigh},
		{ID: "security_premium", Name: "Premium Security", Description: "Premium security level required for FW permit", CheckField: "security_level", Severity: SeverityCritical},
	},
	"tax_filing": {
		{ID: "ic_check", Name: "IC Verification", Description: "Valid IC number for tax reference", CheckField: "ic_number", Severity: SeverityCritical},
		{ID: "income_declared", Name: "Income Information", Description: "Income sources must be declared", CheckField: "monthly_income", Severity: SeverityHigh},
		{ID: "tax_number", Name: "Tax Number", Description: "LHDN tax number check", CheckField: "tax_number", Severity: SeverityMedium},
	},
}
