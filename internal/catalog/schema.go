package catalog

// FieldSpec describes one profile field: its display label and whether the
// schema considers it required for a complete profile.
type FieldSpec struct {
	Label    string
	Required bool
}

// Category groups profile fields for display and completion metrics.
type Category string

const (
	CategoryPersonal   Category = "personal"
	CategoryPassport   Category = "passport"
	CategoryEmployment Category = "employment"
	CategoryBusiness   Category = "business"
	CategorySecurity   Category = "security"
	CategoryDocuments  Category = "documents"
)

// CategoryOrder fixes iteration order for completion reporting.
var CategoryOrder = []Category{
	CategoryPersonal,
	CategoryPassport,
	CategoryEmployment,
	CategoryBusiness,
	CategorySecurity,
	CategoryDocuments,
}

// ProfileSchema is the static catalog of known profile fields. Loaded once,
// read-only for the process lifetime.
var ProfileSchema = map[Category]map[string]FieldSpec{
	CategoryPersonal: {
		"full_name":     {Label: "Full Name", Required: true},
		"ic_number":     {Label: "IC Number (MyKad)", Required: true},
		"date_of_birth": {Label: "Date of Birth", Required: true},
		"gender":        {Label: "Gender", Required: true},
		"nationality":   {Label: "Nationality", Required: true},
		"phone":         {Label: "Phone Number", Required: true},
		"email":         {Label: "Email Address", Required: true},
		"address":       {Label: "Home Address", Required: false},
	},
	CategoryPassport: {
		"passport_number":     {Label: "Passport Number", Required: false},
		"passport_expiry":     {Label: "Passport Expiry Date", Required: false},
		"passport_issue_date": {Label: "Passport Issue Date", Required: false},
	},
	CategoryEmployment: {
		"employer_name":  {Label: "Employer Name", Required: false},
		"company_name":   {Label: "Company Name", Required: false},
		"ssm_number":     {Label: "SSM Registration Number", Required: false},
		"job_title":      {Label: "Job Title", Required: false},
		"monthly_income": {Label: "Monthly Income", Required: false},
	},
	CategoryBusiness: {
		"business_type":              {Label: "Business Type", Required: false},
		"business_sector":            {Label: "Business Sector", Required: false},
		"business_registration_date": {Label: "Business Registration Date", Required: false},
		"authorized_capital":         {Label: "Authorized Capital (RM)", Required: false},
		"paid_up_capital":            {Label: "Paid-Up Capital (RM)", Required: false},
		"num_employees":              {Label: "Number of Employees", Required: false},
		"contractor_license":         {Label: "Contractor License (CIDB)", Required: false},
		"contractor_grade":           {Label: "Contractor Grade", Required: false},
	},
	CategorySecurity: {
		"security_level":       {Label: "Security Verification Level", Required: false},
		"biometric_registered": {Label: "Biometric Registered", Required: false},
		"two_factor_enabled":   {Label: "Two-Factor Authentication", Required: false},
		"account_status":       {Label: "Account Status", Required: false},
		"last_login":           {Label: "Last Login", Required: false},
	},
	CategoryDocuments: {
		"birth_cert_uploaded":       {Label: "Birth Certificate", Required: false},
		"ic_uploaded":               {Label: "IC Copy", Required: false},
		"passport_uploaded":         {Label: "Passport Copy", Required: false},
		"photo_uploaded":            {Label: "Passport Photo", Required: false},
		"ssm_cert_uploaded":         {Label: "SSM Certificate", Required: false},
		"business_license_uploaded": {Label: "Business License", Required: false},
	},
}
