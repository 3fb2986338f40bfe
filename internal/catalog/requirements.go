package catalog

// ServiceRequirement declares what a profile must contain before a service
// application can proceed. Immutable per service id.
type ServiceRequirement struct {
	RequiredFields         []string
	RequiredDocuments      []string
	RequiredSecurityLevel  Tier
	RequiredBusinessFields []string
	Description            string
}

// ServiceRequirements maps service ids to their validation requirements.
var ServiceRequirements = map[string]ServiceRequirement{
	"visa_application": {
		RequiredFields:        []string{"full_name", "ic_number", "nationality", "passport_number", "passport_expiry", "phone", "email"},
		RequiredDocuments:     []string{"passport_uploaded", "photo_uploaded"},
		RequiredSecurityLevel: TierVerified,
		Description:           "Visa Application",
	},
	"passport_renewal": {
		RequiredFields:        []string{"full_name", "ic_number", "date_of_birth", "phone", "email", "passport_number"},
		RequiredDocuments:     []string{"ic_uploaded", "photo_uploaded"},
		RequiredSecurityLevel: TierVerified,
		Description:           "Passport Renewal",
	},
	"ic_replacement": {
		RequiredFields:        []string{"full_name", "ic_number", "date_of_birth", "phone", "email", "address"},
		RequiredDocuments:     []string{"birth_cert_uploaded", "photo_uploaded"},
		RequiredSecurityLevel: TierVerified,
		Description:           "IC Replacement",
	},
	"foreign_worker_permit": {
		RequiredFields:         []string{"full_name", "ic_number", "phone", "email", "employer_name", "company_name", "ssm_number"},
		RequiredDocuments:      []string{"ic_uploaded", "ssm_cert_uploaded"},
		RequiredSecurityLevel:  TierPremium,
		RequiredBusinessFields: []string{"business_type", "business_registration_date"},
		Description:            "Foreign Worker Permit",
	},
	"tax_filing": {
		RequiredFields:        []string{"full_name", "ic_number", "phone", "email", "monthly_income"},
		RequiredDocuments:     []string{},
		RequiredSecurityLevel: TierBasic,
		Description:           "Tax Filing",
	},
}

// RequirementsFor looks up the requirements for a service id.
func RequirementsFor(serviceID string) (ServiceRequirement, bool) {
	req, ok := ServiceRequirements[serviceID]
	return req, ok
}
