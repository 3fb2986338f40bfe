package catalog

// Tier is the coarse trust level attached to a user profile, totally ordered
// basic < verified < premium.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierVerified Tier = "verified"
	TierPremium  Tier = "premium"
)

// TierSpec declares what a tier unlocks and which profile fields must be
// present to hold it.
type TierSpec struct {
	Description      string
	AllowedServices  []string
	TransactionLimit int
	Requirements     []string
}

// SecurityTiers is the static tier table.
var SecurityTiers = map[Tier]TierSpec{
	TierBasic: {
		Description:      "Basic account - email verified only",
		AllowedServices:  []string{"tax_filing"},
		TransactionLimit: 1000,
		Requirements:     []string{"email"},
	},
	TierVerified: {
		Description:      "Verified account - IC and biometric verified",
		AllowedServices:  []string{"tax_filing", "passport_renewal", "ic_replacement", "visa_application"},
		TransactionLimit: 50000,
		Requirements:     []string{"email", "ic_number", "biometric_registered"},
	},
	TierPremium: {
		Description:      "Premium account - Full verification with 2FA",
		AllowedServices:  []string{"tax_filing", "passport_renewal", "ic_replacement", "visa_application", "foreign_worker_permit"},
		TransactionLimit: 500000,
		Requirements:     []string{"email", "ic_number", "biometric_registered", "two_factor_enabled"},
	},
}

// TierRank orders tiers for comparison: basic=1, verified=2, premium=3.
// Unrecognized tier names rank 0, below every real tier.
func TierRank(t Tier) int {
	switch t {
	case TierBasic:
		return 1
	case TierVerified:
		return 2
	case TierPremium:
		return 3
	default:
		return 0
	}
}
