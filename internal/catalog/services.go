package catalog

// StepKind tags the shape of a wizard step so consumers can switch
// exhaustively instead of probing optional fields.
type StepKind string

const (
	// StepKindLink sends the user to an external portal.
	StepKindLink StepKind = "link"
	// StepKindChecklist lists documents or items to gather.
	StepKindChecklist StepKind = "checklist"
	// StepKindUpload collects document uploads.
	StepKindUpload StepKind = "upload"
	// StepKindInfo is a plain instruction with no action.
	StepKindInfo StepKind = "info"
	// StepKindComplete marks the closing step of a flow.
	StepKindComplete StepKind = "complete"
)

// LinkDetail carries the target of a link step.
type LinkDetail struct {
	URL         string `json:"url"`
	ActionLabel string `json:"action_label,omitempty"`
}

// ChecklistDetail carries the items of a checklist step.
type ChecklistDetail struct {
	Items       []string `json:"items"`
	ActionLabel string   `json:"action_label,omitempty"`
}

// UploadDetail carries the document list of an upload step.
type UploadDetail struct {
	RequiredDocs []string `json:"required_docs,omitempty"`
	ActionLabel  string   `json:"action_label,omitempty"`
}

// FormField describes one input of an external form a step pre-fills.
type FormField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// FeeItem is one line of a step's fee breakdown.
type FeeItem struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// Step is one stage of a guided service. Kind selects which detail struct is
// populated; AutofillFields, Form, Fees and Deadline are auxiliary data any
// kind may carry. The engine never interprets step content beyond counting
// steps and exposing the current one.
type Step struct {
	ID          int      `json:"id"`
	Kind        StepKind `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`

	Link      *LinkDetail      `json:"link,omitempty"`
	Checklist *ChecklistDetail `json:"checklist,omitempty"`
	Upload    *UploadDetail    `json:"upload,omitempty"`

	AutofillFields []string    `json:"autofill_fields,omitempty"`
	Form           []FormField `json:"form_fields,omitempty"`
	Fees           []FeeItem   `json:"fee_breakdown,omitempty"`
	Deadline       string      `json:"deadline,omitempty"`
}

// Service is one guided government service: identity, owning agency, and the
// fixed step sequence copied into every task created for it.
type Service struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Agency      string `json:"agency"`
	Website     string `json:"website"`
	Steps       []Step `json:"steps"`
}

// ServiceFor looks up a guided service definition.
func ServiceFor(serviceID string) (Service, bool) {
	svc, ok := Services[serviceID]
	return svc, ok
}

// Services maps service ids to their guided flows.
var Services = map[string]Service{
	"visa_application": {
		Name:        "Visa Application",
		Icon:        "✈️",
		Description: "Apply for entry visa to Malaysia",
		Agency:      "immigration",
		Website:     "https://www.imi.gov.my",
		Steps: []Step{
			{
				ID: 1, Kind: StepKindLink,
				Title:          "Check Eligibility",
				Description:    "Verify your documents and visa requirements. We'll auto-check your passport validity.",
				Link:           &LinkDetail{URL: "https://www.imi.gov.my/index.php/en/visa/visa-requirement/", ActionLabel: "Check Requirements"},
				AutofillFields: []string{"passport_number", "nationality", "date_of_birth"},
			},
			{
				ID: 2, Kind: StepKindLink,
				Title:          "Book Appointment",
				Description:    "Book appointment at STO JPN for biometric and document submission. Your details will be pre-filled.",
				Link:           &LinkDetail{URL: "https://sto.imi.gov.my/", ActionLabel: "Book at STO"},
				AutofillFields: []string{"full_name", "ic_number", "phone", "email"},
			},
			{
				ID: 3, Kind: StepKindChecklist,
				Title:       "Prepare Documents",
				Description: "Gather: Passport (6mo validity), photos, travel itinerary, hotel booking",
				Checklist: &ChecklistDetail{
					Items:       []string{"Passport with 6+ months validity", "2 passport photos (35x50mm)", "Flight itinerary", "Hotel booking confirmation", "Proof of funds"},
					ActionLabel: "View My Passport",
				},
			},
			{
				ID: 4, Kind: StepKindLink,
				Title:          "Submit Application",
				Description:    "Submit documents at your appointment with auto-filled application form",
				Link:           &LinkDetail{URL: "https://malaysiavisa.imi.gov.my/evisa/evisa.jsp", ActionLabel: "Apply Online"},
				AutofillFields: []string{"full_name", "passport_number", "date_of_birth", "nationality", "address", "phone", "email"},
			},
			{
				ID: 5, Kind: StepKindLink,
				Title:       "Pay Fees",
				Description: "Processing fee varies by visa type and nationality",
				Link:        &LinkDetail{URL: "https://malaysiavisa.imi.gov.my/evisa/payment.jsp", ActionLabel: "Make Payment"},
			},
			{
				ID: 6, Kind: StepKindComplete,
				Title:       "Collect Visa",
				Description: "Collect visa or check email for e-Visa",
			},
		},
	},
	"passport_renewal": {
		Name:        "Passport Renewal",
		Icon:        "📘",
		Description: "Renew Malaysian passport",
		Agency:      "immigration",
		Website:     "https://www.imi.gov.my",
		Steps: []Step{
			{
				ID: 1, Kind: StepKindLink,
				Title:       "Book Online Appointment",
				Description: "Book slot at UTC/JPN via STO portal",
				Link:        &LinkDetail{URL: "https://sto.imi.gov.my/", ActionLabel: "Book Appointment"},
			},
			{
				ID: 2, Kind: StepKindChecklist,
				Title:       "Prepare Documents",
				Description: "Gather: Old passport, MyKad, recent photos",
				Checklist:   &ChecklistDetail{Items: []string{"Old passport", "MyKad (original)", "1 passport photo"}},
			},
			{
				ID: 3, Kind: StepKindInfo,
				Title:       "Visit Counter",
				Description: "Attend appointment with documents",
			},
			{
				ID: 4, Kind: StepKindLink,
				Title:       "Pay Fee",
				Description: "RM200 (5 years) or RM100 (2 years)",
				Link:        &LinkDetail{URL: "https://www.imi.gov.my", ActionLabel: "Fee Details"},
			},
			{
				ID: 5, Kind: StepKindComplete,
				Title:       "Collect Passport",
				Description: "Usually ready in 1-2 working days",
			},
		},
	},
	"ic_replacement": {
		Name:        "MyKad (IC) Replacement",
		Icon:        "🪪",
		Description: "Replace lost or damaged MyKad",
		Agency:      "jpn",
		Website:     "https://www.jpn.gov.my",
		Steps: []Step{
			{
				ID: 1, Kind: StepKindLink,
				Title:       "Make Police Report",
				Description: "For lost IC, make report at police station or online",
				Link:        &LinkDetail{URL: "https://ereporting.rmp.gov.my/", ActionLabel: "Make Report Online"},
			},
			{
				ID: 2, Kind: StepKindLink,
				Title:       "Book JPN Appointment",
				Description: "Book slot at nearest JPN branch",
				Link:        &LinkDetail{URL: "https://www.jpn.gov.my/en/appointment/", ActionLabel: "Book at JPN"},
			},
			{
				ID: 3, Kind: StepKindChecklist,
				Title:       "Prepare Documents",
				Description: "Police report, birth cert, old IC photo (if available)",
				Checklist:   &ChecklistDetail{Items: []string{"Police report", "Birth certificate", "2 passport photos"}},
			},
			{
				ID: 4, Kind: StepKindInfo,
				Title:       "Visit JPN",
				Description: "Submit documents and take photo/fingerprint",
			},
			{
				ID: 5, Kind: StepKindLink,
				Title:       "Pay Fee",
				Description: "RM10 (first replacement), RM100+ (subsequent)",
				Link:        &LinkDetail{URL: "https://www.jpn.gov.my", ActionLabel: "Fee Details"},
			},
			{
				ID: 6, Kind: StepKindComplete,
				Title:       "Collect IC",
				Description: "Same day or next day collection",
			},
		},
	},
	"foreign_worker_permit": {
		Name:        "Foreign Worker Permit",
		Icon:        "👷",
		Description: "Apply for foreign worker employment permit",
		Agency:      "immigration",
		Website:     "https://myimms.imi.gov.my",
		Steps: []Step{
			{
				ID: 1, Kind: StepKindLink,
				Title:          "Register MyIMMS Account",
				Description:    "Create employer account on MyIMMS portal. Your company info will be auto-filled.",
				Link:           &LinkDetail{URL: "https://myimms.imi.gov.my/myimms/register", ActionLabel: "Register at MyIMMS"},
				AutofillFields: []string{"company_name", "ssm_number", "employer_name", "employer_ic", "phone", "email"},
			},
			{
				ID: 2, Kind: StepKindLink,
				Title:          "Verify Company with SSM",
				Description:    "Check your company registration status on SSM portal",
				Link:           &LinkDetail{URL: "https://www.ssm.com.my/Pages/e-Search.aspx", ActionLabel: "Verify SSM Registration"},
				AutofillFields: []string{"ssm_number"},
			},
			{
				ID: 3, Kind: StepKindLink,
				Title:          "Submit Permit Application",
				Description:    "Fill out the work permit application form with worker details",
				Link:           &LinkDetail{URL: "https://myimms.imi.gov.my/myimms/newApplication", ActionLabel: "Start Application"},
				AutofillFields: []string{"employer_name", "company_name", "worker_name", "worker_passport", "worker_nationality"},
				Form: []FormField{
					{Name: "worker_name", Label: "Worker Full Name", Type: "text"},
					{Name: "worker_passport", Label: "Passport Number", Type: "text"},
					{Name: "worker_nationality", Label: "Nationality", Type: "select"},
					{Name: "job_position", Label: "Job Position", Type: "text"},
					{Name: "salary", Label: "Monthly Salary (RM)", Type: "number"},
				},
			},
			{
				ID: 4, Kind: StepKindUpload,
				Title:       "Upload Worker Documents",
				Description: "Upload all required worker and employer documents",
				Upload: &UploadDetail{
					RequiredDocs: []string{"Worker passport (all pages)", "Offer letter", "Employment contract", "FOMEMA medical report", "Employer SSM certificate"},
					ActionLabel:  "Upload Documents",
				},
			},
			{
				ID: 5, Kind: StepKindLink,
				Title:       "Pay Levy & Fees",
				Description: "Pay processing fee and annual levy",
				Link:        &LinkDetail{URL: "https://myimms.imi.gov.my/myimms/payment", ActionLabel: "Make Payment"},
				Fees: []FeeItem{
					{Item: "Annual Levy (Manufacturing)", Amount: "RM1,850"},
					{Item: "Annual Levy (Service)", Amount: "RM1,490"},
					{Item: "Annual Levy (Agriculture)", Amount: "RM640"},
					{Item: "Processing Fee", Amount: "RM125"},
					{Item: "Visa Fee", Amount: "RM30"},
				},
			},
			{
				ID: 6, Kind: StepKindLink,
				Title:       "Biometric Enrollment",
				Description: "Worker must complete biometric at Immigration",
				Link:        &LinkDetail{URL: "https://myimms.imi.gov.my/myimms/appointment", ActionLabel: "Book Biometric Slot"},
			},
			{
				ID: 7, Kind: StepKindComplete,
				Title:       "Collect Work Permit",
				Description: "Permit issued, track status online",
				Link:        &LinkDetail{URL: "https://myimms.imi.gov.my/myimms/status", ActionLabel: "Check Status"},
			},
		},
	},
	"tax_filing": {
		Name:        "Tax Filing (e-Filing)",
		Icon:        "📊",
		Description: "File annual income tax return online",
		Agency:      "lhdn",
		Website:     "https://mytax.hasil.gov.my",
		Steps: []Step{
			{
				ID: 1, Kind: StepKindLink,
				Title:          "Register/Login MyTax",
				Description:    "Access LHDN MyTax portal with your ID",
				Link:           &LinkDetail{URL: "https://mytax.hasil.gov.my/", ActionLabel: "Open MyTax"},
				AutofillFields: []string{"ic_number", "full_name"},
			},
			{
				ID: 2, Kind: StepKindChecklist,
				Title:       "Gather Documents",
				Description: "Collect all required tax documents",
				Checklist:   &ChecklistDetail{Items: []string{"EA Form from employer", "Interest statements", "Insurance receipts", "Medical receipts", "Education receipts", "Donation receipts"}},
			},
			{
				ID: 3, Kind: StepKindLink,
				Title:       "Calculate Income",
				Description: "Use LHDN calculator to estimate your tax",
				Link:        &LinkDetail{URL: "https://www.hasil.gov.my/bt_go498xMTUzOXMx49.php", ActionLabel: "Open Tax Calculator"},
			},
			{
				ID: 4, Kind: StepKindUpload,
				Title:       "Upload Documents",
				Description: "Upload receipts and supporting documents",
				Upload:      &UploadDetail{ActionLabel: "Upload Documents"},
			},
			{
				ID: 5, Kind: StepKindLink,
				Title:       "Submit Return",
				Description: "Complete and submit your ITRF (Form BE/B/M)",
				Link:        &LinkDetail{URL: "https://mytax.hasil.gov.my/", ActionLabel: "Submit Tax Return"},
				Deadline:    "April 30 (employed) / June 30 (business)",
			},
			{
				ID: 6, Kind: StepKindLink,
				Title:       "Pay Tax",
				Description: "Pay any outstanding tax via FPX or credit card",
				Link:        &LinkDetail{URL: "https://byrhasil.hasil.gov.my/", ActionLabel: "Pay Tax Online"},
			},
		},
	},
}
