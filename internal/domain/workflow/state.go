package workflow

// State represents an application's position in the certification lifecycle.
// The wire form is lowercase snake_case and is what gets persisted; lookups
// are case-sensitive, so "DRAFT" is not a valid state.
type State string

const (
	StateDraft                 State = "draft"
	StateSubmitted             State = "submitted"
	StateUnderReview           State = "under_review"
	StateRevisionRequired      State = "revision_required"
	StatePaymentPending        State = "payment_pending"
	StatePaymentVerified       State = "payment_verified"
	StateInspectionScheduled   State = "inspection_scheduled"
	StateInspectionCompleted   State = "inspection_completed"
	StatePhase2PaymentPending  State = "phase2_payment_pending"
	StatePhase2PaymentVerified State = "phase2_payment_verified"
	StateApproved              State = "approved"
	StateCertificateIssued     State = "certificate_issued"
	StateRejected              State = "rejected"
	StateExpired               State = "expired"
)

// StateMetadata describes the static properties of a lifecycle state.
type StateMetadata struct {
	Description string
	Owner       Role
	// TimeoutDays is the number of calendar days an application may sit in
	// this state before it becomes eligible for automatic expiry. Zero means
	// the state has no timeout window (terminal states, and approved).
	TimeoutDays     int
	CanEdit         bool
	PaymentRequired bool
	PaymentAmount   int // THB, whole units
	PaymentPhase    int // 1 or 2, only meaningful when PaymentRequired
}

// Certification fee schedule (THB).
const (
	DocumentReviewFee  = 5000
	FieldInspectionFee = 25000
)

var stateMetadata = map[State]StateMetadata{
	StateDraft: {
		Description: "Application is being prepared by the farmer",
		Owner:       RoleFarmer,
		TimeoutDays: 30,
		CanEdit:     true,
	},
	StateSubmitted: {
		Description: "Application submitted, waiting to enter review",
		Owner:       RoleSystem,
		TimeoutDays: 7,
	},
	StateUnderReview: {
		Description: "Documents are under review by a DTAM reviewer",
		Owner:       RoleDTAMReviewer,
		TimeoutDays: 30,
	},
	StateRevisionRequired: {
		Description: "Reviewer requested changes, farmer must resubmit",
		Owner:       RoleFarmer,
		TimeoutDays: 30,
		CanEdit:     true,
	},
	StatePaymentPending: {
		Description:     "Waiting for the document review fee",
		Owner:           RoleFarmer,
		TimeoutDays:     15,
		PaymentRequired: true,
		PaymentAmount:   DocumentReviewFee,
		PaymentPhase:    1,
	},
	StatePaymentVerified: {
		Description: "Review fee received, waiting for inspection scheduling",
		Owner:       RoleDTAMInspector,
		TimeoutDays: 14,
	},
	StateInspectionScheduled: {
		Description: "Farm inspection has been scheduled",
		Owner:       RoleDTAMInspector,
		TimeoutDays: 60,
	},
	StateInspectionCompleted: {
		Description: "Inspection finished, waiting for the inspection fee to be issued",
		Owner:       RoleSystem,
		TimeoutDays: 7,
	},
	StatePhase2PaymentPending: {
		Description:     "Waiting for the field inspection fee",
		Owner:           RoleFarmer,
		TimeoutDays:     15,
		PaymentRequired: true,
		PaymentAmount:   FieldInspectionFee,
		PaymentPhase:    2,
	},
	StatePhase2PaymentVerified: {
		Description: "Inspection fee received, waiting for final approval",
		Owner:       RoleDTAMAdmin,
		TimeoutDays: 7,
	},
	StateApproved: {
		Description: "Application approved, certificate issuance pending",
		Owner:       RoleSystem,
	},
	StateCertificateIssued: {
		Description: "Certificate has been issued",
		Owner:       RoleSystem,
	},
	StateRejected: {
		Description: "Application was rejected",
		Owner:       RoleSystem,
	},
	StateExpired: {
		Description: "Application timed out and expired",
		Owner:       RoleSystem,
	},
}

var terminalStates = map[State]bool{
	StateCertificateIssued: true,
	StateRejected:          true,
	StateExpired:           true,
}

var paymentStates = map[State]bool{
	StatePaymentPending:       true,
	StatePhase2PaymentPending: true,
}

// allStateNames maps stable symbolic names to wire values. Handlers use it
// to expose the catalog; tests use it to verify closure of the state set.
var allStateNames = map[string]State{
	"DRAFT":                   StateDraft,
	"SUBMITTED":               StateSubmitted,
	"UNDER_REVIEW":            StateUnderReview,
	"REVISION_REQUIRED":       StateRevisionRequired,
	"PAYMENT_PENDING":         StatePaymentPending,
	"PAYMENT_VERIFIED":        StatePaymentVerified,
	"INSPECTION_SCHEDULED":    StateInspectionScheduled,
	"INSPECTION_COMPLETED":    StateInspectionCompleted,
	"PHASE2_PAYMENT_PENDING":  StatePhase2PaymentPending,
	"PHASE2_PAYMENT_VERIFIED": StatePhase2PaymentVerified,
	"APPROVED":                StateApproved,
	"CERTIFICATE_ISSUED":      StateCertificateIssued,
	"REJECTED":                StateRejected,
	"EXPIRED":                 StateExpired,
}

// AllStates returns the full catalog of symbolic name to wire value.
// The returned map is a copy and may be modified by the caller.
func AllStates() map[string]State {
	out := make(map[string]State, len(allStateNames))
	for name, s := range allStateNames {
		out[name] = s
	}
	return out
}

// ParseState converts a raw string into a State. It is the fallible
// conversion used at serialization boundaries (HTTP, DB).
func ParseState(s string) (State, bool) {
	state := State(s)
	_, ok := stateMetadata[state]
	return state, ok
}

// Metadata returns the metadata record for a state, or nil when the state
// is unknown. Lookups are case-sensitive.
func (s State) Metadata() *StateMetadata {
	meta, ok := stateMetadata[s]
	if !ok {
		return nil
	}
	return &meta
}

// IsValid returns true if the state is one of the 14 lifecycle states.
func (s State) IsValid() bool {
	_, ok := stateMetadata[s]
	return ok
}

// IsTerminal returns true for states with no outgoing transitions.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsPayment returns true for states that gate progress on a fee payment.
func (s State) IsPayment() bool {
	return paymentStates[s]
}

// String returns the wire representation of the state.
func (s State) String() string {
	return string(s)
}
