package workflow

type edge struct {
	from State
	to   State
}

// permissionTable gates each lifecycle edge by actor role. Deny by default:
// an edge absent from this table, or a role absent from its entry, is not
// permitted. Expiry edges belong to SYSTEM alone; humans never drive an
// application into expired.
var permissionTable = map[edge][]Role{
	{StateDraft, StateSubmitted}:            {RoleFarmer},
	{StateRevisionRequired, StateSubmitted}: {RoleFarmer},

	{StateSubmitted, StateUnderReview}: {RoleSystem},

	{StateUnderReview, StatePaymentPending}:   {RoleDTAMReviewer},
	{StateUnderReview, StateRevisionRequired}: {RoleDTAMReviewer},
	{StateUnderReview, StateRejected}:         {RoleDTAMReviewer},

	// Payment confirmations arrive from the payment gateway callback.
	{StatePaymentPending, StatePaymentVerified}:             {RoleSystem},
	{StatePhase2PaymentPending, StatePhase2PaymentVerified}: {RoleSystem},

	{StatePaymentVerified, StateInspectionScheduled}:      {RoleDTAMInspector},
	{StateInspectionScheduled, StateInspectionCompleted}:  {RoleDTAMInspector},
	{StateInspectionScheduled, StateRejected}:             {RoleDTAMInspector},
	{StateInspectionCompleted, StatePhase2PaymentPending}: {RoleSystem},

	{StatePhase2PaymentVerified, StateApproved}: {RoleDTAMAdmin},
	{StatePhase2PaymentVerified, StateRejected}: {RoleDTAMAdmin},

	{StateApproved, StateCertificateIssued}: {RoleSystem},

	{StateDraft, StateExpired}:                 {RoleSystem},
	{StateSubmitted, StateExpired}:             {RoleSystem},
	{StateUnderReview, StateExpired}:           {RoleSystem},
	{StateRevisionRequired, StateExpired}:      {RoleSystem},
	{StatePaymentPending, StateExpired}:        {RoleSystem},
	{StatePaymentVerified, StateExpired}:       {RoleSystem},
	{StateInspectionScheduled, StateExpired}:   {RoleSystem},
	{StateInspectionCompleted, StateExpired}:   {RoleSystem},
	{StatePhase2PaymentPending, StateExpired}:  {RoleSystem},
	{StatePhase2PaymentVerified, StateExpired}: {RoleSystem},
}

// CanUserTransition reports whether the role may execute from -> to. A
// structurally invalid transition is denied regardless of role, and an
// unrecognized role always fails closed.
func CanUserTransition(role Role, from, to State) bool {
	if !IsValidTransition(from, to) {
		return false
	}
	if !role.IsValid() {
		return false
	}
	for _, allowed := range permissionTable[edge{from, to}] {
		if allowed == role {
			return true
		}
	}
	return false
}
