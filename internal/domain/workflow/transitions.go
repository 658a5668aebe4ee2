package workflow

// transitionTable is the directed graph of allowed status moves. Slice
// order is what NextStates returns, so it must stay stable. Terminal
// states have no entry.
var transitionTable = map[State][]State{
	StateDraft:                 {StateSubmitted, StateExpired},
	StateSubmitted:             {StateUnderReview, StateExpired},
	StateUnderReview:           {StatePaymentPending, StateRevisionRequired, StateRejected, StateExpired},
	StateRevisionRequired:      {StateSubmitted, StateExpired},
	StatePaymentPending:        {StatePaymentVerified, StateExpired},
	StatePaymentVerified:       {StateInspectionScheduled, StateExpired},
	StateInspectionScheduled:   {StateInspectionCompleted, StateRejected, StateExpired},
	StateInspectionCompleted:   {StatePhase2PaymentPending, StateExpired},
	StatePhase2PaymentPending:  {StatePhase2PaymentVerified, StateExpired},
	StatePhase2PaymentVerified: {StateApproved, StateRejected, StateExpired},
	// Approved applications do not time out; the only way forward is
	// certificate issuance.
	StateApproved: {StateCertificateIssued},
}

// IsValidTransition reports whether from -> to is an edge of the lifecycle
// graph. Unknown or case-mismatched states are a normal "no", not an error.
func IsValidTransition(from, to State) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStates returns the states reachable from the given state, in stable
// order. Terminal and unknown states yield an empty slice.
func NextStates(s State) []State {
	targets := transitionTable[s]
	out := make([]State, len(targets))
	copy(out, targets)
	return out
}
