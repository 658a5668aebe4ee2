package workflow

import "testing"

func TestIsValidTransition_HappyPath(t *testing.T) {
	// The full first-to-last traversal of a successful application.
	path := []State{
		StateDraft,
		StateSubmitted,
		StateUnderReview,
		StatePaymentPending,
		StatePaymentVerified,
		StateInspectionScheduled,
		StateInspectionCompleted,
		StatePhase2PaymentPending,
		StatePhase2PaymentVerified,
		StateApproved,
		StateCertificateIssued,
	}

	for i := 0; i < len(path)-1; i++ {
		if !IsValidTransition(path[i], path[i+1]) {
			t.Errorf("IsValidTransition(%s, %s) = false, want true", path[i], path[i+1])
		}
	}
}

func TestIsValidTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []State{StateCertificateIssued, StateRejected, StateExpired} {
		for _, target := range AllStates() {
			if IsValidTransition(terminal, target) {
				t.Errorf("terminal state %s must have no outgoing edge, found -> %s", terminal, target)
			}
		}
		if next := NextStates(terminal); len(next) != 0 {
			t.Errorf("NextStates(%s) = %v, want empty", terminal, next)
		}
	}
}

func TestIsValidTransition_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"uppercase states", State("DRAFT"), State("SUBMITTED")},
		{"empty from", State(""), StateSubmitted},
		{"empty to", StateDraft, State("")},
		{"unknown from", State("limbo"), StateSubmitted},
		{"unknown to", StateDraft, State("limbo")},
		{"skipping review", StateDraft, StateUnderReview},
		{"backwards", StateApproved, StateDraft},
		{"approved cannot expire", StateApproved, StateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsValidTransition(tt.from, tt.to) {
				t.Errorf("IsValidTransition(%q, %q) = true, want false", tt.from, tt.to)
			}
		})
	}
}

func TestNextStates_RejectionReachability(t *testing.T) {
	for _, from := range []State{StateUnderReview, StateInspectionScheduled, StatePhase2PaymentVerified} {
		if !IsValidTransition(from, StateRejected) {
			t.Errorf("IsValidTransition(%s, rejected) = false, want true", from)
		}
	}
}

func TestNextStates_Deterministic(t *testing.T) {
	first := NextStates(StateUnderReview)
	for i := 0; i < 10; i++ {
		again := NextStates(StateUnderReview)
		if len(again) != len(first) {
			t.Fatalf("NextStates length changed between calls: %v vs %v", first, again)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("NextStates order changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestNextStates_CallerCannotCorruptTable(t *testing.T) {
	next := NextStates(StateDraft)
	if len(next) == 0 {
		t.Fatal("NextStates(draft) should not be empty")
	}
	next[0] = StateRejected

	if !IsValidTransition(StateDraft, StateSubmitted) {
		t.Error("mutating the NextStates result must not affect the table")
	}
}

func TestNextStates_EveryNonTerminalCanExpire_ExceptApproved(t *testing.T) {
	for _, s := range AllStates() {
		if s.IsTerminal() {
			continue
		}
		canExpire := IsValidTransition(s, StateExpired)
		if s == StateApproved {
			if canExpire {
				t.Error("approved applications must not time out")
			}
			continue
		}
		if !canExpire {
			t.Errorf("non-terminal state %s should be able to expire", s)
		}
	}
}
