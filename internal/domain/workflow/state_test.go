package workflow

import "testing"

func TestAllStates_Closure(t *testing.T) {
	states := AllStates()
	if len(states) != 14 {
		t.Fatalf("AllStates() returned %d entries, want 14", len(states))
	}

	// Every reachable state must itself be part of the catalog.
	for _, s := range states {
		for _, next := range NextStates(s) {
			if !next.IsValid() {
				t.Errorf("NextStates(%s) contains unknown state %s", s, next)
			}
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	terminal := map[State]bool{
		StateCertificateIssued: true,
		StateRejected:          true,
		StateExpired:           true,
	}

	for _, s := range AllStates() {
		if got := s.IsTerminal(); got != terminal[s] {
			t.Errorf("State(%s).IsTerminal() = %v, want %v", s, got, terminal[s])
		}
	}
}

func TestState_IsPayment(t *testing.T) {
	payment := map[State]bool{
		StatePaymentPending:       true,
		StatePhase2PaymentPending: true,
	}

	for _, s := range AllStates() {
		if got := s.IsPayment(); got != payment[s] {
			t.Errorf("State(%s).IsPayment() = %v, want %v", s, got, payment[s])
		}
	}
}

func TestState_Metadata(t *testing.T) {
	meta := StateDraft.Metadata()
	if meta == nil {
		t.Fatal("Metadata() for draft returned nil")
	}
	if meta.Owner != RoleFarmer {
		t.Errorf("draft owner = %s, want %s", meta.Owner, RoleFarmer)
	}
	if meta.TimeoutDays != 30 {
		t.Errorf("draft timeout = %d days, want 30", meta.TimeoutDays)
	}
	if !meta.CanEdit {
		t.Error("draft should be editable")
	}
	if meta.PaymentRequired {
		t.Error("draft should not require payment")
	}
}

func TestState_Metadata_CaseSensitive(t *testing.T) {
	if State("DRAFT").Metadata() != nil {
		t.Error("Metadata() for DRAFT should be nil, lookups are case-sensitive")
	}
	if State("draft").Metadata() == nil {
		t.Error("Metadata() for draft should not be nil")
	}
	if State("").Metadata() != nil {
		t.Error("Metadata() for empty string should be nil")
	}
}

func TestState_Metadata_PaymentStates(t *testing.T) {
	tests := []struct {
		state  State
		amount int
		phase  int
	}{
		{StatePaymentPending, 5000, 1},
		{StatePhase2PaymentPending, 25000, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			meta := tt.state.Metadata()
			if meta == nil {
				t.Fatal("Metadata() returned nil")
			}
			if !meta.PaymentRequired {
				t.Error("PaymentRequired should be true")
			}
			if meta.PaymentAmount != tt.amount {
				t.Errorf("PaymentAmount = %d, want %d", meta.PaymentAmount, tt.amount)
			}
			if meta.PaymentPhase != tt.phase {
				t.Errorf("PaymentPhase = %d, want %d", meta.PaymentPhase, tt.phase)
			}
		})
	}
}

func TestState_Metadata_NoTimeout(t *testing.T) {
	for _, s := range []State{StateApproved, StateCertificateIssued, StateRejected, StateExpired} {
		meta := s.Metadata()
		if meta == nil {
			t.Fatalf("Metadata() for %s returned nil", s)
		}
		if meta.TimeoutDays != 0 {
			t.Errorf("%s should have no timeout window, got %d days", s, meta.TimeoutDays)
		}
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid state", "draft", true},
		{"valid terminal state", "certificate_issued", true},
		{"uppercase rejected", "DRAFT", false},
		{"unknown state", "archived", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseState(tt.input); ok != tt.ok {
				t.Errorf("ParseState(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"FARMER", "DTAM_REVIEWER", "DTAM_INSPECTOR", "DTAM_ADMIN", "SYSTEM"} {
		if _, ok := ParseRole(r); !ok {
			t.Errorf("ParseRole(%q) should succeed", r)
		}
	}
	for _, r := range []string{"farmer", "ADMIN", ""} {
		if _, ok := ParseRole(r); ok {
			t.Errorf("ParseRole(%q) should fail", r)
		}
	}
}
