package workflow

import "strings"

// ErrorCode names the reason a transition was refused. These are stable
// machine codes; user-facing messaging is the caller's concern.
type ErrorCode string

const (
	ErrCodeInvalidTransition       ErrorCode = "INVALID_TRANSITION"
	ErrCodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrCodeMissingDocuments        ErrorCode = "MISSING_DOCUMENTS"
	ErrCodeMissingPaymentReference ErrorCode = "MISSING_PAYMENT_REFERENCE"
)

// Document types every application must carry before submission.
const (
	DocTypeFarmLicense = "farm_license"
	DocTypeLandDeed    = "land_deed"
	DocTypeFarmerID    = "farmer_id"
	DocTypeFarmPhotos  = "farm_photos"
)

// RequiredDocumentTypes lists the document types checked on submission.
var RequiredDocumentTypes = []string{
	DocTypeFarmLicense,
	DocTypeLandDeed,
	DocTypeFarmerID,
	DocTypeFarmPhotos,
}

// Document is the slice of an uploaded document the validator cares about.
type Document struct {
	Type string
}

// Snapshot is a read-only view of an application record supplied by the
// caller. The validator never mutates it.
type Snapshot struct {
	Status    State
	Documents []Document
}

// TransitionContext carries per-transition data preconditions may read.
// Fields are named and optional so new business rules can be added without
// breaking existing callers.
type TransitionContext struct {
	PaymentReference string
}

// Result is the verdict of a transition validation. Error is set only when
// Valid is false.
type Result struct {
	Valid bool
	Error ErrorCode
}

// ValidateTransition composes structural validity, role permission and
// per-transition business rules into one verdict. Checks short-circuit on
// the first failure. The function is pure: no I/O, and it never panics on
// malformed input. Malformed input is itself a validation failure.
func ValidateTransition(snap Snapshot, target State, role Role, tc *TransitionContext) Result {
	if !IsValidTransition(snap.Status, target) {
		return Result{Error: ErrCodeInvalidTransition}
	}
	if !CanUserTransition(role, snap.Status, target) {
		return Result{Error: ErrCodeInsufficientPermissions}
	}

	if target == StateSubmitted && !hasRequiredDocuments(snap.Documents) {
		return Result{Error: ErrCodeMissingDocuments}
	}

	if target == StatePaymentVerified || target == StatePhase2PaymentVerified {
		if tc == nil || strings.TrimSpace(tc.PaymentReference) == "" {
			return Result{Error: ErrCodeMissingPaymentReference}
		}
	}

	return Result{Valid: true}
}

func hasRequiredDocuments(docs []Document) bool {
	present := make(map[string]bool, len(docs))
	for _, d := range docs {
		present[d.Type] = true
	}
	for _, required := range RequiredDocumentTypes {
		if !present[required] {
			return false
		}
	}
	return true
}
