package status

import "fmt"

// StudentStatus is the canonical representation of a student's position in
// the scholarship lifecycle. Stored as varchar, never as a bare int, so rows
// stay readable in the database and in Kafka payloads.
type StudentStatus string

const (
	NewUser                    StudentStatus = "NEW_USER"
	MobileVerified             StudentStatus = "MOBILE_VERIFIED"
	ProfileUpdated             StudentStatus = "PROFILE_UPDATED"
	PersonalDocumentsPending   StudentStatus = "PERSONAL_DOCUMENTS_PENDING"
	PersonalDocumentsSubmitted StudentStatus = "PERSONAL_DOCUMENTS_SUBMITTED"
	InterviewScheduled         StudentStatus = "INTERVIEW_SCHEDULED"
	AcademicDocumentsPending   StudentStatus = "ACADEMIC_DOCUMENTS_PENDING"
	AcademicDocumentsSubmitted StudentStatus = "ACADEMIC_DOCUMENTS_SUBMITTED"
	EligibleForScholarship     StudentStatus = "ELIGIBLE_FOR_SCHOLARSHIP"
	PaymentPending             StudentStatus = "PAYMENT_PENDING"
	Paid                       StudentStatus = "PAID"
	ReceiptDocumentsSubmitted  StudentStatus = "RECEIPT_DOCUMENTS_SUBMITTED"
	Alumni                     StudentStatus = "ALUMNI"

	// Blocked sits outside the lifecycle order. Any status can be blocked;
	// unblocking restores the status held immediately before the block.
	Blocked StudentStatus = "BLOCKED"
)

// lifecycle is the total order used for successor/predecessor lookups.
// Blocked is intentionally absent.
var lifecycle = []StudentStatus{
	NewUser,
	MobileVerified,
	ProfileUpdated,
	PersonalDocumentsPending,
	PersonalDocumentsSubmitted,
	InterviewScheduled,
	AcademicDocumentsPending,
	AcademicDocumentsSubmitted,
	EligibleForScholarship,
	PaymentPending,
	Paid,
	ReceiptDocumentsSubmitted,
	Alumni,
}

var orderIndex = func() map[StudentStatus]int {
	m := make(map[StudentStatus]int, len(lifecycle))
	for i, s := range lifecycle {
		m[s] = i
	}
	return m
}()

var labels = map[StudentStatus]string{
	NewUser:                    "New User",
	MobileVerified:             "Mobile Verified",
	ProfileUpdated:             "Profile Under Verification",
	PersonalDocumentsPending:   "Personal Documents Pending",
	PersonalDocumentsSubmitted: "Personal Documents Submitted",
	InterviewScheduled:         "Interview Scheduled",
	AcademicDocumentsPending:   "Academic Results Pending",
	AcademicDocumentsSubmitted: "Academic Results Submitted",
	EligibleForScholarship:     "Eligible for Scholarship",
	PaymentPending:             "Payment Pending",
	Paid:                       "Paid",
	ReceiptDocumentsSubmitted:  "Receipt Documents Submitted",
	Alumni:                     "Alumni",
	Blocked:                    "Blocked",
}

// colorClasses are the badge tokens the dashboards render statuses with.
var colorClasses = map[StudentStatus]string{
	NewUser:                    "badge-gray",
	MobileVerified:             "badge-gray",
	ProfileUpdated:             "badge-amber",
	PersonalDocumentsPending:   "badge-amber",
	PersonalDocumentsSubmitted: "badge-blue",
	InterviewScheduled:         "badge-blue",
	AcademicDocumentsPending:   "badge-amber",
	AcademicDocumentsSubmitted: "badge-blue",
	EligibleForScholarship:     "badge-green",
	PaymentPending:             "badge-amber",
	Paid:                       "badge-green",
	ReceiptDocumentsSubmitted:  "badge-green",
	Alumni:                     "badge-purple",
	Blocked:                    "badge-red",
}

// All returns the lifecycle statuses in order. Blocked is not part of the
// order and is not included.
func All() []StudentStatus {
	out := make([]StudentStatus, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// IsValid reports whether s is a known status, including Blocked.
func IsValid(s StudentStatus) bool {
	_, ok := labels[s]
	return ok
}

// Parse converts a raw string into a StudentStatus or fails with
// ErrUnknownStatus. There is no fallback label.
func Parse(raw string) (StudentStatus, error) {
	s := StudentStatus(raw)
	if !IsValid(s) {
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownStatus)
	}
	return s, nil
}

// Text returns the display label for s.
func Text(s StudentStatus) (string, error) {
	l, ok := labels[s]
	if !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
	return l, nil
}

// ColorClass returns the badge token for s.
func ColorClass(s StudentStatus) (string, error) {
	c, ok := colorClasses[s]
	if !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
	return c, nil
}

// OrderIndex returns the position of s in the lifecycle order. ok is false
// for Blocked and for unknown values.
func OrderIndex(s StudentStatus) (int, bool) {
	i, ok := orderIndex[s]
	return i, ok
}

// Successor returns the next status in the lifecycle order.
func Successor(s StudentStatus) (StudentStatus, error) {
	i, ok := orderIndex[s]
	if !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
	if i == len(lifecycle)-1 {
		return "", &IllegalTransitionError{From: s, To: "", Reason: "no status after " + string(s)}
	}
	return lifecycle[i+1], nil
}

// Predecessor returns the previous status in the lifecycle order. Blocked
// and NewUser have none.
func Predecessor(s StudentStatus) (StudentStatus, error) {
	if s == Blocked {
		return "", ErrNoPreviousStatus
	}
	i, ok := orderIndex[s]
	if !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
	if i == 0 {
		return "", ErrNoPreviousStatus
	}
	return lifecycle[i-1], nil
}
