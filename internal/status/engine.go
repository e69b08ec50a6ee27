package status

import "fmt"

// Event is something that happened to a student and may move their status.
type Event string

const (
	// Forward steps, one per lifecycle stage.
	EventMobileVerified        Event = "mobile_verified"
	EventProfileSubmitted      Event = "profile_submitted"
	EventProfileVerified       Event = "profile_verified"
	EventPersonalDocsSubmitted Event = "personal_documents_submitted"
	EventInterviewScheduled    Event = "interview_scheduled"
	EventInterviewCleared      Event = "interview_cleared"
	EventAcademicDocsSubmitted Event = "academic_documents_submitted"
	EventEligibilityApproved   Event = "eligibility_approved"
	EventPaymentAllotted       Event = "payment_allotted"
	EventPaymentCredited       Event = "payment_credited"
	EventReceiptSubmitted      Event = "receipt_documents_submitted"
	EventProgramCompleted      Event = "program_completed"

	// Administrative side channel.
	EventAdminBlock   Event = "admin_block"
	EventAdminUnblock Event = "admin_unblock"
	EventAdminRevert  Event = "admin_revert"
)

// forward maps each forward event to the single status it may fire from.
// The target is always the successor in the lifecycle order, so skipping a
// step is impossible without the force path.
var forward = map[Event]StudentStatus{
	EventMobileVerified:        NewUser,
	EventProfileSubmitted:      MobileVerified,
	EventProfileVerified:       ProfileUpdated,
	EventPersonalDocsSubmitted: PersonalDocumentsPending,
	EventInterviewScheduled:    PersonalDocumentsSubmitted,
	EventInterviewCleared:      InterviewScheduled,
	EventAcademicDocsSubmitted: AcademicDocumentsPending,
	EventEligibilityApproved:   AcademicDocumentsSubmitted,
	EventPaymentAllotted:       EligibleForScholarship,
	EventPaymentCredited:       PaymentPending,
	EventReceiptSubmitted:      Paid,
	EventProgramCompleted:      ReceiptDocumentsSubmitted,
}

// ForwardEventFor returns the event that advances a student out of s, so
// admin tooling can offer "advance one step" without hardcoding events.
func ForwardEventFor(s StudentStatus) (Event, bool) {
	for ev, from := range forward {
		if from == s {
			return ev, true
		}
	}
	return "", false
}

// Snapshot is the data the engine checks preconditions against. The caller
// assembles it from the persisted state; the engine never touches storage.
type Snapshot struct {
	ProfileComplete bool
	// Documents holds the keys currently present in the student's set.
	Documents map[DocumentKey]bool
}

// State is the workflow position the engine operates on. BeforeBlock is
// retained so that unblock restores exactly the pre-block status.
type State struct {
	Current     StudentStatus
	BeforeBlock *StudentStatus
}

// Next computes the status that applying ev to current would produce,
// without precondition checks. Pure lookup; Apply is the real entry point.
func Next(current StudentStatus, ev Event) (StudentStatus, error) {
	if !IsValid(current) {
		return "", fmt.Errorf("%q: %w", current, ErrUnknownStatus)
	}
	switch ev {
	case EventAdminBlock:
		return Blocked, nil
	case EventAdminUnblock:
		if current != Blocked {
			return "", &IllegalTransitionError{From: current, To: "", Reason: "not blocked"}
		}
		// The restored status lives in State; Next alone cannot know it.
		return "", &IllegalTransitionError{From: current, To: "", Reason: "unblock requires the recorded pre-block status"}
	case EventAdminRevert:
		return Predecessor(current)
	}

	from, ok := forward[ev]
	if !ok {
		return "", fmt.Errorf("unknown event %q", ev)
	}
	if current == Blocked {
		return "", &IllegalTransitionError{From: current, To: "", Reason: "student is blocked"}
	}
	if current != from {
		to, _ := Successor(from)
		return "", &IllegalTransitionError{From: current, To: to, Reason: fmt.Sprintf("event %s requires status %s", ev, from)}
	}
	return Successor(current)
}

// Apply validates ev against s and snap and mutates s on success. On any
// error s is left untouched.
func (s *State) Apply(ev Event, snap Snapshot) error {
	if !IsValid(s.Current) {
		return fmt.Errorf("%q: %w", s.Current, ErrUnknownStatus)
	}

	switch ev {
	case EventAdminBlock:
		if s.Current == Blocked {
			return &IllegalTransitionError{From: Blocked, To: Blocked, Reason: "already blocked"}
		}
		prev := s.Current
		s.BeforeBlock = &prev
		s.Current = Blocked
		return nil

	case EventAdminUnblock:
		if s.Current != Blocked {
			return &IllegalTransitionError{From: s.Current, To: s.Current, Reason: "not blocked"}
		}
		if s.BeforeBlock == nil || !IsValid(*s.BeforeBlock) {
			return ErrNoPreviousStatus
		}
		s.Current = *s.BeforeBlock
		s.BeforeBlock = nil
		return nil

	case EventAdminRevert:
		prev, err := Predecessor(s.Current)
		if err != nil {
			return err
		}
		s.Current = prev
		return nil
	}

	next, err := Next(s.Current, ev)
	if err != nil {
		return err
	}
	if err := checkPreconditions(s.Current, ev, snap); err != nil {
		return err
	}
	s.Current = next
	return nil
}

// ForceTo sets the status directly, bypassing the single-step rule. It is
// the only legal way to jump, reserved for the audited admin force path.
// Forcing into or out of Blocked still has to go through block/unblock so
// the pre-block status is kept coherent.
func (s *State) ForceTo(target StudentStatus) error {
	if !IsValid(target) {
		return fmt.Errorf("%q: %w", target, ErrUnknownStatus)
	}
	if target == Blocked || s.Current == Blocked {
		return &IllegalTransitionError{From: s.Current, To: target, Reason: "use block/unblock for the blocked state"}
	}
	s.Current = target
	return nil
}

func checkPreconditions(current StudentStatus, ev Event, snap Snapshot) error {
	if ev == EventProfileSubmitted && !snap.ProfileComplete {
		next, _ := Successor(current)
		return &IllegalTransitionError{
			From: current, To: next,
			Reason: "profile is incomplete",
			cause:  ErrPreconditionNotMet,
		}
	}
	for _, key := range RequiredDocuments(ev) {
		if !snap.Documents[key] {
			next, _ := Successor(current)
			return &IllegalTransitionError{
				From: current, To: next,
				Reason: fmt.Sprintf("required document %s is missing", key),
				cause:  ErrPreconditionNotMet,
			}
		}
	}
	return nil
}
