package status

import "fmt"

// Policy restricts which targets an admin calling context may force. The
// restriction lives here, engine-side, instead of as a client-side guard.
type Policy struct {
	Context string
	// Allowed is the set of permitted force targets. Nil means any
	// lifecycle status (Blocked is always excluded; use block/unblock).
	Allowed []StudentStatus
}

// Well-known admin calling contexts.
var (
	// PolicyStudentList is the general student-management screen; any
	// lifecycle target is allowed as long as force is explicit.
	PolicyStudentList = Policy{Context: "student_list"}

	// PolicyPaymentAllotment is the payment-allotment screen, which may
	// only move students between the two payment-adjacent stages.
	PolicyPaymentAllotment = Policy{
		Context: "payment_allotment",
		Allowed: []StudentStatus{EligibleForScholarship, PaymentPending},
	}
)

var policiesByContext = map[string]Policy{
	PolicyStudentList.Context:      PolicyStudentList,
	PolicyPaymentAllotment.Context: PolicyPaymentAllotment,
}

// PolicyFor looks up a declared calling context.
func PolicyFor(contextName string) (Policy, error) {
	p, ok := policiesByContext[contextName]
	if !ok {
		return Policy{}, fmt.Errorf("unknown admin context %q", contextName)
	}
	return p, nil
}

// Permits reports whether target is a legal force target under p.
func (p Policy) Permits(target StudentStatus) bool {
	if !IsValid(target) || target == Blocked {
		return false
	}
	if p.Allowed == nil {
		return true
	}
	for _, s := range p.Allowed {
		if s == target {
			return true
		}
	}
	return false
}
