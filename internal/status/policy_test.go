package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentAllotmentPolicyRestrictsTargets(t *testing.T) {
	p, err := PolicyFor("payment_allotment")
	require.NoError(t, err)

	assert.True(t, p.Permits(EligibleForScholarship))
	assert.True(t, p.Permits(PaymentPending))

	for _, s := range All() {
		if s == EligibleForScholarship || s == PaymentPending {
			continue
		}
		assert.False(t, p.Permits(s), s)
	}
}

func TestStudentListPolicyAllowsAnyLifecycleTarget(t *testing.T) {
	p, err := PolicyFor("student_list")
	require.NoError(t, err)

	for _, s := range All() {
		assert.True(t, p.Permits(s), s)
	}
}

func TestNoPolicyPermitsBlockedOrUnknown(t *testing.T) {
	for _, name := range []string{"student_list", "payment_allotment"} {
		p, err := PolicyFor(name)
		require.NoError(t, err)
		assert.False(t, p.Permits(Blocked), name)
		assert.False(t, p.Permits("REJECTED_FOREVER"), name)
	}
}

func TestUnknownContextFails(t *testing.T) {
	_, err := PolicyFor("donor_portal")
	assert.Error(t, err)
}
