package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeSnapshot() Snapshot {
	return Snapshot{
		ProfileComplete: true,
		Documents: map[DocumentKey]bool{
			DocRequestLetter:     true,
			DocResidentialProof:  true,
			DocIncomeCertificate: true,
			DocMarksheet:         true,
			DocFeeReceipt:        true,
			DocPaymentReceipt:    true,
		},
	}
}

func TestFullForwardProgression(t *testing.T) {
	st := &State{Current: NewUser}
	snap := completeSnapshot()

	order := All()
	for i, expected := range order {
		require.Equal(t, expected, st.Current, "step %d", i)
		if expected == Alumni {
			break
		}
		ev, ok := ForwardEventFor(st.Current)
		require.True(t, ok, st.Current)
		require.NoError(t, st.Apply(ev, snap))
	}
	assert.Equal(t, Alumni, st.Current)
}

func TestSkippingAStepIsRejected(t *testing.T) {
	st := &State{Current: NewUser}

	// Firing the profile event from NEW_USER would skip MOBILE_VERIFIED.
	err := st.Apply(EventProfileSubmitted, completeSnapshot())
	var ite *IllegalTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, NewUser, st.Current, "status must be unchanged after a rejected event")
}

func TestProfilePreconditionEnforced(t *testing.T) {
	st := &State{Current: MobileVerified}

	err := st.Apply(EventProfileSubmitted, Snapshot{ProfileComplete: false})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.Equal(t, MobileVerified, st.Current)
}

func TestMissingRequiredDocumentRejectsSubmission(t *testing.T) {
	st := &State{Current: PersonalDocumentsPending}
	snap := Snapshot{
		ProfileComplete: true,
		Documents: map[DocumentKey]bool{
			DocRequestLetter:     true,
			DocIncomeCertificate: true,
			// residential proof absent
		},
	}

	err := st.Apply(EventPersonalDocsSubmitted, snap)
	var ite *IllegalTransitionError
	require.True(t, errors.As(err, &ite))
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.Equal(t, PersonalDocumentsPending, st.Current)

	snap.Documents[DocResidentialProof] = true
	require.NoError(t, st.Apply(EventPersonalDocsSubmitted, snap))
	assert.Equal(t, PersonalDocumentsSubmitted, st.Current)
}

func TestBlockUnblockIsInvolution(t *testing.T) {
	for _, s := range All() {
		st := &State{Current: s}

		require.NoError(t, st.Apply(EventAdminBlock, Snapshot{}))
		assert.Equal(t, Blocked, st.Current)
		require.NotNil(t, st.BeforeBlock)

		require.NoError(t, st.Apply(EventAdminUnblock, Snapshot{}))
		assert.Equal(t, s, st.Current, "unblock must restore the pre-block status")
		assert.Nil(t, st.BeforeBlock)
	}
}

func TestDoubleBlockRejected(t *testing.T) {
	st := &State{Current: Paid}
	require.NoError(t, st.Apply(EventAdminBlock, Snapshot{}))

	err := st.Apply(EventAdminBlock, Snapshot{})
	var ite *IllegalTransitionError
	assert.True(t, errors.As(err, &ite))

	// The original pre-block status must survive the rejected second block.
	require.NoError(t, st.Apply(EventAdminUnblock, Snapshot{}))
	assert.Equal(t, Paid, st.Current)
}

func TestUnblockWithoutBlockRejected(t *testing.T) {
	st := &State{Current: Paid}
	err := st.Apply(EventAdminUnblock, Snapshot{})
	var ite *IllegalTransitionError
	assert.True(t, errors.As(err, &ite))
	assert.Equal(t, Paid, st.Current)
}

func TestForwardEventsRejectedWhileBlocked(t *testing.T) {
	st := &State{Current: PersonalDocumentsPending}
	require.NoError(t, st.Apply(EventAdminBlock, Snapshot{}))

	err := st.Apply(EventPersonalDocsSubmitted, completeSnapshot())
	var ite *IllegalTransitionError
	assert.True(t, errors.As(err, &ite))
	assert.Equal(t, Blocked, st.Current)
}

func TestAdminRevert(t *testing.T) {
	st := &State{Current: PaymentPending}
	require.NoError(t, st.Apply(EventAdminRevert, Snapshot{}))
	assert.Equal(t, EligibleForScholarship, st.Current)
}

func TestRevertFromNewUserFails(t *testing.T) {
	st := &State{Current: NewUser}
	err := st.Apply(EventAdminRevert, Snapshot{})
	assert.ErrorIs(t, err, ErrNoPreviousStatus)
	assert.Equal(t, NewUser, st.Current)
}

func TestRevertFromBlockedFails(t *testing.T) {
	st := &State{Current: Blocked}
	err := st.Apply(EventAdminRevert, Snapshot{})
	assert.ErrorIs(t, err, ErrNoPreviousStatus)
}

func TestForceToJumps(t *testing.T) {
	st := &State{Current: PersonalDocumentsSubmitted}
	require.NoError(t, st.ForceTo(PaymentPending))
	assert.Equal(t, PaymentPending, st.Current)
}

func TestForceToBlockedRejected(t *testing.T) {
	st := &State{Current: Paid}
	err := st.ForceTo(Blocked)
	var ite *IllegalTransitionError
	assert.True(t, errors.As(err, &ite))

	st = &State{Current: Blocked}
	err = st.ForceTo(Paid)
	assert.True(t, errors.As(err, &ite))
}

func TestForceToUnknownStatusRejected(t *testing.T) {
	st := &State{Current: Paid}
	err := st.ForceTo("SETTLED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Equal(t, Paid, st.Current)
}

func TestNextWithUnknownEvent(t *testing.T) {
	_, err := Next(NewUser, "graduated")
	assert.Error(t, err)
}

func TestRequiredDocumentVocabulary(t *testing.T) {
	for _, ev := range []Event{EventPersonalDocsSubmitted, EventAcademicDocsSubmitted, EventReceiptSubmitted} {
		keys := RequiredDocuments(ev)
		require.NotEmpty(t, keys, ev)
		for _, k := range keys {
			assert.True(t, IsDocumentKey(k), k)
		}
	}
	assert.Empty(t, RequiredDocuments(EventInterviewScheduled))
}
