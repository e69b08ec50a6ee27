package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenTableIsTotal(t *testing.T) {
	allPages := []Page{PageProfile, PagePersonalDocuments, PageAcademicDocuments, PagePayments}
	for _, s := range append(All(), Blocked) {
		for _, p := range allPages {
			v, err := ScreenFor(s, p)
			require.NoError(t, err, "%s/%s", s, p)
			assert.NotEmpty(t, v, "%s/%s", s, p)
		}
	}
}

func TestPreProfileBucket(t *testing.T) {
	for _, s := range []StudentStatus{NewUser, MobileVerified} {
		v, err := ScreenFor(s, PageProfile)
		require.NoError(t, err)
		assert.Equal(t, ViewEditableForm, v)

		for _, p := range []Page{PagePersonalDocuments, PageAcademicDocuments, PagePayments} {
			v, err := ScreenFor(s, p)
			require.NoError(t, err)
			assert.Equal(t, ViewNotAvailable, v, "%s/%s", s, p)
		}
	}
}

func TestProfileSubmittedBucket(t *testing.T) {
	for _, s := range []StudentStatus{ProfileUpdated, PersonalDocumentsPending} {
		v, _ := ScreenFor(s, PageProfile)
		assert.Equal(t, ViewReadOnlySummary, v)

		v, _ = ScreenFor(s, PagePersonalDocuments)
		assert.Equal(t, ViewEditableForm, v)

		v, _ = ScreenFor(s, PagePayments)
		assert.Equal(t, ViewNotAvailable, v)
	}
}

func TestAcademicDocsEditableOnlyWhilePending(t *testing.T) {
	v, _ := ScreenFor(AcademicDocumentsPending, PageAcademicDocuments)
	assert.Equal(t, ViewEditableForm, v)

	for _, s := range []StudentStatus{PersonalDocumentsSubmitted, InterviewScheduled, AcademicDocumentsSubmitted} {
		v, _ := ScreenFor(s, PageAcademicDocuments)
		assert.Equal(t, ViewReadOnlySummary, v, s)
	}
}

func TestPaymentsPagePerStage(t *testing.T) {
	v, _ := ScreenFor(EligibleForScholarship, PagePayments)
	assert.Equal(t, ViewLedgerReadOnly, v)

	v, _ = ScreenFor(PaymentPending, PagePayments)
	assert.Equal(t, ViewLedgerReadOnly, v)

	v, _ = ScreenFor(Paid, PagePayments)
	assert.Equal(t, ViewReceiptUpload, v)

	v, _ = ScreenFor(Alumni, PagePayments)
	assert.Equal(t, ViewLedgerReapply, v)
}

func TestBlockedShowsNoticeEverywhere(t *testing.T) {
	for _, p := range []Page{PageProfile, PagePersonalDocuments, PageAcademicDocuments, PagePayments} {
		v, err := ScreenFor(Blocked, p)
		require.NoError(t, err)
		assert.Equal(t, ViewBlockedNotice, v)
	}
}

func TestScreensResolvesAllPages(t *testing.T) {
	m, err := Screens(Paid)
	require.NoError(t, err)
	assert.Len(t, m, 4)
	assert.Equal(t, ViewReceiptUpload, m[PagePayments])
}

func TestUnknownPageAndStatus(t *testing.T) {
	_, err := ScreenFor(Paid, "settings")
	assert.Error(t, err)

	_, err = ScreenFor("PAID_TWICE", PageProfile)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
