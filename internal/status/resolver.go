package status

import "fmt"

// Page is a student-facing page whose rendering depends on status.
type Page string

const (
	PageProfile           Page = "profile"
	PagePersonalDocuments Page = "personal_documents"
	PageAcademicDocuments Page = "academic_documents"
	PagePayments          Page = "payments"
)

// ViewDescriptor names the screen a page should render. Handlers return the
// descriptor; they never re-derive it from the status themselves.
type ViewDescriptor string

const (
	ViewEditableForm    ViewDescriptor = "editable_form"
	ViewReadOnlySummary ViewDescriptor = "read_only_summary"
	ViewNotAvailable    ViewDescriptor = "not_available"
	ViewBlockedNotice   ViewDescriptor = "blocked_notice"
	ViewLedgerReadOnly  ViewDescriptor = "ledger_read_only"
	ViewReceiptUpload   ViewDescriptor = "receipt_upload"
	ViewLedgerReapply   ViewDescriptor = "ledger_reapply"
)

var pages = map[Page]struct{}{
	PageProfile:           {},
	PagePersonalDocuments: {},
	PageAcademicDocuments: {},
	PagePayments:          {},
}

// screens is the single authoritative table mapping (status, page) to a
// view. Every page handler consults it through ScreenFor.
var screens = map[StudentStatus]map[Page]ViewDescriptor{
	NewUser: {
		PageProfile:           ViewEditableForm,
		PagePersonalDocuments: ViewNotAvailable,
		PageAcademicDocuments: ViewNotAvailable,
		PagePayments:          ViewNotAvailable,
	},
	MobileVerified: {
		PageProfile:           ViewEditableForm,
		PagePersonalDocuments: ViewNotAvailable,
		PageAcademicDocuments: ViewNotAvailable,
		PagePayments:          ViewNotAvailable,
	},
	ProfileUpdated: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewEditableForm,
		PageAcademicDocuments: ViewNotAvailable,
		PagePayments:          ViewNotAvailable,
	},
	PersonalDocumentsPending: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewEditableForm,
		PageAcademicDocuments: ViewNotAvailable,
		PagePayments:          ViewNotAvailable,
	},
	PersonalDocumentsSubmitted: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewNotAvailable,
	},
	InterviewScheduled: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewNotAvailable,
	},
	AcademicDocumentsPending: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewEditableForm,
		PagePayments:          ViewNotAvailable,
	},
	AcademicDocumentsSubmitted: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewNotAvailable,
	},
	EligibleForScholarship: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewLedgerReadOnly,
	},
	PaymentPending: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewLedgerReadOnly,
	},
	Paid: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewReceiptUpload,
	},
	ReceiptDocumentsSubmitted: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewLedgerReadOnly,
	},
	Alumni: {
		PageProfile:           ViewReadOnlySummary,
		PagePersonalDocuments: ViewReadOnlySummary,
		PageAcademicDocuments: ViewReadOnlySummary,
		PagePayments:          ViewLedgerReapply,
	},
}

// ScreenFor resolves the view for one page at the given status.
func ScreenFor(s StudentStatus, p Page) (ViewDescriptor, error) {
	if _, ok := pages[p]; !ok {
		return "", fmt.Errorf("unknown page %q", p)
	}
	if s == Blocked {
		return ViewBlockedNotice, nil
	}
	row, ok := screens[s]
	if !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
	}
	return row[p], nil
}

// Screens resolves every page at once, for the dashboard shell.
func Screens(s StudentStatus) (map[Page]ViewDescriptor, error) {
	out := make(map[Page]ViewDescriptor, len(pages))
	for p := range pages {
		v, err := ScreenFor(s, p)
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}
