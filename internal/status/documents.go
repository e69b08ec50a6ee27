package status

// DocumentKey identifies one slot in a student's document set. The
// vocabulary is fixed; uploads against any other key are rejected.
type DocumentKey string

const (
	DocRequestLetter     DocumentKey = "request_letter"
	DocResidentialProof  DocumentKey = "residential_proof"
	DocIncomeCertificate DocumentKey = "income_certificate"
	DocAadhaarCard       DocumentKey = "aadhaar_card"
	DocMarksheet         DocumentKey = "marksheet"
	DocBonafide          DocumentKey = "bonafide_certificate"
	DocFeeReceipt        DocumentKey = "fee_receipt"
	DocPaymentReceipt    DocumentKey = "payment_receipt"
	DocOther             DocumentKey = "other"
)

var documentKeys = map[DocumentKey]struct{}{
	DocRequestLetter:     {},
	DocResidentialProof:  {},
	DocIncomeCertificate: {},
	DocAadhaarCard:       {},
	DocMarksheet:         {},
	DocBonafide:          {},
	DocFeeReceipt:        {},
	DocPaymentReceipt:    {},
	DocOther:             {},
}

// IsDocumentKey reports whether k belongs to the fixed vocabulary.
func IsDocumentKey(k DocumentKey) bool {
	_, ok := documentKeys[k]
	return ok
}

// Required document sets per submission step. Optional keys (aadhaar,
// bonafide, other) may stay absent indefinitely.
var (
	requiredPersonalDocs = []DocumentKey{
		DocRequestLetter,
		DocResidentialProof,
		DocIncomeCertificate,
	}
	requiredAcademicDocs = []DocumentKey{
		DocMarksheet,
		DocFeeReceipt,
	}
	requiredReceiptDocs = []DocumentKey{
		DocPaymentReceipt,
	}
)

// PageForDocument returns the page a document key is edited on, so upload
// handlers can ask the resolver whether that page is currently editable.
func PageForDocument(k DocumentKey) Page {
	switch k {
	case DocMarksheet, DocBonafide, DocFeeReceipt:
		return PageAcademicDocuments
	case DocPaymentReceipt:
		return PagePayments
	default:
		return PagePersonalDocuments
	}
}

// RequiredDocuments returns the keys that must be present before ev is
// accepted. Empty for events without a document precondition.
func RequiredDocuments(ev Event) []DocumentKey {
	switch ev {
	case EventPersonalDocsSubmitted:
		return requiredPersonalDocs
	case EventAcademicDocsSubmitted:
		return requiredAcademicDocs
	case EventReceiptSubmitted:
		return requiredReceiptDocs
	default:
		return nil
	}
}
