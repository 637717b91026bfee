package codes

import "strconv"

// DocumentTypeCode is a document type from UNTDID 1001.
type DocumentTypeCode int

const (
	DocTypeValidatedPricedTender DocumentTypeCode = 50
	DocTypeInvoicingDataSheet    DocumentTypeCode = 130
	DocTypeProFormaInvoice       DocumentTypeCode = 325
	DocTypePartialInvoice        DocumentTypeCode = 326
	DocTypeInvoice               DocumentTypeCode = 380
	DocTypeCreditNote            DocumentTypeCode = 381
	DocTypeCorrection            DocumentTypeCode = 384
	DocTypePrepayment            DocumentTypeCode = 386
	DocTypeRelatedDocument       DocumentTypeCode = 916
)

// IsInvoiceType reports whether the code denotes an invoice-class document.
func (c DocumentTypeCode) IsInvoiceType() bool {
	switch c {
	case DocTypeProFormaInvoice, DocTypePartialInvoice, DocTypeInvoice,
		DocTypeCreditNote, DocTypeCorrection, DocTypePrepayment:
		return true
	}
	return false
}

// IsCreditType reports whether the code denotes a credit or correction
// document, which may carry negative quantities.
func (c DocumentTypeCode) IsCreditType() bool {
	return c == DocTypeCreditNote || c == DocTypeCorrection
}

func (c DocumentTypeCode) String() string {
	return strconv.Itoa(int(c))
}

// ParseDocumentTypeCode converts the wire representation of a UNTDID 1001
// code back into a DocumentTypeCode.
func ParseDocumentTypeCode(s string) (DocumentTypeCode, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return DocumentTypeCode(n), true
}

// PaymentMeansCode is a payment means from UNTDID 4461.
type PaymentMeansCode string

const (
	PaymentMeansCash              PaymentMeansCode = "10"
	PaymentMeansCheck             PaymentMeansCode = "20"
	PaymentMeansTransfer          PaymentMeansCode = "30"
	PaymentMeansBankPayment       PaymentMeansCode = "42"
	PaymentMeansCreditCard        PaymentMeansCode = "48"
	PaymentMeansDirectDebit       PaymentMeansCode = "49"
	PaymentMeansStandingAgreement PaymentMeansCode = "57"
	PaymentMeansSEPACreditXfer    PaymentMeansCode = "58"
	PaymentMeansSEPADirectDebit   PaymentMeansCode = "59"
	PaymentMeansReport            PaymentMeansCode = "97"
	PaymentMeansMutuallyDefined   PaymentMeansCode = "ZZZ"
)

var paymentMeans = map[PaymentMeansCode]struct{}{
	PaymentMeansCash: {}, PaymentMeansCheck: {}, PaymentMeansTransfer: {},
	PaymentMeansBankPayment: {}, PaymentMeansCreditCard: {},
	PaymentMeansDirectDebit: {}, PaymentMeansStandingAgreement: {},
	PaymentMeansSEPACreditXfer: {}, PaymentMeansSEPADirectDebit: {},
	PaymentMeansReport: {}, PaymentMeansMutuallyDefined: {},
}

// ValidPaymentMeans reports whether code is a recognized UNTDID 4461 code.
func ValidPaymentMeans(code PaymentMeansCode) bool {
	_, ok := paymentMeans[code]
	return ok
}

// TaxCategoryCode is a duty/tax/fee category from UNTDID 5305, extended by
// the EN 16931 categories that are not part of UNTDID.
type TaxCategoryCode string

const (
	TaxCategoryReverseCharge         TaxCategoryCode = "AE"
	TaxCategoryExempt                TaxCategoryCode = "E"
	TaxCategoryFreeExport            TaxCategoryCode = "G"
	TaxCategoryIntraCommunityExempt  TaxCategoryCode = "K"
	TaxCategoryCanaryIslandsTax      TaxCategoryCode = "L"
	TaxCategoryCeutaMelillaTax       TaxCategoryCode = "M"
	TaxCategoryOutOfScope            TaxCategoryCode = "O"
	TaxCategoryStandardRate          TaxCategoryCode = "S"
	TaxCategoryZeroRate              TaxCategoryCode = "Z"
)

var taxCategories = map[TaxCategoryCode]struct{}{
	TaxCategoryReverseCharge: {}, TaxCategoryExempt: {},
	TaxCategoryFreeExport: {}, TaxCategoryIntraCommunityExempt: {},
	TaxCategoryCanaryIslandsTax: {}, TaxCategoryCeutaMelillaTax: {},
	TaxCategoryOutOfScope: {}, TaxCategoryStandardRate: {},
	TaxCategoryZeroRate: {},
}

// ValidTaxCategory reports whether code is a recognized tax category.
func ValidTaxCategory(code TaxCategoryCode) bool {
	_, ok := taxCategories[code]
	return ok
}

// RequiresExemptionReason reports whether the category needs a VAT
// exemption reason on its tax breakdown entry (BT-120/BT-121).
func (c TaxCategoryCode) RequiresExemptionReason() bool {
	switch c {
	case TaxCategoryExempt, TaxCategoryFreeExport,
		TaxCategoryIntraCommunityExempt, TaxCategoryOutOfScope,
		TaxCategoryReverseCharge:
		return true
	}
	return false
}

// TextSubjectCode is a text subject qualifier from UNTDID 4451.
type TextSubjectCode string

const (
	TextSubjectGeneralInformation    TextSubjectCode = "AAI"
	TextSubjectCommentsBySeller      TextSubjectCode = "SUR"
	TextSubjectRegulatoryInformation TextSubjectCode = "REG"
	TextSubjectLegalInformation      TextSubjectCode = "ABL"
	TextSubjectTaxInformation        TextSubjectCode = "TXD"
	TextSubjectCustomsInformation    TextSubjectCode = "CUS"
)

var textSubjects = map[TextSubjectCode]struct{}{
	TextSubjectGeneralInformation: {}, TextSubjectCommentsBySeller: {},
	TextSubjectRegulatoryInformation: {}, TextSubjectLegalInformation: {},
	TextSubjectTaxInformation: {}, TextSubjectCustomsInformation: {},
}

// ValidTextSubject reports whether code is a recognized UNTDID 4451 code.
func ValidTextSubject(code TextSubjectCode) bool {
	_, ok := textSubjects[code]
	return ok
}
