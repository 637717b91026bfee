package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/codes"
)

func TestValidCurrency(t *testing.T) {
	assert.True(t, codes.ValidCurrency("EUR"))
	assert.True(t, codes.ValidCurrency("JPY"))
	assert.False(t, codes.ValidCurrency("eur"))
	assert.False(t, codes.ValidCurrency("XYZ"))
	assert.False(t, codes.ValidCurrency(""))
}

func TestValidCountry(t *testing.T) {
	assert.True(t, codes.ValidCountry("DE"))
	assert.True(t, codes.ValidCountry("FR"))
	// Exceptionally reserved codes used on real documents.
	assert.True(t, codes.ValidCountry("EL"))
	assert.True(t, codes.ValidCountry("XI"))
	assert.False(t, codes.ValidCountry("ZZ"))
	assert.False(t, codes.ValidCountry("de"))
}

func TestValidUnit(t *testing.T) {
	assert.True(t, codes.ValidUnit(codes.UnitPiece))
	assert.True(t, codes.ValidUnit(codes.UnitHour))
	assert.False(t, codes.ValidUnit(codes.UnitCode("XXX")))
}

func TestDocumentTypeCode_IsInvoiceType(t *testing.T) {
	assert.True(t, codes.DocTypeInvoice.IsInvoiceType())
	assert.True(t, codes.DocTypeCreditNote.IsInvoiceType())
	assert.True(t, codes.DocTypePartialInvoice.IsInvoiceType())
	assert.False(t, codes.DocTypeRelatedDocument.IsInvoiceType())
	assert.False(t, codes.DocTypeValidatedPricedTender.IsInvoiceType())
}

func TestDocumentTypeCode_IsCreditType(t *testing.T) {
	assert.True(t, codes.DocTypeCreditNote.IsCreditType())
	assert.True(t, codes.DocTypeCorrection.IsCreditType())
	assert.False(t, codes.DocTypeInvoice.IsCreditType())
}

func TestParseDocumentTypeCode(t *testing.T) {
	code, ok := codes.ParseDocumentTypeCode("380")
	require.True(t, ok)
	assert.Equal(t, codes.DocTypeInvoice, code)
	assert.Equal(t, "380", code.String())

	_, ok = codes.ParseDocumentTypeCode("invoice")
	assert.False(t, ok)
}

func TestValidPaymentMeans(t *testing.T) {
	assert.True(t, codes.ValidPaymentMeans(codes.PaymentMeansSEPACreditXfer))
	assert.True(t, codes.ValidPaymentMeans(codes.PaymentMeansMutuallyDefined))
	assert.False(t, codes.ValidPaymentMeans(codes.PaymentMeansCode("99")))
}

func TestTaxCategoryCode_RequiresExemptionReason(t *testing.T) {
	for _, c := range []codes.TaxCategoryCode{
		codes.TaxCategoryExempt,
		codes.TaxCategoryFreeExport,
		codes.TaxCategoryIntraCommunityExempt,
		codes.TaxCategoryOutOfScope,
		codes.TaxCategoryReverseCharge,
	} {
		assert.True(t, c.RequiresExemptionReason(), string(c))
	}
	assert.False(t, codes.TaxCategoryStandardRate.RequiresExemptionReason())
	assert.False(t, codes.TaxCategoryZeroRate.RequiresExemptionReason())
}

func TestValidTextSubject(t *testing.T) {
	assert.True(t, codes.ValidTextSubject(codes.TextSubjectGeneralInformation))
	assert.False(t, codes.ValidTextSubject(codes.TextSubjectCode("???")))
}
