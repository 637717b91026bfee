package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

func TestNewDate(t *testing.T) {
	d, err := model.NewDate(2021, time.April, 13)
	require.NoError(t, err)
	assert.Equal(t, "20210413", d.Format102())
	assert.Equal(t, "2021-04-13", d.ISO())
}

func TestNewDate_RejectsImpossibleDay(t *testing.T) {
	_, err := model.NewDate(2021, time.February, 30)
	require.Error(t, err)

	_, err = model.NewDate(2021, time.Month(13), 1)
	require.Error(t, err)
}

func TestParseDate102(t *testing.T) {
	d, err := model.ParseDate102("20240229")
	require.NoError(t, err)
	assert.Equal(t, model.MustDate(2024, time.February, 29), d)

	_, err = model.ParseDate102("20230229")
	require.Error(t, err)
	_, err = model.ParseDate102("2021-04-13")
	require.Error(t, err)
}

func TestDate_Before(t *testing.T) {
	a := model.MustDate(2021, time.April, 13)
	b := model.MustDate(2021, time.May, 13)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestNewPeriod_RejectsReversedRange(t *testing.T) {
	start := model.MustDate(2021, time.May, 1)
	end := model.MustDate(2021, time.April, 1)
	_, err := model.NewPeriod(start, end)
	require.Error(t, err)
}

func TestNewQuantity(t *testing.T) {
	q, err := model.NewQuantity("2.5", codes.UnitHour)
	require.NoError(t, err)
	assert.Equal(t, "2.5 HUR", q.String())
}

func TestNewQuantity_RejectsUnknownUnit(t *testing.T) {
	_, err := model.NewQuantity("1", codes.UnitCode("XXX"))
	require.Error(t, err)
}

func TestNewQuantity_RejectsFiveFractionDigits(t *testing.T) {
	_, err := model.NewQuantity("1.00001", codes.UnitPiece)
	require.Error(t, err)
}

func TestNewQuantity_AllowsNegative(t *testing.T) {
	// Negativity is a document-level rule, not a shape rule.
	_, err := model.NewQuantity("-3", codes.UnitPiece)
	require.NoError(t, err)
}

func TestProfile_URNRoundTrip(t *testing.T) {
	for _, p := range model.Profiles {
		got, ok := model.ProfileFromURN(p.URN())
		require.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}

	_, ok := model.ProfileFromURN("urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended")
	assert.False(t, ok)
}

func TestProfile_AtLeast(t *testing.T) {
	assert.True(t, model.ProfileEN16931.AtLeast(model.ProfileMinimum))
	assert.True(t, model.ProfileBasic.AtLeast(model.ProfileBasic))
	assert.False(t, model.ProfileMinimum.AtLeast(model.ProfileBasicWL))
}

func TestNewPostalAddress_RejectsUnknownCountry(t *testing.T) {
	_, err := model.NewPostalAddress("ZZ")
	require.Error(t, err)

	addr, err := model.NewPostalAddress("DE")
	require.NoError(t, err)
	assert.Equal(t, "DE", addr.CountryCode)
}

func TestNewNote(t *testing.T) {
	_, err := model.NewNote("  ", "")
	require.Error(t, err)

	_, err = model.NewNote("text", codes.TextSubjectCode("???"))
	require.Error(t, err)

	note, err := model.NewNote("text", codes.TextSubjectCommentsBySeller)
	require.NoError(t, err)
	assert.Equal(t, codes.TextSubjectCommentsBySeller, note.SubjectCode)
}

func checkableInvoice() *model.Invoice {
	return &model.Invoice{
		Profile:       model.ProfileMinimum,
		Number:        "INV-1",
		TypeCode:      codes.DocTypeInvoice,
		IssueDate:     model.MustDate(2021, time.April, 13),
		Seller:        model.Party{Name: "Lieferant GmbH"},
		Buyer:         model.Party{Name: "Kunde AG"},
		CurrencyCode:  "EUR",
		TaxBasisTotal: money.MustNew("100.00", "EUR"),
		TaxTotal:      money.MustNew("19.00", "EUR"),
		GrandTotal:    money.MustNew("119.00", "EUR"),
		DuePayable:    money.MustNew("119.00", "EUR"),
	}
}

func TestInvoice_Check(t *testing.T) {
	require.NoError(t, checkableInvoice().Check())
}

func TestInvoice_Check_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Invoice)
		field  string
	}{
		{"empty number", func(inv *model.Invoice) { inv.Number = " " }, "Number"},
		{"non-invoice type", func(inv *model.Invoice) { inv.TypeCode = codes.DocTypeRelatedDocument }, "TypeCode"},
		{"missing issue date", func(inv *model.Invoice) { inv.IssueDate = model.Date{} }, "IssueDate"},
		{"empty seller name", func(inv *model.Invoice) { inv.Seller.Name = "" }, "Seller.Name"},
		{"bad currency", func(inv *model.Invoice) { inv.CurrencyCode = "EURO" }, "CurrencyCode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := checkableInvoice()
			tt.mutate(inv)
			err := inv.Check()
			require.Error(t, err)

			var constructionErr *model.ConstructionError
			require.ErrorAs(t, err, &constructionErr)
			assert.Equal(t, tt.field, constructionErr.Field)
		})
	}
}

func TestInvoice_Check_NegativeQuantityOnInvoice(t *testing.T) {
	inv := checkableInvoice()
	inv.Lines = []model.LineItem{{
		ID:             "1",
		Name:           "Item",
		TaxCategory:    codes.TaxCategoryStandardRate,
		BilledQuantity: model.MustQuantity("-1", codes.UnitPiece),
	}}
	require.Error(t, inv.Check())

	// Credit notes may carry negative quantities.
	inv.TypeCode = codes.DocTypeCreditNote
	require.NoError(t, inv.Check())
}

func TestErrors_And_Warnings_Filters(t *testing.T) {
	violations := []model.Violation{
		{Code: "BT-1", Severity: model.SeverityError},
		{Code: "BT-10", Severity: model.SeverityWarning},
		{Code: "BT-5", Severity: model.SeverityError},
	}
	assert.Len(t, model.Errors(violations), 2)
	assert.Len(t, model.Warnings(violations), 1)
}

func TestValidationError_ListsAllCodes(t *testing.T) {
	err := model.NewValidationError([]model.Violation{
		{Code: "BT-1", Message: "invoice number is missing", Severity: model.SeverityError},
		{Code: "BT-5", Message: "currency is missing", Severity: model.SeverityError},
	})
	assert.Contains(t, err.Error(), "BT-1")
	assert.Contains(t, err.Error(), "BT-5")
	assert.Contains(t, err.Error(), "2 violation(s)")
}
