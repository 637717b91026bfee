package facturx_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/pkg/facturx"
)

func exampleInvoice() *facturx.Invoice {
	lineTotal := money.MustNew("100.00", "EUR")
	dueDate := facturx.Date{Year: 2021, Month: time.May, Day: 13}
	return &facturx.Invoice{
		Profile:   facturx.ProfileEN16931,
		Number:    "2021-123",
		TypeCode:  codes.DocTypeInvoice,
		IssueDate: facturx.Date{Year: 2021, Month: time.April, Day: 13},
		Seller: facturx.Party{
			Name:    "Lieferant GmbH",
			Address: &facturx.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer: facturx.Party{
			Name:    "Kunde AG",
			Address: &facturx.PostalAddress{CountryCode: "DE"},
		},
		CurrencyCode:   "EUR",
		BuyerReference: "K-2021",
		LineTotal:      &lineTotal,
		TaxBasisTotal:  money.MustNew("100.00", "EUR"),
		TaxTotal:       money.MustNew("19.00", "EUR"),
		GrandTotal:     money.MustNew("119.00", "EUR"),
		DuePayable:     money.MustNew("119.00", "EUR"),
		Tax: []facturx.Tax{{
			CalculatedAmount: money.MustNew("19.00", "EUR"),
			BasisAmount:      money.MustNew("100.00", "EUR"),
			RatePercent:      decimal.NewFromInt(19),
			CategoryCode:     codes.TaxCategoryStandardRate,
		}},
		PaymentTerms: &facturx.PaymentTerms{DueDate: &dueDate},
		Lines: []facturx.LineItem{{
			ID:             "1",
			Name:           "Trennblätter A4",
			NetPrice:       money.MustNew("50.00", "EUR"),
			BilledQuantity: facturx.Quantity{Value: decimal.NewFromInt(2), Unit: codes.UnitPiece},
			LineTotal:      money.MustNew("100.00", "EUR"),
			TaxRate:        decimal.NewFromInt(19),
			TaxCategory:    codes.TaxCategoryStandardRate,
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	inv := exampleInvoice()

	xml, err := facturx.Generate(inv)
	require.NoError(t, err)

	parsed, err := facturx.Parse(xml)
	require.NoError(t, err)
	assert.Equal(t, inv, parsed)
}

func TestValidate(t *testing.T) {
	inv := exampleInvoice()
	inv.Number = ""

	var found bool
	for _, v := range facturx.Validate(inv) {
		if v.Code == "BT-1" && v.Severity == facturx.SeverityError {
			found = true
		}
	}
	assert.True(t, found)
}

func TestInferProfile(t *testing.T) {
	p, ok := facturx.InferProfile(exampleInvoice())
	require.True(t, ok)
	assert.Equal(t, facturx.ProfileBasic, p)
}

func TestFormatText(t *testing.T) {
	out := facturx.FormatText(exampleInvoice())
	assert.Contains(t, out, "Invoice 2021-123")
	assert.Contains(t, out, "Gross: 119.00 EUR")
}

func TestParse_ErrorTypes(t *testing.T) {
	_, err := facturx.Parse([]byte("not xml"))
	var parseErr *facturx.ParseError
	require.ErrorAs(t, err, &parseErr)
}
