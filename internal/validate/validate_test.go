package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/validate"
)

// en16931Invoice builds a consistent EN 16931 invoice: one line of
// 2 x 50.00 EUR at 19% VAT.
func en16931Invoice() *model.Invoice {
	lineTotal := money.MustNew("100.00", "EUR")
	return &model.Invoice{
		Profile:   model.ProfileEN16931,
		Number:    "2021-123",
		TypeCode:  codes.DocTypeInvoice,
		IssueDate: model.MustDate(2021, time.April, 13),
		Seller: model.Party{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer: model.Party{
			Name:    "Kunde AG",
			Address: &model.PostalAddress{CountryCode: "DE"},
		},
		CurrencyCode:   "EUR",
		BuyerReference: "K-2021",
		LineTotal:      &lineTotal,
		TaxBasisTotal:  money.MustNew("100.00", "EUR"),
		TaxTotal:       money.MustNew("19.00", "EUR"),
		GrandTotal:     money.MustNew("119.00", "EUR"),
		DuePayable:     money.MustNew("119.00", "EUR"),
		Tax: []model.Tax{{
			CalculatedAmount: money.MustNew("19.00", "EUR"),
			BasisAmount:      money.MustNew("100.00", "EUR"),
			RatePercent:      decimal.NewFromInt(19),
			CategoryCode:     codes.TaxCategoryStandardRate,
		}},
		PaymentTerms: &model.PaymentTerms{
			DueDate: dateRef(2021, time.May, 13),
		},
		Lines: []model.LineItem{{
			ID:             "1",
			Name:           "Trennblätter A4",
			NetPrice:       money.MustNew("50.00", "EUR"),
			BilledQuantity: model.MustQuantity("2", codes.UnitPiece),
			LineTotal:      money.MustNew("100.00", "EUR"),
			TaxRate:        decimal.NewFromInt(19),
			TaxCategory:    codes.TaxCategoryStandardRate,
		}},
	}
}

func dateRef(year int, month time.Month, day int) *model.Date {
	d := model.MustDate(year, month, day)
	return &d
}

// minimumInvoice builds a consistent MINIMUM invoice.
func minimumInvoice() *model.Invoice {
	return &model.Invoice{
		Profile:   model.ProfileMinimum,
		Number:    "2021-123",
		TypeCode:  codes.DocTypeInvoice,
		IssueDate: model.MustDate(2021, time.April, 13),
		Seller: model.Party{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:         model.Party{Name: "Kunde AG"},
		CurrencyCode:  "EUR",
		TaxBasisTotal: money.MustNew("100.00", "EUR"),
		TaxTotal:      money.MustNew("19.00", "EUR"),
		GrandTotal:    money.MustNew("119.00", "EUR"),
		DuePayable:    money.MustNew("119.00", "EUR"),
	}
}

func errorCodes(violations []model.Violation) []string {
	var out []string
	for _, v := range model.Errors(violations) {
		out = append(out, v.Code)
	}
	return out
}

func TestValidate_ConsistentEN16931Invoice(t *testing.T) {
	violations := validate.Validate(en16931Invoice())
	assert.Empty(t, model.Errors(violations))
}

func TestValidate_ConsistentMinimumInvoice(t *testing.T) {
	violations := validate.Validate(minimumInvoice())
	assert.Empty(t, model.Errors(violations))
}

func TestValidate_MissingMandatoryFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Invoice)
		code   string
	}{
		{"number", func(inv *model.Invoice) { inv.Number = "" }, "BT-1"},
		{"issue date", func(inv *model.Invoice) { inv.IssueDate = model.Date{} }, "BT-2"},
		{"currency", func(inv *model.Invoice) { inv.CurrencyCode = "" }, "BT-5"},
		{"seller name", func(inv *model.Invoice) { inv.Seller.Name = "" }, "BT-27"},
		{"seller country", func(inv *model.Invoice) { inv.Seller.Address = nil }, "BT-40"},
		{"seller tax registration", func(inv *model.Invoice) { inv.Seller.VATID = "" }, "BT-31"},
		{"buyer name", func(inv *model.Invoice) { inv.Buyer.Name = "" }, "BT-44"},
		{"grand total", func(inv *model.Invoice) { inv.GrandTotal = money.Money{} }, "BT-112"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := minimumInvoice()
			tt.mutate(inv)
			assert.Contains(t, errorCodes(validate.Validate(inv)), tt.code)
		})
	}
}

func TestValidate_BasicWLMandatory(t *testing.T) {
	inv := minimumInvoice()
	inv.Profile = model.ProfileBasicWL

	got := errorCodes(validate.Validate(inv))
	assert.Contains(t, got, "BT-106") // line total sum
	assert.Contains(t, got, "BG-23")  // VAT breakdown
	assert.Contains(t, got, "BT-55")  // buyer country
}

func TestValidate_BasicRequiresLines(t *testing.T) {
	inv := en16931Invoice()
	inv.Profile = model.ProfileBasic
	inv.Lines = nil

	assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-25")
}

func TestValidate_EN16931RequiresDueDateForOpenAmount(t *testing.T) {
	inv := en16931Invoice()
	inv.PaymentTerms = nil

	assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-9")
}

func TestValidate_EN16931WarnsOnMissingBuyerReference(t *testing.T) {
	inv := en16931Invoice()
	inv.BuyerReference = ""

	violations := validate.Validate(inv)
	assert.Empty(t, model.Errors(violations))

	var warned bool
	for _, v := range model.Warnings(violations) {
		if v.Code == "BT-10" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestValidate_FieldsNotAdmittedBelowProfile(t *testing.T) {
	t.Run("lines below BASIC", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasicWL
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-25")
	})

	t.Run("tax breakdown in MINIMUM", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Tax = []model.Tax{{
			CalculatedAmount: money.MustNew("19.00", "EUR"),
			BasisAmount:      money.MustNew("100.00", "EUR"),
			RatePercent:      decimal.NewFromInt(19),
			CategoryCode:     codes.TaxCategoryStandardRate,
		}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-23")
	})

	t.Run("rounding amount below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasic
		rounding := money.MustNew("0.00", "EUR")
		inv.RoundingAmount = &rounding
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-114")
	})

	t.Run("line description below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasic
		inv.Lines[0].Description = "ruled, 40 sheets"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-154")
	})
}

func TestValidate_SEPARules(t *testing.T) {
	t.Run("credit transfer requires payee IBAN", func(t *testing.T) {
		inv := en16931Invoice()
		inv.PaymentMeans = []model.PaymentMeans{{TypeCode: codes.PaymentMeansSEPACreditXfer}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-84")
	})

	t.Run("direct debit requires payer IBAN and mandate", func(t *testing.T) {
		inv := en16931Invoice()
		inv.PaymentMeans = []model.PaymentMeans{{TypeCode: codes.PaymentMeansSEPADirectDebit}}
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BT-91")
		assert.Contains(t, got, "BT-89")
	})

	t.Run("satisfied credit transfer", func(t *testing.T) {
		inv := en16931Invoice()
		inv.PaymentMeans = []model.PaymentMeans{{
			TypeCode:     codes.PaymentMeansSEPACreditXfer,
			PayeeAccount: &model.BankAccount{IBAN: "DE02120300000000202051"},
		}}
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("unknown payment means code", func(t *testing.T) {
		inv := en16931Invoice()
		inv.PaymentMeans = []model.PaymentMeans{{TypeCode: "99"}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-81")
	})
}

func TestValidate_ExemptionReasonRules(t *testing.T) {
	t.Run("exempt category requires reason", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax[0].CategoryCode = codes.TaxCategoryExempt
		inv.Tax[0].RatePercent = decimal.Zero
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BT-120")
	})

	t.Run("standard rate must be positive", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax[0].RatePercent = decimal.Zero
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-119")
	})

	t.Run("standard rate rejects exemption reason", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax[0].ExemptionReason = "intra-community supply"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-120")
	})
}

func TestValidate_Arithmetic(t *testing.T) {
	t.Run("line sum mismatch", func(t *testing.T) {
		inv := en16931Invoice()
		lt := money.MustNew("150.00", "EUR")
		inv.LineTotal = &lt
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BT-106")
	})

	t.Run("line quantity times price mismatch", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].LineTotal = money.MustNew("99.00", "EUR")
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-131")
	})

	t.Run("vat amount mismatch", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax[0].CalculatedAmount = money.MustNew("20.00", "EUR")
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BT-117")
	})

	t.Run("grand total mismatch", func(t *testing.T) {
		inv := en16931Invoice()
		inv.GrandTotal = money.MustNew("120.00", "EUR")
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BT-112")
	})

	t.Run("within tolerance", func(t *testing.T) {
		inv := en16931Invoice()
		inv.GrandTotal = money.MustNew("119.01", "EUR")
		inv.DuePayable = money.MustNew("119.01", "EUR")
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("foreign currency amount", func(t *testing.T) {
		inv := en16931Invoice()
		inv.GrandTotal = money.MustNew("119.00", "USD")
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-112")
	})

	t.Run("prepaid amount", func(t *testing.T) {
		inv := en16931Invoice()
		prepaid := money.MustNew("19.00", "EUR")
		inv.PrepaidAmount = &prepaid
		inv.DuePayable = money.MustNew("100.00", "EUR")
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("basis quantity scales price", func(t *testing.T) {
		inv := en16931Invoice()
		basis := model.MustQuantity("10", codes.UnitPiece)
		inv.Lines[0].BasisQuantity = &basis
		inv.Lines[0].NetPrice = money.MustNew("500.00", "EUR")
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})
}

func TestValidate_Breakdown(t *testing.T) {
	t.Run("duplicate entry", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax = append(inv.Tax, inv.Tax[0])
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-23")
	})

	t.Run("line rate without breakdown entry", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].TaxRate = decimal.NewFromInt(7)
		got := errorCodes(validate.Validate(inv))
		assert.Contains(t, got, "BG-23")
	})
}

// withDocumentAllowance rebalances the invoice for a 10.00 document
// allowance at the standard rate.
func withDocumentAllowance(inv *model.Invoice) {
	rate := decimal.NewFromInt(19)
	allowanceTotal := money.MustNew("10.00", "EUR")
	inv.AllowanceCharges = []model.DocumentAllowanceCharge{{
		AllowanceCharge: model.AllowanceCharge{
			ActualAmount: money.MustNew("10.00", "EUR"),
			Reason:       "Rabatt",
		},
		TaxCategory: codes.TaxCategoryStandardRate,
		TaxRate:     &rate,
	}}
	inv.AllowanceTotal = &allowanceTotal
	inv.TaxBasisTotal = money.MustNew("90.00", "EUR")
	inv.TaxTotal = money.MustNew("17.10", "EUR")
	inv.GrandTotal = money.MustNew("107.10", "EUR")
	inv.DuePayable = money.MustNew("107.10", "EUR")
	inv.Tax[0].BasisAmount = money.MustNew("90.00", "EUR")
	inv.Tax[0].CalculatedAmount = money.MustNew("17.10", "EUR")
}

func TestValidate_AllowanceChargeRules(t *testing.T) {
	t.Run("consistent document allowance", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("document allowance requires a reason", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		inv.AllowanceCharges[0].Reason = ""
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-97")
	})

	t.Run("document charge requires a reason", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		inv.AllowanceCharges[0].Charge = true
		inv.AllowanceCharges[0].Reason = ""
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-104")
	})

	t.Run("allowance total must match the group sum", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		declared := money.MustNew("9.00", "EUR")
		inv.AllowanceTotal = &declared
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-107")
	})

	t.Run("charge sum without a declared charge total", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		inv.AllowanceCharges[0].Charge = true
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-108")
	})

	t.Run("groups not admitted in MINIMUM", func(t *testing.T) {
		inv := minimumInvoice()
		inv.AllowanceCharges = []model.DocumentAllowanceCharge{{
			AllowanceCharge: model.AllowanceCharge{
				ActualAmount: money.MustNew("10.00", "EUR"),
				Reason:       "Rabatt",
			},
			TaxCategory: codes.TaxCategoryStandardRate,
		}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-20")
	})

	t.Run("percentage below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		withDocumentAllowance(inv)
		inv.Profile = model.ProfileBasic
		percent := decimal.NewFromInt(10)
		inv.AllowanceCharges[0].Percent = &percent
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-20")
	})

	t.Run("line allowance requires a reason", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].AllowanceCharges = []model.AllowanceCharge{{
			ActualAmount: money.MustNew("4.00", "EUR"),
		}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-139")
	})

	t.Run("line charge requires a reason", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].AllowanceCharges = []model.AllowanceCharge{{
			Charge:       true,
			ActualAmount: money.MustNew("4.00", "EUR"),
		}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-144")
	})

	t.Run("line allowance enters the line net amount", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].AllowanceCharges = []model.AllowanceCharge{{
			ActualAmount: money.MustNew("10.00", "EUR"),
			Reason:       "Treuerabatt",
		}}
		// 2 x 50.00 less 10.00 is 90.00, not the declared 100.00.
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-131")
	})
}

func TestValidate_GrossPriceRules(t *testing.T) {
	t.Run("consistent gross price", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].GrossPrice = &model.GrossPrice{
			Price: money.MustNew("55.00", "EUR"),
			Discount: &model.AllowanceCharge{
				ActualAmount: money.MustNew("5.00", "EUR"),
			},
		}
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("discount must yield the net price", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].GrossPrice = &model.GrossPrice{
			Price: money.MustNew("60.00", "EUR"),
			Discount: &model.AllowanceCharge{
				ActualAmount: money.MustNew("5.00", "EUR"),
			},
		}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-146")
	})

	t.Run("gross price below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasic
		inv.Lines[0].GrossPrice = &model.GrossPrice{
			Price: money.MustNew("50.00", "EUR"),
		}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-148")
	})
}

func TestValidate_ContactRules(t *testing.T) {
	t.Run("contacts admitted at EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Seller.Contacts = []model.TradeContact{{PersonName: "Max Mustermann"}}
		inv.Buyer.Contacts = []model.TradeContact{{DepartmentName: "Einkauf"}}
		assert.Empty(t, model.Errors(validate.Validate(inv)))
	})

	t.Run("seller contacts below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasic
		inv.Seller.Contacts = []model.TradeContact{{PersonName: "Max Mustermann"}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-6")
	})

	t.Run("buyer contacts below EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Profile = model.ProfileBasic
		inv.Buyer.Contacts = []model.TradeContact{{DepartmentName: "Einkauf"}}
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BG-9")
	})
}

func TestValidate_UnknownCodes(t *testing.T) {
	t.Run("invoice currency", func(t *testing.T) {
		inv := minimumInvoice()
		inv.CurrencyCode = "XYZ"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-5")
	})

	t.Run("tax accounting currency", func(t *testing.T) {
		inv := en16931Invoice()
		inv.TaxCurrencyCode = "XYZ"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-6")
	})

	t.Run("breakdown category", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Tax[0].CategoryCode = "XX"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-118")
	})

	t.Run("line category", func(t *testing.T) {
		inv := en16931Invoice()
		inv.Lines[0].TaxCategory = "XX"
		assert.Contains(t, errorCodes(validate.Validate(inv)), "BT-151")
	})
}

func TestValidate_IsDeterministic(t *testing.T) {
	inv := en16931Invoice()
	inv.Number = ""
	inv.GrandTotal = money.MustNew("500.00", "EUR")

	first := validate.Validate(inv)
	second := validate.Validate(inv)
	assert.Equal(t, first, second)
}

func TestInfer(t *testing.T) {
	t.Run("minimum invoice infers MINIMUM", func(t *testing.T) {
		p, ok := validate.Infer(minimumInvoice())
		require.True(t, ok)
		assert.Equal(t, model.ProfileMinimum, p)
	})

	t.Run("invoice with lines infers BASIC", func(t *testing.T) {
		inv := en16931Invoice()
		p, ok := validate.Infer(inv)
		require.True(t, ok)
		assert.Equal(t, model.ProfileBasic, p)
	})

	t.Run("EN 16931-only field forces EN 16931", func(t *testing.T) {
		inv := en16931Invoice()
		inv.SellerOrderID = "SO-1"
		p, ok := validate.Infer(inv)
		require.True(t, ok)
		assert.Equal(t, model.ProfileEN16931, p)
	})

	t.Run("unsatisfiable invoice", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Number = ""
		_, ok := validate.Infer(inv)
		assert.False(t, ok)
	})

	t.Run("does not mutate the instance", func(t *testing.T) {
		inv := en16931Invoice()
		_, _ = validate.Infer(inv)
		assert.Equal(t, model.ProfileEN16931, inv.Profile)
	})
}
