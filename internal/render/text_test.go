package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/render"
)

func summaryInvoice() *model.Invoice {
	lineTotal := money.MustNew("100.00", "EUR")
	return &model.Invoice{
		Profile:   model.ProfileEN16931,
		Number:    "2021-123",
		TypeCode:  codes.DocTypeInvoice,
		IssueDate: model.MustDate(2021, time.April, 13),
		Seller: model.Party{
			Name:                "Lieferant GmbH",
			TradingBusinessName: "Lieferant",
			Address: &model.PostalAddress{
				CountryCode: "DE",
				PostCode:    "80331",
				City:        "München",
				LineOne:     "Lieferantenstraße 20",
			},
			Email: "info@lieferant.example",
			VATID: "DE123456789",
			IDs:   []string{"S-1"},
		},
		Buyer: model.Party{
			Name:    "Kunde AG",
			Address: &model.PostalAddress{CountryCode: "FR", City: "Paris"},
		},
		CurrencyCode:      "EUR",
		BusinessProcessID: "A1",
		BuyerReference:    "K-2021",
		BuyerOrderID:      "PO-1",
		LineTotal:         &lineTotal,
		TaxBasisTotal:     money.MustNew("100.00", "EUR"),
		TaxTotal:          money.MustNew("19.00", "EUR"),
		GrandTotal:        money.MustNew("119.00", "EUR"),
		DuePayable:        money.MustNew("119.00", "EUR"),
	}
}

func TestText(t *testing.T) {
	out := render.Text(summaryInvoice())

	assert.True(t, strings.HasPrefix(out, "Invoice 2021-123\n"))
	assert.Contains(t, out, "Date: 2021-04-13")
	assert.Contains(t, out, "Sender\n------\n")
	assert.Contains(t, out, "Recipient\n---------\n")
	assert.Contains(t, out, "Lieferant GmbH (Lieferant)")
	assert.Contains(t, out, "VAT ID: DE123456789")
	assert.Contains(t, out, "Business Process ID: A1")
	assert.Contains(t, out, "Buyer Reference: K-2021")
	assert.Contains(t, out, "Buyer Order ID: PO-1")
	assert.Contains(t, out, "Line Total (net): 100.00 EUR")
	assert.Contains(t, out, "Gross: 119.00 EUR")
	assert.Contains(t, out, "Due amount: 119.00 EUR")
}

func TestText_CreditNoteHeading(t *testing.T) {
	inv := summaryInvoice()
	inv.TypeCode = codes.DocTypeCreditNote
	assert.True(t, strings.HasPrefix(render.Text(inv), "Credit Note 2021-123\n"))
}

func TestText_OmitsAbsentReferences(t *testing.T) {
	inv := summaryInvoice()
	inv.BusinessProcessID = ""
	inv.BuyerReference = ""
	inv.BuyerOrderID = ""
	inv.LineTotal = nil

	out := render.Text(inv)
	assert.NotContains(t, out, "Business Process ID")
	assert.NotContains(t, out, "Buyer Reference")
	assert.NotContains(t, out, "Buyer Order ID")
	assert.NotContains(t, out, "Line Total")
}

func TestAddress_CountryCodeLeadsCityLine(t *testing.T) {
	out := render.Address(&model.PostalAddress{
		CountryCode: "DE",
		PostCode:    "80331",
		City:        "München",
		LineOne:     "Lieferantenstraße 20",
	})
	assert.Equal(t, "Lieferantenstraße 20\nDE 80331 München", out)
}

func TestTradeParty_IdentifierLines(t *testing.T) {
	legal := model.SchemeID{Value: "HRB 12345", Scheme: "0002"}
	out := render.TradeParty(&model.Party{
		Name:      "Lieferant GmbH",
		IDs:       []string{"S-1", "S-2"},
		GlobalIDs: []model.SchemeID{{Value: "4000001123452", Scheme: "0088"}},
		LegalID:   &legal,
	})
	assert.Contains(t, out, "IDs: S-1, S-2")
	assert.Contains(t, out, "0088: 4000001123452")
	assert.Contains(t, out, "0002: HRB 12345")
}
