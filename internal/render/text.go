// Package render produces human-readable projections of an invoice.
package render

import (
	"fmt"
	"strings"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
)

var documentTypeNames = map[codes.DocumentTypeCode]string{
	codes.DocTypeValidatedPricedTender: "Validated Priced Tender",
	codes.DocTypeInvoicingDataSheet:    "Invoicing Data Sheet",
	codes.DocTypeProFormaInvoice:       "Pro Forma Invoice",
	codes.DocTypePartialInvoice:        "Partial Invoice",
	codes.DocTypeInvoice:               "Invoice",
	codes.DocTypeCreditNote:            "Credit Note",
	codes.DocTypeCorrection:            "Correction",
	codes.DocTypePrepayment:            "Prepayment",
	codes.DocTypeRelatedDocument:       "Related Document",
}

// Text renders a plain-text summary of the invoice. It covers the shared
// core of every profile: document identity, parties, references and totals.
// Line detail is intentionally not rendered.
func Text(inv *model.Invoice) string {
	var lines []string

	typeName, ok := documentTypeNames[inv.TypeCode]
	if !ok {
		typeName = "Document " + inv.TypeCode.String()
	}
	lines = append(lines,
		fmt.Sprintf("%s %s", typeName, inv.Number),
		"Date: "+inv.IssueDate.ISO(),
		"",
		header("Sender"),
		TradeParty(&inv.Seller),
		"",
		header("Recipient"),
		TradeParty(&inv.Buyer),
		"",
	)

	if inv.BusinessProcessID != "" {
		lines = append(lines, "Business Process ID: "+inv.BusinessProcessID)
	}
	if inv.BuyerReference != "" {
		lines = append(lines, "Buyer Reference: "+inv.BuyerReference)
	}
	if inv.BuyerOrderID != "" {
		lines = append(lines, "Buyer Order ID: "+inv.BuyerOrderID)
	}
	lines = append(lines, header("Totals"), totals(inv))

	return strings.Join(lines, "\n")
}

func totals(inv *model.Invoice) string {
	var lines []string
	if inv.LineTotal != nil {
		lines = append(lines, "Line Total (net): "+inv.LineTotal.String())
	}
	lines = append(lines, "Net: "+inv.TaxBasisTotal.String())
	lines = append(lines, "Tax: "+inv.TaxTotal.String())
	lines = append(lines, "Gross: "+inv.GrandTotal.String())
	lines = append(lines, "Due amount: "+inv.DuePayable.String())
	return strings.Join(lines, "\n")
}

// TradeParty renders a party block: name, address, contact details and
// identifiers, one per line.
func TradeParty(party *model.Party) string {
	var lines []string

	if party.Name != "" {
		if party.TradingBusinessName != "" {
			lines = append(lines,
				fmt.Sprintf("%s (%s)", party.Name, party.TradingBusinessName))
		} else {
			lines = append(lines, party.Name)
		}
	}
	if party.Address != nil {
		lines = append(lines, Address(party.Address))
	}
	if party.Email != "" {
		lines = append(lines, party.Email)
	}
	if party.VATID != "" {
		lines = append(lines, "VAT ID: "+party.VATID)
	}
	if party.TaxNumber != "" {
		lines = append(lines, "Tax Number: "+party.TaxNumber)
	}
	switch len(party.IDs) {
	case 0:
	case 1:
		lines = append(lines, "ID: "+party.IDs[0])
	default:
		lines = append(lines, "IDs: "+strings.Join(party.IDs, ", "))
	}
	for _, gid := range party.GlobalIDs {
		lines = append(lines, globalID(gid))
	}
	if party.LegalID != nil {
		lines = append(lines, globalID(*party.LegalID))
	}

	return strings.Join(lines, "\n")
}

// Address renders a postal address. The country code leads the city line,
// as is conventional for cross-border invoices.
func Address(addr *model.PostalAddress) string {
	var lines []string
	if addr.LineOne != "" {
		lines = append(lines, addr.LineOne)
	}
	if addr.LineTwo != "" {
		lines = append(lines, addr.LineTwo)
	}
	if addr.LineThree != "" {
		lines = append(lines, addr.LineThree)
	}
	cityLine := addr.CountryCode
	if addr.PostCode != "" {
		cityLine += " " + addr.PostCode
	}
	if addr.City != "" {
		cityLine += " " + addr.City
	}
	lines = append(lines, cityLine)
	if addr.CountrySubdivision != "" {
		lines = append(lines, addr.CountrySubdivision)
	}
	return strings.Join(lines, "\n")
}

func globalID(id model.SchemeID) string {
	if id.Scheme == "" {
		return "Global ID: " + id.Value
	}
	return fmt.Sprintf("%s: %s", id.Scheme, id.Value)
}

func header(text string) string {
	return text + "\n" + strings.Repeat("-", len(text)) + "\n"
}
