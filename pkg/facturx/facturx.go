// Package facturx provides a public API for generating and parsing
// Factur-X/ZUGFeRD electronic invoices.
//
// This package exposes the profile-aware invoice model, the deterministic
// CII XML codec, the EN 16931 business-rule validator and the PDF
// attachment transport.
//
// Example usage:
//
//	invoice, err := facturx.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(invoice.GrandTotal)
package facturx

import (
	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/pdf"
	"github.com/rezonia/facturx/internal/render"
	"github.com/rezonia/facturx/internal/validate"
)

// Re-export core types for public API
type (
	Invoice                 = model.Invoice
	LineItem                = model.LineItem
	Party                   = model.Party
	TradeContact            = model.TradeContact
	PostalAddress           = model.PostalAddress
	Tax                     = model.Tax
	AllowanceCharge         = model.AllowanceCharge
	DocumentAllowanceCharge = model.DocumentAllowanceCharge
	GrossPrice              = model.GrossPrice
	BankAccount             = model.BankAccount
	PaymentMeans            = model.PaymentMeans
	PaymentTerms            = model.PaymentTerms
	PrecedingInvoice        = model.PrecedingInvoice
	Note                    = model.Note
	SchemeID                = model.SchemeID
	Date                    = model.Date
	Period                  = model.Period
	Quantity                = model.Quantity
	Money                   = money.Money
	Profile                 = model.Profile
	Violation               = model.Violation
	Severity                = model.Severity
)

// Re-export profiles
const (
	ProfileMinimum = model.ProfileMinimum
	ProfileBasicWL = model.ProfileBasicWL
	ProfileBasic   = model.ProfileBasic
	ProfileEN16931 = model.ProfileEN16931
)

// Re-export severities
const (
	SeverityWarning = model.SeverityWarning
	SeverityError   = model.SeverityError
)

// Re-export common code types
type (
	DocumentTypeCode = codes.DocumentTypeCode
	PaymentMeansCode = codes.PaymentMeansCode
	TaxCategoryCode  = codes.TaxCategoryCode
	UnitCode         = codes.UnitCode
)

// Re-export error types
type (
	ParseError        = model.ParseError
	ValidationError   = model.ValidationError
	ConstructionError = model.ConstructionError
	ValueError        = money.ValueError
)

// Generate validates the invoice and serializes it to Factur-X CII XML.
// The output is byte-identical across runs for the same instance.
func Generate(inv *Invoice) ([]byte, error) {
	return cii.Generate(inv)
}

// Parse decodes Factur-X CII XML into a validated invoice. Structural
// problems yield a *ParseError, business-rule breaches a *ValidationError.
func Parse(data []byte) (*Invoice, error) {
	return cii.Parse(data)
}

// ParseStructural decodes Factur-X CII XML without applying the business
// rules, for callers that report rule findings instead of failing on them.
func ParseStructural(data []byte) (*Invoice, error) {
	return cii.ParseStructural(data)
}

// Validate runs the business rules for the invoice's declared profile and
// returns all findings, errors and warnings alike.
func Validate(inv *Invoice) []Violation {
	return validate.Validate(inv)
}

// InferProfile returns the narrowest profile under which the invoice
// validates without errors. The second result is false when no profile
// accepts it.
func InferProfile(inv *Invoice) (Profile, bool) {
	return validate.Infer(inv)
}

// FormatText renders a plain-text summary of the invoice.
func FormatText(inv *Invoice) string {
	return render.Text(inv)
}

// EmbedInPDF validates and serializes the invoice, then attaches the XML
// to the PDF at inPath, writing the combined file to outPath.
func EmbedInPDF(inv *Invoice, inPath, outPath string) error {
	xml, err := Generate(inv)
	if err != nil {
		return err
	}
	return pdf.Embed(inPath, outPath, xml)
}

// ParsePDF extracts the Factur-X attachment from the PDF at path and
// decodes it like Parse.
func ParsePDF(path string) (*Invoice, error) {
	data, err := pdf.Extract(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ExtractXMLFromPDF returns the raw Factur-X XML attached to the PDF at
// path, without decoding it.
func ExtractXMLFromPDF(path string) ([]byte, error) {
	return pdf.Extract(path)
}
