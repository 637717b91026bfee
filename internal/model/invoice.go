package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
)

// PostalAddress is a postal address. Only the country code is mandatory in
// every profile; whether the other fields may or must appear depends on the
// profile and the role of the owning party.
type PostalAddress struct {
	CountryCode        string `json:"country_code"`
	CountrySubdivision string `json:"country_subdivision,omitempty"`
	PostCode           string `json:"post_code,omitempty"`
	City               string `json:"city,omitempty"`
	LineOne            string `json:"line_one,omitempty"`
	LineTwo            string `json:"line_two,omitempty"`
	LineThree          string `json:"line_three,omitempty"`
}

// NewPostalAddress creates an address, rejecting unknown country codes.
func NewPostalAddress(countryCode string) (*PostalAddress, error) {
	if !codes.ValidCountry(countryCode) {
		return nil, money.NewValueError(countryCode, "not an ISO 3166-1 alpha-2 country code")
	}
	return &PostalAddress{CountryCode: countryCode}, nil
}

// TradeContact is a contact person or department of a trade party (BG-6 on
// the seller, BG-9 on the buyer). Contacts are EN 16931 only.
type TradeContact struct {
	PersonName     string `json:"person_name,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

// Party is a trade party: seller, buyer or payee.
type Party struct {
	Name                string         `json:"name"`
	Address             *PostalAddress `json:"address,omitempty"`
	Email               string         `json:"email,omitempty"`
	VATID               string         `json:"vat_id,omitempty"`
	TaxNumber           string         `json:"tax_number,omitempty"`
	IDs                 []string       `json:"ids,omitempty"`
	GlobalIDs           []SchemeID     `json:"global_ids,omitempty"`
	LegalID             *SchemeID      `json:"legal_id,omitempty"`
	TradingBusinessName string         `json:"trading_business_name,omitempty"`
	Contacts            []TradeContact `json:"contacts,omitempty"`
}

// Tax is one entry of the document-level tax breakdown (BG-23). There is
// exactly one entry per distinct (category, rate) applied in the document.
type Tax struct {
	CalculatedAmount    money.Money           `json:"calculated_amount"`
	BasisAmount         money.Money           `json:"basis_amount"`
	RatePercent         decimal.Decimal       `json:"rate_percent"`
	CategoryCode        codes.TaxCategoryCode `json:"category_code"`
	ExemptionReason     string                `json:"exemption_reason,omitempty"`
	ExemptionReasonCode string                `json:"exemption_reason_code,omitempty"`
}

// AllowanceCharge is a discount or surcharge group. Charge selects the
// reading: false is an allowance, true a charge. At the document level the
// groups are BG-20/BG-21, on a line BG-27/BG-28, and under a gross price
// the group carries the price discount (BT-147).
type AllowanceCharge struct {
	Charge       bool             `json:"charge,omitempty"`
	ActualAmount money.Money      `json:"actual_amount"`
	BasisAmount  *money.Money     `json:"basis_amount,omitempty"`
	Percent      *decimal.Decimal `json:"percent,omitempty"`
	ReasonCode   string           `json:"reason_code,omitempty"`
	Reason       string           `json:"reason,omitempty"`
}

// DocumentAllowanceCharge is an allowance or charge applied to the whole
// document. Unlike the line-level groups it names the VAT treatment of the
// amount (BT-95/BT-96 for allowances, BT-102/BT-103 for charges).
type DocumentAllowanceCharge struct {
	AllowanceCharge

	TaxCategory codes.TaxCategoryCode `json:"tax_category"`
	TaxRate     *decimal.Decimal      `json:"tax_rate,omitempty"`
}

// GrossPrice is the unit price before price-level discounts (BT-148), with
// the applied discount that yields the net price.
type GrossPrice struct {
	Price         money.Money      `json:"price"`
	BasisQuantity *Quantity        `json:"basis_quantity,omitempty"`
	Discount      *AllowanceCharge `json:"discount,omitempty"`
}

// LineItem is one invoice line (BG-25). Lines appear from the BASIC profile
// upward; Description, Note, SellerAssignedID and BuyerAssignedID are
// EN 16931 only.
type LineItem struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description,omitempty"`
	Note             *Note                 `json:"note,omitempty"`
	GlobalID         *SchemeID             `json:"global_id,omitempty"`
	SellerAssignedID string                `json:"seller_assigned_id,omitempty"`
	BuyerAssignedID  string                `json:"buyer_assigned_id,omitempty"`
	GrossPrice       *GrossPrice           `json:"gross_price,omitempty"`
	NetPrice         money.Money           `json:"net_price"`
	BasisQuantity    *Quantity             `json:"basis_quantity,omitempty"`
	BilledQuantity   Quantity              `json:"billed_quantity"`
	AllowanceCharges []AllowanceCharge     `json:"allowance_charges,omitempty"`
	LineTotal        money.Money           `json:"line_total"`
	TaxRate          decimal.Decimal       `json:"tax_rate"`
	TaxCategory      codes.TaxCategoryCode `json:"tax_category"`
}

// BankAccount identifies a creditor or debtor financial account.
type BankAccount struct {
	IBAN   string `json:"iban,omitempty"`
	Name   string `json:"name,omitempty"`
	BankID string `json:"bank_id,omitempty"`
}

// PaymentMeans describes how the invoice is or was paid (BG-16).
type PaymentMeans struct {
	TypeCode     codes.PaymentMeansCode `json:"type_code"`
	Information  string                 `json:"information,omitempty"`
	PayeeAccount *BankAccount           `json:"payee_account,omitempty"`
	PayeeBIC     string                 `json:"payee_bic,omitempty"`
	PayerIBAN    string                 `json:"payer_iban,omitempty"`
}

// PaymentTerms carries the due date and terms text (BT-9, BT-20).
type PaymentTerms struct {
	Description          string `json:"description,omitempty"`
	DueDate              *Date  `json:"due_date,omitempty"`
	DirectDebitMandateID string `json:"direct_debit_mandate_id,omitempty"`
}

// PrecedingInvoice references a previously issued invoice (BG-3).
type PrecedingInvoice struct {
	Number    string `json:"number"`
	IssueDate *Date  `json:"issue_date,omitempty"`
}

// Invoice is the aggregate root. The Profile discriminant determines which
// optional slots must, may, or must not be populated; those rules are
// enforced by the validate package, not here. Absent optional fields are
// nil/empty, never present-but-empty.
type Invoice struct {
	Profile   Profile                `json:"profile"`
	Number    string                 `json:"number"`
	TypeCode  codes.DocumentTypeCode `json:"type_code"`
	IssueDate Date                   `json:"issue_date"`
	Seller    Party                  `json:"seller"`
	Buyer     Party                  `json:"buyer"`

	CurrencyCode  string       `json:"currency_code"`
	LineTotal     *money.Money `json:"line_total,omitempty"`
	TaxBasisTotal money.Money  `json:"tax_basis_total"`
	TaxTotal      money.Money  `json:"tax_total"`
	GrandTotal    money.Money  `json:"grand_total"`
	DuePayable    money.Money  `json:"due_payable"`

	BusinessProcessID string `json:"business_process_id,omitempty"`
	BuyerReference    string `json:"buyer_reference,omitempty"`
	BuyerOrderID      string `json:"buyer_order_id,omitempty"`

	// BASIC WL and up.
	Tax               []Tax                     `json:"tax,omitempty"`
	Notes             []Note                    `json:"notes,omitempty"`
	DeliveryDate      *Date                     `json:"delivery_date,omitempty"`
	BillingPeriod     *Period                   `json:"billing_period,omitempty"`
	PaymentMeans      []PaymentMeans            `json:"payment_means,omitempty"`
	PaymentTerms      *PaymentTerms             `json:"payment_terms,omitempty"`
	SEPAReference     string                    `json:"sepa_reference,omitempty"`
	PaymentReference  string                    `json:"payment_reference,omitempty"`
	ContractID        string                    `json:"contract_id,omitempty"`
	DespatchAdviceID  string                    `json:"despatch_advice_id,omitempty"`
	AllowanceCharges  []DocumentAllowanceCharge `json:"allowance_charges,omitempty"`
	ChargeTotal       *money.Money              `json:"charge_total,omitempty"`
	AllowanceTotal    *money.Money              `json:"allowance_total,omitempty"`
	PrepaidAmount     *money.Money              `json:"prepaid_amount,omitempty"`
	PrecedingInvoices []PrecedingInvoice        `json:"preceding_invoices,omitempty"`

	// BASIC and up.
	Lines []LineItem `json:"lines,omitempty"`

	// EN 16931.
	RoundingAmount    *money.Money `json:"rounding_amount,omitempty"`
	SellerOrderID     string       `json:"seller_order_id,omitempty"`
	TaxCurrencyCode   string       `json:"tax_currency_code,omitempty"`
	ReceivingAdviceID string       `json:"receiving_advice_id,omitempty"`
}

// Check enforces the primitive shape constraints that hold regardless of
// profile. Cross-field business rules are the validate package's job.
func (inv *Invoice) Check() error {
	if strings.TrimSpace(inv.Number) == "" {
		return NewConstructionError("Number", "invoice number is empty")
	}
	if !inv.TypeCode.IsInvoiceType() {
		return NewConstructionError("TypeCode",
			"not an invoice-class document type code: "+inv.TypeCode.String())
	}
	if inv.IssueDate.IsZero() {
		return NewConstructionError("IssueDate", "issue date is missing")
	}
	if strings.TrimSpace(inv.Seller.Name) == "" {
		return NewConstructionError("Seller.Name", "seller name is empty")
	}
	if strings.TrimSpace(inv.Buyer.Name) == "" {
		return NewConstructionError("Buyer.Name", "buyer name is empty")
	}
	if !codes.ValidCurrency(inv.CurrencyCode) {
		return NewConstructionError("CurrencyCode",
			"not an ISO 4217 currency code: "+inv.CurrencyCode)
	}
	if inv.TaxCurrencyCode != "" && !codes.ValidCurrency(inv.TaxCurrencyCode) {
		return NewConstructionError("TaxCurrencyCode",
			"not an ISO 4217 currency code: "+inv.TaxCurrencyCode)
	}
	for i := range inv.Lines {
		li := &inv.Lines[i]
		if strings.TrimSpace(li.Name) == "" {
			return NewConstructionError("Lines.Name", "line item name is empty")
		}
		if !codes.ValidTaxCategory(li.TaxCategory) {
			return NewConstructionError("Lines.TaxCategory",
				"not a tax category code: "+string(li.TaxCategory))
		}
		if li.BilledQuantity.Value.IsNegative() && !inv.TypeCode.IsCreditType() {
			return NewConstructionError("Lines.BilledQuantity",
				"negative quantity on a non-credit document")
		}
	}
	for i := range inv.Tax {
		if !codes.ValidTaxCategory(inv.Tax[i].CategoryCode) {
			return NewConstructionError("Tax.CategoryCode",
				"not a tax category code: "+string(inv.Tax[i].CategoryCode))
		}
	}
	for i := range inv.AllowanceCharges {
		if !codes.ValidTaxCategory(inv.AllowanceCharges[i].TaxCategory) {
			return NewConstructionError("AllowanceCharges.TaxCategory",
				"not a tax category code: "+string(inv.AllowanceCharges[i].TaxCategory))
		}
	}
	return nil
}
