// Package validate enforces the EN 16931 business rules against an invoice
// instance: mandatory field presence per profile, fields not admitted below
// a profile, conditional rules, and cross-field arithmetic consistency.
// Validation is a pure function over the instance; it never mutates it and
// two runs on the same instance yield identical findings in the same order.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// Validate runs every rule applicable to the instance's declared profile
// and returns all findings, errors and warnings alike, in rule order.
func Validate(inv *model.Invoice) []model.Violation {
	c := &checker{inv: inv}
	c.mandatory()
	c.restricted()
	c.conditional()
	c.arithmetic()
	c.breakdown()
	return c.violations
}

type checker struct {
	inv        *model.Invoice
	violations []model.Violation
}

func (c *checker) errorf(code, format string, args ...any) {
	c.violations = append(c.violations, model.Violation{
		Code: code, Message: fmt.Sprintf(format, args...), Severity: model.SeverityError,
	})
}

func (c *checker) warnf(code, format string, args ...any) {
	c.violations = append(c.violations, model.Violation{
		Code: code, Message: fmt.Sprintf(format, args...), Severity: model.SeverityWarning,
	})
}

// mandatory checks field presence for the declared profile. The mandatory
// sets are strict supersets along the profile order.
func (c *checker) mandatory() {
	inv := c.inv

	// Every profile.
	if inv.Number == "" {
		c.errorf("BT-1", "invoice number is missing")
	}
	if inv.IssueDate.IsZero() {
		c.errorf("BT-2", "issue date is missing")
	}
	if !inv.TypeCode.IsInvoiceType() {
		c.errorf("BT-3", "document type code %s is not an invoice type", inv.TypeCode)
	}
	if inv.CurrencyCode == "" {
		c.errorf("BT-5", "invoice currency code is missing")
	} else if !codes.ValidCurrency(inv.CurrencyCode) {
		c.errorf("BT-5", "invoice currency code %s is not an ISO 4217 code", inv.CurrencyCode)
	}
	if inv.TaxCurrencyCode != "" && !codes.ValidCurrency(inv.TaxCurrencyCode) {
		c.errorf("BT-6", "VAT accounting currency code %s is not an ISO 4217 code", inv.TaxCurrencyCode)
	}
	if inv.Seller.Name == "" {
		c.errorf("BT-27", "seller name is missing")
	}
	if inv.Seller.Address == nil || inv.Seller.Address.CountryCode == "" {
		c.errorf("BT-40", "seller country code is missing")
	}
	if inv.Seller.VATID == "" && inv.Seller.TaxNumber == "" && inv.Seller.LegalID == nil {
		c.errorf("BT-31", "seller has no VAT identifier, tax number or legal registration")
	}
	if inv.Buyer.Name == "" {
		c.errorf("BT-44", "buyer name is missing")
	}
	if inv.TaxBasisTotal.IsZeroValue() {
		c.errorf("BT-109", "invoice total amount without VAT is missing")
	}
	if inv.TaxTotal.IsZeroValue() {
		c.errorf("BT-110", "invoice total VAT amount is missing")
	}
	if inv.GrandTotal.IsZeroValue() {
		c.errorf("BT-112", "invoice total amount with VAT is missing")
	}
	if inv.DuePayable.IsZeroValue() {
		c.errorf("BT-115", "amount due for payment is missing")
	}

	if inv.Profile.AtLeast(model.ProfileBasicWL) {
		if inv.LineTotal == nil {
			c.errorf("BT-106", "sum of line net amounts is required from the BASIC WL profile")
		}
		if len(inv.Tax) == 0 {
			c.errorf("BG-23", "at least one VAT breakdown entry is required from the BASIC WL profile")
		}
		if inv.Buyer.Address == nil || inv.Buyer.Address.CountryCode == "" {
			c.errorf("BT-55", "buyer country code is required from the BASIC WL profile")
		}
	}

	if inv.Profile.AtLeast(model.ProfileBasic) {
		if len(inv.Lines) == 0 {
			c.errorf("BG-25", "at least one invoice line is required from the BASIC profile")
		}
		for i := range inv.Lines {
			c.mandatoryLine(i, &inv.Lines[i])
		}
	}

	if inv.Profile == model.ProfileEN16931 {
		// BR-CO-25: a positive amount due needs a due date or payment terms.
		if inv.DuePayable.Amount.IsPositive() && !hasDueDateOrTerms(inv) {
			c.errorf("BT-9", "payment due date or payment terms are required when an amount is due")
		}
		if inv.BuyerReference == "" {
			c.warnf("BT-10", "buyer reference is recommended in the EN 16931 profile")
		}
	} else if inv.DuePayable.Amount.IsPositive() && !hasDueDateOrTerms(inv) &&
		inv.Profile.AtLeast(model.ProfileBasicWL) {
		c.warnf("BT-9", "payment due date or payment terms are recommended when an amount is due")
	}
}

func hasDueDateOrTerms(inv *model.Invoice) bool {
	return inv.PaymentTerms != nil &&
		(inv.PaymentTerms.DueDate != nil || inv.PaymentTerms.Description != "")
}

func (c *checker) mandatoryLine(i int, li *model.LineItem) {
	if li.ID == "" {
		c.errorf("BT-126", "line %d: line identifier is missing", i+1)
	}
	if li.Name == "" {
		c.errorf("BT-153", "line %d: item name is missing", i+1)
	}
	if li.NetPrice.IsZeroValue() {
		c.errorf("BT-146", "line %d: item net price is missing", i+1)
	}
	if li.BilledQuantity.Unit == "" {
		c.errorf("BT-130", "line %d: invoiced quantity unit is missing", i+1)
	}
	if li.LineTotal.IsZeroValue() {
		c.errorf("BT-131", "line %d: line net amount is missing", i+1)
	}
	if li.BilledQuantity.Value.IsNegative() && !c.inv.TypeCode.IsCreditType() {
		c.errorf("BT-129", "line %d: negative quantity on a non-credit document", i+1)
	}
	if !codes.ValidTaxCategory(li.TaxCategory) {
		c.errorf("BT-151", "line %d: unknown VAT category code %q", i+1, li.TaxCategory)
	}
}

// restricted rejects fields that the declared profile does not admit.
// Presence is meaningful: a lower profile leaves higher-profile slots
// absent, never present-but-empty.
func (c *checker) restricted() {
	inv := c.inv

	if inv.Profile == model.ProfileMinimum {
		if len(inv.Tax) > 0 {
			c.errorf("BG-23", "VAT breakdown is not admitted in the MINIMUM profile")
		}
		if len(inv.Notes) > 0 {
			c.errorf("BG-1", "invoice notes are not admitted in the MINIMUM profile")
		}
		if len(inv.PaymentMeans) > 0 {
			c.errorf("BG-16", "payment means are not admitted in the MINIMUM profile")
		}
		if inv.PaymentTerms != nil {
			c.errorf("BT-20", "payment terms are not admitted in the MINIMUM profile")
		}
		if inv.DeliveryDate != nil {
			c.errorf("BT-72", "delivery date is not admitted in the MINIMUM profile")
		}
		if inv.BillingPeriod != nil {
			c.errorf("BG-14", "billing period is not admitted in the MINIMUM profile")
		}
		if inv.SEPAReference != "" {
			c.errorf("BT-90", "creditor reference is not admitted in the MINIMUM profile")
		}
		if inv.PaymentReference != "" {
			c.errorf("BT-83", "payment reference is not admitted in the MINIMUM profile")
		}
		if inv.ContractID != "" {
			c.errorf("BT-12", "contract reference is not admitted in the MINIMUM profile")
		}
		if inv.DespatchAdviceID != "" {
			c.errorf("BT-16", "despatch advice reference is not admitted in the MINIMUM profile")
		}
		if inv.ChargeTotal != nil || inv.AllowanceTotal != nil {
			c.errorf("BT-107", "charge and allowance totals are not admitted in the MINIMUM profile")
		}
		if len(inv.AllowanceCharges) > 0 {
			c.errorf("BG-20", "document allowance and charge groups are not admitted in the MINIMUM profile")
		}
		if inv.PrepaidAmount != nil {
			c.errorf("BT-113", "prepaid amount is not admitted in the MINIMUM profile")
		}
		if len(inv.PrecedingInvoices) > 0 {
			c.errorf("BG-3", "preceding invoice references are not admitted in the MINIMUM profile")
		}
	}

	if inv.Profile < model.ProfileBasic && len(inv.Lines) > 0 {
		c.errorf("BG-25", "invoice lines are not admitted below the BASIC profile")
	}

	if inv.Profile < model.ProfileEN16931 {
		if inv.RoundingAmount != nil {
			c.errorf("BT-114", "rounding amount is not admitted below the EN 16931 profile")
		}
		if inv.SellerOrderID != "" {
			c.errorf("BT-14", "seller order reference is not admitted below the EN 16931 profile")
		}
		if inv.TaxCurrencyCode != "" {
			c.errorf("BT-6", "VAT accounting currency is not admitted below the EN 16931 profile")
		}
		if inv.ReceivingAdviceID != "" {
			c.errorf("BT-15", "receiving advice reference is not admitted below the EN 16931 profile")
		}
		if inv.PaymentTerms != nil && inv.PaymentTerms.Description != "" {
			c.errorf("BT-20", "payment terms text is not admitted below the EN 16931 profile")
		}
		for i := range inv.PaymentMeans {
			pm := &inv.PaymentMeans[i]
			if pm.Information != "" {
				c.errorf("BT-82", "payment means text is not admitted below the EN 16931 profile")
			}
			if pm.PayeeBIC != "" {
				c.errorf("BT-86", "payee service provider identifier is not admitted below the EN 16931 profile")
			}
			if pm.PayeeAccount != nil && pm.PayeeAccount.Name != "" {
				c.errorf("BT-85", "payment account name is not admitted below the EN 16931 profile")
			}
		}
		for i := range inv.Lines {
			li := &inv.Lines[i]
			if li.Description != "" {
				c.errorf("BT-154", "line %d: item description is not admitted below the EN 16931 profile", i+1)
			}
			if li.Note != nil {
				c.errorf("BT-127", "line %d: line note is not admitted below the EN 16931 profile", i+1)
			}
			if li.SellerAssignedID != "" || li.BuyerAssignedID != "" {
				c.errorf("BT-155", "line %d: assigned item identifiers are not admitted below the EN 16931 profile", i+1)
			}
			if li.GrossPrice != nil {
				c.errorf("BT-148", "line %d: gross price is not admitted below the EN 16931 profile", i+1)
			}
			for j := range li.AllowanceCharges {
				ac := &li.AllowanceCharges[j]
				if ac.Percent != nil || ac.BasisAmount != nil {
					c.errorf("BG-27", "line %d: percentage or base amount on an allowance or charge is not admitted below the EN 16931 profile", i+1)
				}
			}
		}
		for i := range inv.AllowanceCharges {
			ac := &inv.AllowanceCharges[i]
			if ac.Percent != nil || ac.BasisAmount != nil {
				c.errorf("BG-20", "document allowance or charge %d: percentage or base amount is not admitted below the EN 16931 profile", i+1)
			}
		}
		if len(inv.Seller.Contacts) > 0 {
			c.errorf("BG-6", "seller contacts are not admitted below the EN 16931 profile")
		}
		if len(inv.Buyer.Contacts) > 0 {
			c.errorf("BG-9", "buyer contacts are not admitted below the EN 16931 profile")
		}
	}
}

// conditional enforces the rules whose applicability depends on other
// fields, such as SEPA account requirements and exemption reasons.
func (c *checker) conditional() {
	inv := c.inv

	for i := range inv.PaymentMeans {
		pm := &inv.PaymentMeans[i]
		if !codes.ValidPaymentMeans(pm.TypeCode) {
			c.errorf("BT-81", "payment means %d: unknown type code %q", i+1, pm.TypeCode)
			continue
		}
		switch pm.TypeCode {
		case codes.PaymentMeansSEPACreditXfer:
			if pm.PayeeAccount == nil || pm.PayeeAccount.IBAN == "" {
				c.errorf("BT-84", "payment means %d: a SEPA credit transfer requires the payee IBAN", i+1)
			}
		case codes.PaymentMeansSEPADirectDebit:
			if pm.PayerIBAN == "" {
				c.errorf("BT-91", "payment means %d: a SEPA direct debit requires the debited account IBAN", i+1)
			}
			if inv.PaymentTerms == nil || inv.PaymentTerms.DirectDebitMandateID == "" {
				c.errorf("BT-89", "payment means %d: a SEPA direct debit requires a mandate reference", i+1)
			}
		}
	}

	for i := range inv.AllowanceCharges {
		ac := &inv.AllowanceCharges[i]
		if ac.Charge {
			if ac.Reason == "" && ac.ReasonCode == "" {
				c.errorf("BT-104", "document charge %d: a reason or reason code is required", i+1)
			}
			if !codes.ValidTaxCategory(ac.TaxCategory) {
				c.errorf("BT-102", "document charge %d: unknown VAT category code %q", i+1, ac.TaxCategory)
			}
		} else {
			if ac.Reason == "" && ac.ReasonCode == "" {
				c.errorf("BT-97", "document allowance %d: a reason or reason code is required", i+1)
			}
			if !codes.ValidTaxCategory(ac.TaxCategory) {
				c.errorf("BT-95", "document allowance %d: unknown VAT category code %q", i+1, ac.TaxCategory)
			}
		}
	}
	for i := range inv.Lines {
		for j := range inv.Lines[i].AllowanceCharges {
			ac := &inv.Lines[i].AllowanceCharges[j]
			if ac.Reason != "" || ac.ReasonCode != "" {
				continue
			}
			if ac.Charge {
				c.errorf("BT-144", "line %d: charge %d requires a reason or reason code", i+1, j+1)
			} else {
				c.errorf("BT-139", "line %d: allowance %d requires a reason or reason code", i+1, j+1)
			}
		}
	}

	for i := range inv.Tax {
		t := &inv.Tax[i]
		if !codes.ValidTaxCategory(t.CategoryCode) {
			c.errorf("BT-118", "tax breakdown %d: unknown VAT category code %q", i+1, t.CategoryCode)
			continue
		}
		zeroClass := t.CategoryCode.RequiresExemptionReason()
		switch {
		case zeroClass:
			if t.ExemptionReason == "" && t.ExemptionReasonCode == "" {
				c.errorf("BT-120", "tax breakdown %d: category %s requires an exemption reason", i+1, t.CategoryCode)
			}
			if !t.RatePercent.IsZero() {
				c.errorf("BT-119", "tax breakdown %d: category %s requires a zero rate", i+1, t.CategoryCode)
			}
		case t.CategoryCode == codes.TaxCategoryZeroRate:
			if !t.RatePercent.IsZero() {
				c.errorf("BT-119", "tax breakdown %d: zero-rated category requires a zero rate", i+1)
			}
		case t.CategoryCode == codes.TaxCategoryStandardRate:
			if !t.RatePercent.IsPositive() {
				c.errorf("BT-119", "tax breakdown %d: standard-rated category requires a positive rate", i+1)
			}
			if t.ExemptionReason != "" || t.ExemptionReasonCode != "" {
				c.errorf("BT-120", "tax breakdown %d: exemption reason is not admitted for the standard rate", i+1)
			}
		}
	}
}

// arithmetic enforces the cross-field numeric consistency rules within the
// 0.01 minor-unit tolerance.
func (c *checker) arithmetic() {
	inv := c.inv

	c.currencies()

	if len(inv.Lines) > 0 && inv.LineTotal != nil {
		sum := decimal.Zero
		for i := range inv.Lines {
			sum = sum.Add(inv.Lines[i].LineTotal.Amount)
		}
		if !money.WithinTolerance(sum, inv.LineTotal.Amount) {
			c.errorf("BT-106", "sum of line net amounts %s does not match the declared total %s",
				sum, inv.LineTotal.Amount)
		}
	}

	for i := range inv.Lines {
		li := &inv.Lines[i]
		if li.GrossPrice != nil && li.GrossPrice.Discount != nil {
			net := li.GrossPrice.Price.Amount
			if li.GrossPrice.Discount.Charge {
				net = net.Add(li.GrossPrice.Discount.ActualAmount.Amount)
			} else {
				net = net.Sub(li.GrossPrice.Discount.ActualAmount.Amount)
			}
			if !money.WithinTolerance(net, li.NetPrice.Amount) {
				c.errorf("BT-146", "line %d: net price %s does not match the gross price adjusted by its discount (%s)",
					i+1, li.NetPrice.Amount, net)
			}
		}
		if li.NetPrice.IsZeroValue() || li.LineTotal.IsZeroValue() {
			continue
		}
		expected := li.BilledQuantity.Value.Mul(li.NetPrice.Amount)
		if li.BasisQuantity != nil && !li.BasisQuantity.Value.IsZero() {
			expected = expected.Div(li.BasisQuantity.Value)
		}
		for j := range li.AllowanceCharges {
			ac := &li.AllowanceCharges[j]
			if ac.Charge {
				expected = expected.Add(ac.ActualAmount.Amount)
			} else {
				expected = expected.Sub(ac.ActualAmount.Amount)
			}
		}
		expected = money.Round(expected, 2)
		if !money.WithinTolerance(expected, li.LineTotal.Amount) {
			c.errorf("BT-131", "line %d: net amount %s does not match quantity times price net of allowances and charges (%s)",
				i+1, li.LineTotal.Amount, expected)
		}
	}

	if len(inv.AllowanceCharges) > 0 {
		allowanceSum := decimal.Zero
		chargeSum := decimal.Zero
		for i := range inv.AllowanceCharges {
			ac := &inv.AllowanceCharges[i]
			if ac.Charge {
				chargeSum = chargeSum.Add(ac.ActualAmount.Amount)
			} else {
				allowanceSum = allowanceSum.Add(ac.ActualAmount.Amount)
			}
		}
		if !allowanceSum.IsZero() || inv.AllowanceTotal != nil {
			declared := decimal.Zero
			if inv.AllowanceTotal != nil {
				declared = inv.AllowanceTotal.Amount
			}
			if !money.WithinTolerance(allowanceSum, declared) {
				c.errorf("BT-107", "sum of document allowances %s does not match the declared allowance total %s",
					allowanceSum, declared)
			}
		}
		if !chargeSum.IsZero() || inv.ChargeTotal != nil {
			declared := decimal.Zero
			if inv.ChargeTotal != nil {
				declared = inv.ChargeTotal.Amount
			}
			if !money.WithinTolerance(chargeSum, declared) {
				c.errorf("BT-108", "sum of document charges %s does not match the declared charge total %s",
					chargeSum, declared)
			}
		}
	}

	if inv.LineTotal != nil && !inv.TaxBasisTotal.IsZeroValue() {
		basis := inv.LineTotal.Amount
		if inv.AllowanceTotal != nil {
			basis = basis.Sub(inv.AllowanceTotal.Amount)
		}
		if inv.ChargeTotal != nil {
			basis = basis.Add(inv.ChargeTotal.Amount)
		}
		if !money.WithinTolerance(basis, inv.TaxBasisTotal.Amount) {
			c.errorf("BT-109", "total without VAT %s does not match line total net of allowances and charges (%s)",
				inv.TaxBasisTotal.Amount, basis)
		}
	}

	if len(inv.Tax) > 0 {
		taxSum := decimal.Zero
		basisSum := decimal.Zero
		for i := range inv.Tax {
			taxSum = taxSum.Add(inv.Tax[i].CalculatedAmount.Amount)
			basisSum = basisSum.Add(inv.Tax[i].BasisAmount.Amount)
		}
		if !inv.TaxTotal.IsZeroValue() && !money.WithinTolerance(taxSum, inv.TaxTotal.Amount) {
			c.errorf("BT-110", "sum of VAT breakdown amounts %s does not match the total VAT amount %s",
				taxSum, inv.TaxTotal.Amount)
		}
		if !inv.TaxBasisTotal.IsZeroValue() && !money.WithinTolerance(basisSum, inv.TaxBasisTotal.Amount) {
			c.errorf("BT-116", "sum of VAT taxable bases %s does not match the total without VAT %s",
				basisSum, inv.TaxBasisTotal.Amount)
		}
	}

	for i := range inv.Tax {
		t := &inv.Tax[i]
		expected := money.ApplyRate(t.BasisAmount.Amount, t.RatePercent)
		if !money.WithinTolerance(expected, t.CalculatedAmount.Amount) {
			c.errorf("BT-117", "tax breakdown %d: VAT amount %s does not match base times rate (%s)",
				i+1, t.CalculatedAmount.Amount, expected)
		}
	}

	if !inv.TaxBasisTotal.IsZeroValue() && !inv.TaxTotal.IsZeroValue() && !inv.GrandTotal.IsZeroValue() {
		expected := inv.TaxBasisTotal.Amount.Add(inv.TaxTotal.Amount)
		if inv.RoundingAmount != nil {
			expected = expected.Add(inv.RoundingAmount.Amount)
		}
		if !money.WithinTolerance(expected, inv.GrandTotal.Amount) {
			c.errorf("BT-112", "total with VAT %s does not match total without VAT plus VAT (%s)",
				inv.GrandTotal.Amount, expected)
		}
	}

	if !inv.GrandTotal.IsZeroValue() && !inv.DuePayable.IsZeroValue() {
		expected := inv.GrandTotal.Amount
		if inv.PrepaidAmount != nil {
			expected = expected.Sub(inv.PrepaidAmount.Amount)
		}
		if !money.WithinTolerance(expected, inv.DuePayable.Amount) {
			c.errorf("BT-115", "amount due %s does not match total with VAT net of prepayment (%s)",
				inv.DuePayable.Amount, expected)
		}
	}
}

// currencies checks that every monetary amount is denominated in the
// invoice currency.
func (c *checker) currencies() {
	inv := c.inv
	if inv.CurrencyCode == "" {
		return
	}
	check := func(code string, m *money.Money, what string) {
		if m != nil && !m.IsZeroValue() && m.Currency != inv.CurrencyCode {
			c.errorf(code, "%s is denominated in %s, not the invoice currency %s",
				what, m.Currency, inv.CurrencyCode)
		}
	}
	check("BT-109", &inv.TaxBasisTotal, "total without VAT")
	check("BT-110", &inv.TaxTotal, "total VAT amount")
	check("BT-112", &inv.GrandTotal, "total with VAT")
	check("BT-115", &inv.DuePayable, "amount due")
	check("BT-106", inv.LineTotal, "sum of line net amounts")
	check("BT-107", inv.AllowanceTotal, "allowance total")
	check("BT-108", inv.ChargeTotal, "charge total")
	check("BT-113", inv.PrepaidAmount, "prepaid amount")
	check("BT-114", inv.RoundingAmount, "rounding amount")
	for i := range inv.Lines {
		check("BT-131", &inv.Lines[i].LineTotal, fmt.Sprintf("line %d net amount", i+1))
		check("BT-146", &inv.Lines[i].NetPrice, fmt.Sprintf("line %d net price", i+1))
		if gp := inv.Lines[i].GrossPrice; gp != nil {
			check("BT-148", &gp.Price, fmt.Sprintf("line %d gross price", i+1))
		}
		for j := range inv.Lines[i].AllowanceCharges {
			ac := &inv.Lines[i].AllowanceCharges[j]
			check("BG-27", &ac.ActualAmount, fmt.Sprintf("line %d allowance or charge %d amount", i+1, j+1))
			check("BG-27", ac.BasisAmount, fmt.Sprintf("line %d allowance or charge %d base", i+1, j+1))
		}
	}
	for i := range inv.AllowanceCharges {
		ac := &inv.AllowanceCharges[i]
		code := "BT-92"
		if ac.Charge {
			code = "BT-99"
		}
		check(code, &ac.ActualAmount, fmt.Sprintf("document allowance or charge %d amount", i+1))
		check(code, ac.BasisAmount, fmt.Sprintf("document allowance or charge %d base", i+1))
	}
	for i := range inv.Tax {
		check("BT-116", &inv.Tax[i].BasisAmount, fmt.Sprintf("tax breakdown %d base", i+1))
		check("BT-117", &inv.Tax[i].CalculatedAmount, fmt.Sprintf("tax breakdown %d amount", i+1))
	}
}

// breakdown checks the correspondence between line tax rates and the
// document-level VAT breakdown: one entry per distinct (category, rate),
// no duplicates, no orphans on either side.
func (c *checker) breakdown() {
	inv := c.inv

	type key struct {
		category codes.TaxCategoryCode
		rate     string
	}
	seen := make(map[key]int, len(inv.Tax))
	var order []key
	for i := range inv.Tax {
		k := key{inv.Tax[i].CategoryCode, inv.Tax[i].RatePercent.String()}
		seen[k]++
		order = append(order, k)
	}
	for _, k := range order {
		if seen[k] > 1 {
			c.errorf("BG-23", "duplicate VAT breakdown entry for category %s rate %s",
				k.category, k.rate)
			seen[k] = 1 // report once
		}
	}

	if len(inv.Lines) == 0 {
		return
	}
	lineRates := make(map[key]bool, len(inv.Lines))
	for i := range inv.Lines {
		li := &inv.Lines[i]
		k := key{li.TaxCategory, li.TaxRate.String()}
		lineRates[k] = true
		if _, ok := seen[k]; !ok {
			c.errorf("BG-23", "line %d: no VAT breakdown entry for category %s rate %s",
				i+1, k.category, k.rate)
		}
	}
	for i := range inv.Tax {
		k := key{inv.Tax[i].CategoryCode, inv.Tax[i].RatePercent.String()}
		if !lineRates[k] {
			c.errorf("BG-23", "VAT breakdown entry for category %s rate %s matches no invoice line",
				k.category, k.rate)
		}
	}
}
