package cii

import (
	"github.com/beevik/etree"

	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/validate"
)

// Generate validates the invoice and serializes it to Factur-X CII XML.
// Error-severity findings abort generation with a *model.ValidationError;
// warnings do not. The output is byte-identical across runs for the same
// instance.
func Generate(inv *model.Invoice) ([]byte, error) {
	if err := inv.Check(); err != nil {
		return nil, err
	}
	if errs := model.Errors(validate.Validate(inv)); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", NSCII)
	root.CreateAttr("xmlns:ram", NSRAM)
	root.CreateAttr("xmlns:udt", NSUDT)

	writeDocContext(root, inv)
	writeDoc(root, inv)
	writeTransaction(root, inv)

	reorder(root)
	doc.Indent(2)
	return doc.WriteToBytes()
}

func writeDocContext(parent *etree.Element, inv *model.Invoice) {
	ctx := parent.CreateElement("rsm:ExchangedDocumentContext")
	if inv.BusinessProcessID != "" {
		bp := ctx.CreateElement("ram:BusinessProcessSpecifiedDocumentContextParameter")
		textElement(bp, "ram:ID", inv.BusinessProcessID)
	}
	guideline := ctx.CreateElement("ram:GuidelineSpecifiedDocumentContextParameter")
	textElement(guideline, "ram:ID", inv.Profile.URN())
}

func writeDoc(parent *etree.Element, inv *model.Invoice) {
	doc := parent.CreateElement("rsm:ExchangedDocument")
	textElement(doc, "ram:ID", inv.Number)
	textElement(doc, "ram:TypeCode", inv.TypeCode.String())
	dateElement(doc, "ram:IssueDateTime", inv.IssueDate)
	for _, note := range inv.Notes {
		noteElement(doc, note)
	}
}

func writeTransaction(parent *etree.Element, inv *model.Invoice) {
	tx := parent.CreateElement("rsm:SupplyChainTradeTransaction")
	for i := range inv.Lines {
		writeLineItem(tx, &inv.Lines[i])
	}
	writeAgreement(tx, inv)
	writeDelivery(tx, inv)
	writeSettlement(tx, inv)
}

func writeLineItem(parent *etree.Element, li *model.LineItem) {
	el := parent.CreateElement("ram:IncludedSupplyChainTradeLineItem")

	doc := el.CreateElement("ram:AssociatedDocumentLineDocument")
	textElement(doc, "ram:LineID", li.ID)
	if li.Note != nil {
		noteElement(doc, *li.Note)
	}

	product := el.CreateElement("ram:SpecifiedTradeProduct")
	if li.GlobalID != nil {
		schemeIDElement(product, "ram:GlobalID", *li.GlobalID)
	}
	if li.SellerAssignedID != "" {
		textElement(product, "ram:SellerAssignedID", li.SellerAssignedID)
	}
	if li.BuyerAssignedID != "" {
		textElement(product, "ram:BuyerAssignedID", li.BuyerAssignedID)
	}
	textElement(product, "ram:Name", li.Name)
	if li.Description != "" {
		textElement(product, "ram:Description", li.Description)
	}

	agreement := el.CreateElement("ram:SpecifiedLineTradeAgreement")
	if li.GrossPrice != nil {
		gross := agreement.CreateElement("ram:GrossPriceProductTradePrice")
		amountElement(gross, "ram:ChargeAmount", li.GrossPrice.Price, true)
		if li.GrossPrice.BasisQuantity != nil {
			quantityElement(gross, "ram:BasisQuantity", *li.GrossPrice.BasisQuantity)
		}
		if li.GrossPrice.Discount != nil {
			allowanceChargeElement(gross, "ram:AppliedTradeAllowanceCharge", li.GrossPrice.Discount)
		}
	}
	price := agreement.CreateElement("ram:NetPriceProductTradePrice")
	amountElement(price, "ram:ChargeAmount", li.NetPrice, true)
	if li.BasisQuantity != nil {
		quantityElement(price, "ram:BasisQuantity", *li.BasisQuantity)
	}

	delivery := el.CreateElement("ram:SpecifiedLineTradeDelivery")
	quantityElement(delivery, "ram:BilledQuantity", li.BilledQuantity)

	settlement := el.CreateElement("ram:SpecifiedLineTradeSettlement")
	tax := settlement.CreateElement("ram:ApplicableTradeTax")
	textElement(tax, "ram:TypeCode", "VAT")
	textElement(tax, "ram:CategoryCode", string(li.TaxCategory))
	textElement(tax, "ram:RateApplicablePercent", li.TaxRate.String())
	for i := range li.AllowanceCharges {
		allowanceChargeElement(settlement, "ram:SpecifiedTradeAllowanceCharge", &li.AllowanceCharges[i])
	}
	summation := settlement.CreateElement("ram:SpecifiedTradeSettlementLineMonetarySummation")
	amountElement(summation, "ram:LineTotalAmount", li.LineTotal, false)
}

// allowanceChargeElement writes a discount or surcharge group. The charge
// indicator is the wire discriminant: true marks a charge.
func allowanceChargeElement(parent *etree.Element, name string, ac *model.AllowanceCharge) *etree.Element {
	el := parent.CreateElement(name)
	indicator := el.CreateElement("ram:ChargeIndicator")
	flag := indicator.CreateElement("udt:Indicator")
	if ac.Charge {
		flag.SetText("true")
	} else {
		flag.SetText("false")
	}
	if ac.Percent != nil {
		textElement(el, "ram:CalculationPercent", ac.Percent.String())
	}
	if ac.BasisAmount != nil {
		amountElement(el, "ram:BasisAmount", *ac.BasisAmount, false)
	}
	amountElement(el, "ram:ActualAmount", ac.ActualAmount, false)
	if ac.ReasonCode != "" {
		textElement(el, "ram:ReasonCode", ac.ReasonCode)
	}
	if ac.Reason != "" {
		textElement(el, "ram:Reason", ac.Reason)
	}
	return el
}

func writeAgreement(parent *etree.Element, inv *model.Invoice) {
	el := parent.CreateElement("ram:ApplicableHeaderTradeAgreement")
	if inv.BuyerReference != "" {
		textElement(el, "ram:BuyerReference", inv.BuyerReference)
	}
	writeTradeParty(el, "ram:SellerTradeParty", &inv.Seller)
	writeTradeParty(el, "ram:BuyerTradeParty", &inv.Buyer)
	if inv.SellerOrderID != "" {
		referencedDocument(el, "ram:SellerOrderReferencedDocument", inv.SellerOrderID)
	}
	if inv.BuyerOrderID != "" {
		referencedDocument(el, "ram:BuyerOrderReferencedDocument", inv.BuyerOrderID)
	}
	if inv.ContractID != "" {
		referencedDocument(el, "ram:ContractReferencedDocument", inv.ContractID)
	}
}

func writeTradeParty(parent *etree.Element, name string, party *model.Party) {
	el := parent.CreateElement(name)
	for _, id := range party.IDs {
		textElement(el, "ram:ID", id)
	}
	for _, gid := range party.GlobalIDs {
		schemeIDElement(el, "ram:GlobalID", gid)
	}
	textElement(el, "ram:Name", party.Name)
	if party.LegalID != nil || party.TradingBusinessName != "" {
		legal := el.CreateElement("ram:SpecifiedLegalOrganization")
		if party.LegalID != nil {
			schemeIDElement(legal, "ram:ID", *party.LegalID)
		}
		if party.TradingBusinessName != "" {
			textElement(legal, "ram:TradingBusinessName", party.TradingBusinessName)
		}
	}
	for i := range party.Contacts {
		writeTradeContact(el, &party.Contacts[i])
	}
	if party.Address != nil {
		writeAddress(el, party.Address)
	}
	if party.Email != "" {
		comm := el.CreateElement("ram:URIUniversalCommunication")
		uri := comm.CreateElement("ram:URIID")
		uri.CreateAttr("schemeID", "EM")
		uri.SetText("mailto:" + party.Email)
	}
	if party.TaxNumber != "" {
		taxRegistration(el, "FC", party.TaxNumber)
	}
	if party.VATID != "" {
		taxRegistration(el, "VA", party.VATID)
	}
}

func writeTradeContact(parent *etree.Element, contact *model.TradeContact) {
	el := parent.CreateElement("ram:DefinedTradeContact")
	if contact.PersonName != "" {
		textElement(el, "ram:PersonName", contact.PersonName)
	}
	if contact.DepartmentName != "" {
		textElement(el, "ram:DepartmentName", contact.DepartmentName)
	}
	if contact.Phone != "" {
		phone := el.CreateElement("ram:TelephoneUniversalCommunication")
		textElement(phone, "ram:CompleteNumber", contact.Phone)
	}
	if contact.Email != "" {
		comm := el.CreateElement("ram:EmailURIUniversalCommunication")
		uri := comm.CreateElement("ram:URIID")
		uri.CreateAttr("schemeID", "EM")
		uri.SetText("mailto:" + contact.Email)
	}
}

func taxRegistration(parent *etree.Element, scheme, id string) {
	reg := parent.CreateElement("ram:SpecifiedTaxRegistration")
	el := reg.CreateElement("ram:ID")
	el.CreateAttr("schemeID", scheme)
	el.SetText(id)
}

func writeAddress(parent *etree.Element, addr *model.PostalAddress) {
	el := parent.CreateElement("ram:PostalTradeAddress")
	if addr.PostCode != "" {
		textElement(el, "ram:PostcodeCode", addr.PostCode)
	}
	if addr.LineOne != "" {
		textElement(el, "ram:LineOne", addr.LineOne)
	}
	if addr.LineTwo != "" {
		textElement(el, "ram:LineTwo", addr.LineTwo)
	}
	if addr.LineThree != "" {
		textElement(el, "ram:LineThree", addr.LineThree)
	}
	if addr.City != "" {
		textElement(el, "ram:CityName", addr.City)
	}
	textElement(el, "ram:CountryID", addr.CountryCode)
	if addr.CountrySubdivision != "" {
		textElement(el, "ram:CountrySubDivisionName", addr.CountrySubdivision)
	}
}

func writeDelivery(parent *etree.Element, inv *model.Invoice) {
	el := parent.CreateElement("ram:ApplicableHeaderTradeDelivery")
	if inv.DeliveryDate != nil {
		event := el.CreateElement("ram:ActualDeliverySupplyChainEvent")
		dateElement(event, "ram:OccurrenceDateTime", *inv.DeliveryDate)
	}
	if inv.DespatchAdviceID != "" {
		referencedDocument(el, "ram:DespatchAdviceReferencedDocument", inv.DespatchAdviceID)
	}
	if inv.ReceivingAdviceID != "" {
		referencedDocument(el, "ram:ReceivingAdviceReferencedDocument", inv.ReceivingAdviceID)
	}
}

func writeSettlement(parent *etree.Element, inv *model.Invoice) {
	el := parent.CreateElement("ram:ApplicableHeaderTradeSettlement")
	if inv.SEPAReference != "" {
		textElement(el, "ram:CreditorReferenceID", inv.SEPAReference)
	}
	if inv.PaymentReference != "" {
		textElement(el, "ram:PaymentReference", inv.PaymentReference)
	}
	if inv.TaxCurrencyCode != "" {
		textElement(el, "ram:TaxCurrencyCode", inv.TaxCurrencyCode)
	}
	textElement(el, "ram:InvoiceCurrencyCode", inv.CurrencyCode)
	for i := range inv.PaymentMeans {
		writePaymentMeans(el, &inv.PaymentMeans[i])
	}
	for i := range inv.Tax {
		writeTax(el, &inv.Tax[i])
	}
	if inv.BillingPeriod != nil {
		period := el.CreateElement("ram:BillingSpecifiedPeriod")
		dateElement(period, "ram:StartDateTime", inv.BillingPeriod.Start)
		dateElement(period, "ram:EndDateTime", inv.BillingPeriod.End)
	}
	for i := range inv.AllowanceCharges {
		writeDocAllowanceCharge(el, &inv.AllowanceCharges[i])
	}
	if inv.PaymentTerms != nil {
		writePaymentTerms(el, inv.PaymentTerms)
	}
	writeSummation(el, inv)
	for i := range inv.PrecedingInvoices {
		writePrecedingInvoice(el, &inv.PrecedingInvoices[i])
	}
}

func writeDocAllowanceCharge(parent *etree.Element, ac *model.DocumentAllowanceCharge) {
	el := allowanceChargeElement(parent, "ram:SpecifiedTradeAllowanceCharge", &ac.AllowanceCharge)
	tax := el.CreateElement("ram:CategoryTradeTax")
	textElement(tax, "ram:TypeCode", "VAT")
	textElement(tax, "ram:CategoryCode", string(ac.TaxCategory))
	if ac.TaxRate != nil {
		textElement(tax, "ram:RateApplicablePercent", ac.TaxRate.String())
	}
}

func writePaymentMeans(parent *etree.Element, pm *model.PaymentMeans) {
	el := parent.CreateElement("ram:SpecifiedTradeSettlementPaymentMeans")
	textElement(el, "ram:TypeCode", string(pm.TypeCode))
	if pm.Information != "" {
		textElement(el, "ram:Information", pm.Information)
	}
	if pm.PayerIBAN != "" {
		account := el.CreateElement("ram:PayerPartyDebtorFinancialAccount")
		textElement(account, "ram:IBANID", pm.PayerIBAN)
	}
	if pm.PayeeAccount != nil {
		account := el.CreateElement("ram:PayeePartyCreditorFinancialAccount")
		if pm.PayeeAccount.IBAN != "" {
			textElement(account, "ram:IBANID", pm.PayeeAccount.IBAN)
		}
		if pm.PayeeAccount.Name != "" {
			textElement(account, "ram:AccountName", pm.PayeeAccount.Name)
		}
		if pm.PayeeAccount.BankID != "" {
			textElement(account, "ram:ProprietaryID", pm.PayeeAccount.BankID)
		}
	}
	if pm.PayeeBIC != "" {
		institution := el.CreateElement("ram:PayeeSpecifiedCreditorFinancialInstitution")
		textElement(institution, "ram:BICID", pm.PayeeBIC)
	}
}

func writeTax(parent *etree.Element, t *model.Tax) {
	el := parent.CreateElement("ram:ApplicableTradeTax")
	amountElement(el, "ram:CalculatedAmount", t.CalculatedAmount, false)
	textElement(el, "ram:TypeCode", "VAT")
	if t.ExemptionReason != "" {
		textElement(el, "ram:ExemptionReason", t.ExemptionReason)
	}
	amountElement(el, "ram:BasisAmount", t.BasisAmount, false)
	textElement(el, "ram:CategoryCode", string(t.CategoryCode))
	if t.ExemptionReasonCode != "" {
		textElement(el, "ram:ExemptionReasonCode", t.ExemptionReasonCode)
	}
	textElement(el, "ram:RateApplicablePercent", t.RatePercent.String())
}

func writePaymentTerms(parent *etree.Element, terms *model.PaymentTerms) {
	el := parent.CreateElement("ram:SpecifiedTradePaymentTerms")
	if terms.Description != "" {
		textElement(el, "ram:Description", terms.Description)
	}
	if terms.DueDate != nil {
		dateElement(el, "ram:DueDateDateTime", *terms.DueDate)
	}
	if terms.DirectDebitMandateID != "" {
		textElement(el, "ram:DirectDebitMandateID", terms.DirectDebitMandateID)
	}
}

func writeSummation(parent *etree.Element, inv *model.Invoice) {
	el := parent.CreateElement("ram:SpecifiedTradeSettlementHeaderMonetarySummation")
	if inv.LineTotal != nil {
		amountElement(el, "ram:LineTotalAmount", *inv.LineTotal, false)
	}
	if inv.ChargeTotal != nil {
		amountElement(el, "ram:ChargeTotalAmount", *inv.ChargeTotal, false)
	}
	if inv.AllowanceTotal != nil {
		amountElement(el, "ram:AllowanceTotalAmount", *inv.AllowanceTotal, false)
	}
	amountElement(el, "ram:TaxBasisTotalAmount", inv.TaxBasisTotal, false)
	amountElement(el, "ram:TaxTotalAmount", inv.TaxTotal, true)
	if inv.RoundingAmount != nil {
		amountElement(el, "ram:RoundingAmount", *inv.RoundingAmount, false)
	}
	amountElement(el, "ram:GrandTotalAmount", inv.GrandTotal, false)
	if inv.PrepaidAmount != nil {
		amountElement(el, "ram:TotalPrepaidAmount", *inv.PrepaidAmount, false)
	}
	amountElement(el, "ram:DuePayableAmount", inv.DuePayable, false)
}

func writePrecedingInvoice(parent *etree.Element, ref *model.PrecedingInvoice) {
	el := parent.CreateElement("ram:InvoiceReferencedDocument")
	textElement(el, "ram:IssuerAssignedID", ref.Number)
	if ref.IssueDate != nil {
		dateElement(el, "ram:FormattedIssueDateTime", *ref.IssueDate)
	}
}

// Element helpers.

func textElement(parent *etree.Element, name, text string) {
	parent.CreateElement(name).SetText(text)
}

// dateElement writes the udt:DateTimeString wire form with the UNTDID 2379
// qualifier 102 (CCYYMMDD).
func dateElement(parent *etree.Element, name string, d model.Date) {
	el := parent.CreateElement(name)
	ds := el.CreateElement("udt:DateTimeString")
	ds.CreateAttr("format", "102")
	ds.SetText(d.Format102())
}

// amountElement renders a monetary amount with at least two fraction
// digits, keeping any extra digits the value carries. The currencyID
// attribute is written only where the profile requires it.
func amountElement(parent *etree.Element, name string, m money.Money, withCurrency bool) {
	el := parent.CreateElement(name)
	if withCurrency {
		el.CreateAttr("currencyID", m.Currency)
	}
	digits := money.FractionDigits(m.Amount)
	if digits < 2 {
		digits = 2
	}
	el.SetText(m.Amount.StringFixed(digits))
}

func quantityElement(parent *etree.Element, name string, q model.Quantity) {
	el := parent.CreateElement(name)
	el.CreateAttr("unitCode", string(q.Unit))
	el.SetText(q.Value.String())
}

func schemeIDElement(parent *etree.Element, name string, id model.SchemeID) {
	el := parent.CreateElement(name)
	if id.Scheme != "" {
		el.CreateAttr("schemeID", id.Scheme)
	}
	el.SetText(id.Value)
}

func noteElement(parent *etree.Element, note model.Note) {
	el := parent.CreateElement("ram:IncludedNote")
	textElement(el, "ram:Content", note.Content)
	if note.SubjectCode != "" {
		textElement(el, "ram:SubjectCode", string(note.SubjectCode))
	}
}

func referencedDocument(parent *etree.Element, name, id string) {
	el := parent.CreateElement(name)
	textElement(el, "ram:IssuerAssignedID", id)
}
