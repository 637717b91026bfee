package cii

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/validate"
)

// Parse decodes a Factur-X CII document and validates the result.
//
// Decoding is two-phase. The first phase rejects structural problems with a
// *model.ParseError: malformed XML, a wrong root element or namespace, an
// unknown guideline URN, or a missing structurally required element. The
// second phase runs the business rules against the extracted instance under
// its declared profile and rejects rule breaches with a
// *model.ValidationError. No other error type crosses this boundary.
func Parse(data []byte) (*model.Invoice, error) {
	inv, err := ParseStructural(data)
	if err != nil {
		return nil, err
	}
	if errs := model.Errors(validate.Validate(inv)); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return inv, nil
}

// ParseStructural runs only the first phase: it extracts an instance from
// the document without applying the business rules. Callers that want to
// report rule findings rather than fail on them use this with
// validate.Validate.
func ParseStructural(data []byte) (*model.Invoice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewParseError("", "malformed XML", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError("", "document has no root element", nil)
	}
	if root.Tag != "CrossIndustryInvoice" || root.NamespaceURI() != NSCII {
		return nil, model.NewParseError(root.Tag,
			"root element is not a CrossIndustryInvoice in the CII namespace", nil)
	}

	inv := &model.Invoice{}
	if err := parseDocContext(root, inv); err != nil {
		return nil, err
	}
	if err := parseDoc(root, inv); err != nil {
		return nil, err
	}
	if err := parseTransaction(root, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func parseDocContext(root *etree.Element, inv *model.Invoice) error {
	ctx, err := requiredChild(root, NSCII, "ExchangedDocumentContext")
	if err != nil {
		return err
	}
	if bp := child(ctx, NSRAM, "BusinessProcessSpecifiedDocumentContextParameter"); bp != nil {
		inv.BusinessProcessID = childTextOptional(bp, NSRAM, "ID")
	}
	guideline, err := requiredChild(ctx, NSRAM, "GuidelineSpecifiedDocumentContextParameter")
	if err != nil {
		return err
	}
	urn, err := requiredChildText(guideline, NSRAM, "ID")
	if err != nil {
		return err
	}
	profile, ok := model.ProfileFromURN(urn)
	if !ok {
		return model.NewParseError("ram:GuidelineSpecifiedDocumentContextParameter",
			"unsupported guideline "+urn, nil)
	}
	inv.Profile = profile
	return nil
}

func parseDoc(root *etree.Element, inv *model.Invoice) error {
	doc, err := requiredChild(root, NSCII, "ExchangedDocument")
	if err != nil {
		return err
	}
	if inv.Number, err = requiredChildText(doc, NSRAM, "ID"); err != nil {
		return err
	}
	typeCode, err := requiredChildText(doc, NSRAM, "TypeCode")
	if err != nil {
		return err
	}
	code, ok := codes.ParseDocumentTypeCode(typeCode)
	if !ok {
		return model.NewParseError("ram:TypeCode", "invalid document type code "+typeCode, nil)
	}
	inv.TypeCode = code
	if inv.IssueDate, err = requiredChildDate(doc, NSRAM, "IssueDateTime"); err != nil {
		return err
	}
	for _, el := range children(doc, NSRAM, "IncludedNote") {
		note, err := parseNote(el)
		if err != nil {
			return err
		}
		inv.Notes = append(inv.Notes, note)
	}
	return nil
}

func parseTransaction(root *etree.Element, inv *model.Invoice) error {
	tx, err := requiredChild(root, NSCII, "SupplyChainTradeTransaction")
	if err != nil {
		return err
	}
	settlement, err := requiredChild(tx, NSRAM, "ApplicableHeaderTradeSettlement")
	if err != nil {
		return err
	}
	// The invoice currency is the default for every bare amount, so it is
	// extracted before anything that carries money.
	if inv.CurrencyCode, err = requiredChildText(settlement, NSRAM, "InvoiceCurrencyCode"); err != nil {
		return err
	}

	for _, el := range children(tx, NSRAM, "IncludedSupplyChainTradeLineItem") {
		line, err := parseLineItem(el, inv.CurrencyCode)
		if err != nil {
			return err
		}
		inv.Lines = append(inv.Lines, line)
	}

	agreement, err := requiredChild(tx, NSRAM, "ApplicableHeaderTradeAgreement")
	if err != nil {
		return err
	}
	if err := parseAgreement(agreement, inv); err != nil {
		return err
	}

	delivery, err := requiredChild(tx, NSRAM, "ApplicableHeaderTradeDelivery")
	if err != nil {
		return err
	}
	if err := parseDelivery(delivery, inv); err != nil {
		return err
	}

	return parseSettlement(settlement, inv)
}

func parseAgreement(el *etree.Element, inv *model.Invoice) error {
	inv.BuyerReference = childTextOptional(el, NSRAM, "BuyerReference")
	seller, err := requiredChild(el, NSRAM, "SellerTradeParty")
	if err != nil {
		return err
	}
	if inv.Seller, err = parseTradeParty(seller); err != nil {
		return err
	}
	buyer, err := requiredChild(el, NSRAM, "BuyerTradeParty")
	if err != nil {
		return err
	}
	if inv.Buyer, err = parseTradeParty(buyer); err != nil {
		return err
	}
	if inv.SellerOrderID, err = referencedDocumentID(el, "SellerOrderReferencedDocument"); err != nil {
		return err
	}
	if inv.BuyerOrderID, err = referencedDocumentID(el, "BuyerOrderReferencedDocument"); err != nil {
		return err
	}
	if inv.ContractID, err = referencedDocumentID(el, "ContractReferencedDocument"); err != nil {
		return err
	}
	return nil
}

func parseTradeParty(el *etree.Element) (model.Party, error) {
	var party model.Party
	var err error
	for _, id := range children(el, NSRAM, "ID") {
		party.IDs = append(party.IDs, id.Text())
	}
	for _, gid := range children(el, NSRAM, "GlobalID") {
		party.GlobalIDs = append(party.GlobalIDs, parseSchemeID(gid))
	}
	if party.Name, err = requiredChildText(el, NSRAM, "Name"); err != nil {
		return model.Party{}, err
	}
	if legal := child(el, NSRAM, "SpecifiedLegalOrganization"); legal != nil {
		if id := child(legal, NSRAM, "ID"); id != nil {
			sid := parseSchemeID(id)
			party.LegalID = &sid
		}
		party.TradingBusinessName = childTextOptional(legal, NSRAM, "TradingBusinessName")
	}
	for _, contactEl := range children(el, NSRAM, "DefinedTradeContact") {
		party.Contacts = append(party.Contacts, parseTradeContact(contactEl))
	}
	if addr := child(el, NSRAM, "PostalTradeAddress"); addr != nil {
		address, err := parseAddress(addr)
		if err != nil {
			return model.Party{}, err
		}
		party.Address = address
	}
	if comm := child(el, NSRAM, "URIUniversalCommunication"); comm != nil {
		uri := childTextOptional(comm, NSRAM, "URIID")
		party.Email = strings.TrimPrefix(uri, "mailto:")
	}
	for _, reg := range children(el, NSRAM, "SpecifiedTaxRegistration") {
		id := child(reg, NSRAM, "ID")
		if id == nil {
			return model.Party{}, model.NewParseError("ram:SpecifiedTaxRegistration",
				"tax registration without an ID", nil)
		}
		switch id.SelectAttrValue("schemeID", "") {
		case "VA":
			party.VATID = id.Text()
		case "FC":
			party.TaxNumber = id.Text()
		default:
			return model.Party{}, model.NewParseError("ram:SpecifiedTaxRegistration",
				"unknown tax registration scheme "+id.SelectAttrValue("schemeID", ""), nil)
		}
	}
	return party, nil
}

func parseTradeContact(el *etree.Element) model.TradeContact {
	contact := model.TradeContact{
		PersonName:     childTextOptional(el, NSRAM, "PersonName"),
		DepartmentName: childTextOptional(el, NSRAM, "DepartmentName"),
	}
	if phone := child(el, NSRAM, "TelephoneUniversalCommunication"); phone != nil {
		contact.Phone = childTextOptional(phone, NSRAM, "CompleteNumber")
	}
	if email := child(el, NSRAM, "EmailURIUniversalCommunication"); email != nil {
		uri := childTextOptional(email, NSRAM, "URIID")
		contact.Email = strings.TrimPrefix(uri, "mailto:")
	}
	return contact
}

func parseAddress(el *etree.Element) (*model.PostalAddress, error) {
	country, err := requiredChildText(el, NSRAM, "CountryID")
	if err != nil {
		return nil, err
	}
	addr, err := model.NewPostalAddress(country)
	if err != nil {
		return nil, model.NewParseError("ram:CountryID", "invalid country code", err)
	}
	addr.PostCode = childTextOptional(el, NSRAM, "PostcodeCode")
	addr.LineOne = childTextOptional(el, NSRAM, "LineOne")
	addr.LineTwo = childTextOptional(el, NSRAM, "LineTwo")
	addr.LineThree = childTextOptional(el, NSRAM, "LineThree")
	addr.City = childTextOptional(el, NSRAM, "CityName")
	addr.CountrySubdivision = childTextOptional(el, NSRAM, "CountrySubDivisionName")
	return addr, nil
}

func parseLineItem(el *etree.Element, currency string) (model.LineItem, error) {
	var li model.LineItem
	var err error

	doc, err := requiredChild(el, NSRAM, "AssociatedDocumentLineDocument")
	if err != nil {
		return model.LineItem{}, err
	}
	if li.ID, err = requiredChildText(doc, NSRAM, "LineID"); err != nil {
		return model.LineItem{}, err
	}
	if noteEl := child(doc, NSRAM, "IncludedNote"); noteEl != nil {
		note, err := parseNote(noteEl)
		if err != nil {
			return model.LineItem{}, err
		}
		li.Note = &note
	}

	product, err := requiredChild(el, NSRAM, "SpecifiedTradeProduct")
	if err != nil {
		return model.LineItem{}, err
	}
	if gid := child(product, NSRAM, "GlobalID"); gid != nil {
		sid := parseSchemeID(gid)
		li.GlobalID = &sid
	}
	li.SellerAssignedID = childTextOptional(product, NSRAM, "SellerAssignedID")
	li.BuyerAssignedID = childTextOptional(product, NSRAM, "BuyerAssignedID")
	if li.Name, err = requiredChildText(product, NSRAM, "Name"); err != nil {
		return model.LineItem{}, err
	}
	li.Description = childTextOptional(product, NSRAM, "Description")

	agreement, err := requiredChild(el, NSRAM, "SpecifiedLineTradeAgreement")
	if err != nil {
		return model.LineItem{}, err
	}
	if gross := child(agreement, NSRAM, "GrossPriceProductTradePrice"); gross != nil {
		if li.GrossPrice, err = parseGrossPrice(gross, currency); err != nil {
			return model.LineItem{}, err
		}
	}
	price, err := requiredChild(agreement, NSRAM, "NetPriceProductTradePrice")
	if err != nil {
		return model.LineItem{}, err
	}
	if li.NetPrice, err = requiredChildAmount(price, "ChargeAmount", currency); err != nil {
		return model.LineItem{}, err
	}
	if basis := child(price, NSRAM, "BasisQuantity"); basis != nil {
		q, err := parseQuantity(basis)
		if err != nil {
			return model.LineItem{}, err
		}
		li.BasisQuantity = &q
	}

	delivery, err := requiredChild(el, NSRAM, "SpecifiedLineTradeDelivery")
	if err != nil {
		return model.LineItem{}, err
	}
	billed, err := requiredChild(delivery, NSRAM, "BilledQuantity")
	if err != nil {
		return model.LineItem{}, err
	}
	if li.BilledQuantity, err = parseQuantity(billed); err != nil {
		return model.LineItem{}, err
	}

	settlement, err := requiredChild(el, NSRAM, "SpecifiedLineTradeSettlement")
	if err != nil {
		return model.LineItem{}, err
	}
	tax, err := requiredChild(settlement, NSRAM, "ApplicableTradeTax")
	if err != nil {
		return model.LineItem{}, err
	}
	category, err := requiredChildText(tax, NSRAM, "CategoryCode")
	if err != nil {
		return model.LineItem{}, err
	}
	li.TaxCategory = codes.TaxCategoryCode(category)
	if li.TaxRate, err = requiredChildDecimal(tax, "RateApplicablePercent"); err != nil {
		return model.LineItem{}, err
	}
	for _, acEl := range children(settlement, NSRAM, "SpecifiedTradeAllowanceCharge") {
		ac, err := parseAllowanceCharge(acEl, currency)
		if err != nil {
			return model.LineItem{}, err
		}
		li.AllowanceCharges = append(li.AllowanceCharges, ac)
	}
	summation, err := requiredChild(settlement, NSRAM, "SpecifiedTradeSettlementLineMonetarySummation")
	if err != nil {
		return model.LineItem{}, err
	}
	if li.LineTotal, err = requiredChildAmount(summation, "LineTotalAmount", currency); err != nil {
		return model.LineItem{}, err
	}
	return li, nil
}

func parseGrossPrice(el *etree.Element, currency string) (*model.GrossPrice, error) {
	gp := &model.GrossPrice{}
	var err error
	if gp.Price, err = requiredChildAmount(el, "ChargeAmount", currency); err != nil {
		return nil, err
	}
	if basis := child(el, NSRAM, "BasisQuantity"); basis != nil {
		q, err := parseQuantity(basis)
		if err != nil {
			return nil, err
		}
		gp.BasisQuantity = &q
	}
	if applied := child(el, NSRAM, "AppliedTradeAllowanceCharge"); applied != nil {
		ac, err := parseAllowanceCharge(applied, currency)
		if err != nil {
			return nil, err
		}
		gp.Discount = &ac
	}
	return gp, nil
}

// parseAllowanceCharge decodes a discount or surcharge group. The charge
// indicator discriminates: true is a charge, false an allowance.
func parseAllowanceCharge(el *etree.Element, currency string) (model.AllowanceCharge, error) {
	var ac model.AllowanceCharge
	indicator, err := requiredChild(el, NSRAM, "ChargeIndicator")
	if err != nil {
		return model.AllowanceCharge{}, err
	}
	flag, err := requiredChildText(indicator, NSUDT, "Indicator")
	if err != nil {
		return model.AllowanceCharge{}, err
	}
	switch flag {
	case "true":
		ac.Charge = true
	case "false":
	default:
		return model.AllowanceCharge{}, model.NewParseError("udt:Indicator",
			"charge indicator is neither true nor false: "+flag, nil)
	}
	if ac.Percent, err = optionalChildDecimal(el, "CalculationPercent"); err != nil {
		return model.AllowanceCharge{}, err
	}
	if ac.BasisAmount, err = optionalChildAmount(el, "BasisAmount", currency); err != nil {
		return model.AllowanceCharge{}, err
	}
	if ac.ActualAmount, err = requiredChildAmount(el, "ActualAmount", currency); err != nil {
		return model.AllowanceCharge{}, err
	}
	ac.ReasonCode = childTextOptional(el, NSRAM, "ReasonCode")
	ac.Reason = childTextOptional(el, NSRAM, "Reason")
	return ac, nil
}

func parseDocAllowanceCharge(el *etree.Element, currency string) (model.DocumentAllowanceCharge, error) {
	ac, err := parseAllowanceCharge(el, currency)
	if err != nil {
		return model.DocumentAllowanceCharge{}, err
	}
	tax, err := requiredChild(el, NSRAM, "CategoryTradeTax")
	if err != nil {
		return model.DocumentAllowanceCharge{}, err
	}
	typeCode, err := requiredChildText(tax, NSRAM, "TypeCode")
	if err != nil {
		return model.DocumentAllowanceCharge{}, err
	}
	if typeCode != "VAT" {
		return model.DocumentAllowanceCharge{}, model.NewParseError("ram:CategoryTradeTax",
			"unsupported tax type "+typeCode, nil)
	}
	category, err := requiredChildText(tax, NSRAM, "CategoryCode")
	if err != nil {
		return model.DocumentAllowanceCharge{}, err
	}
	doc := model.DocumentAllowanceCharge{
		AllowanceCharge: ac,
		TaxCategory:     codes.TaxCategoryCode(category),
	}
	if doc.TaxRate, err = optionalChildDecimal(tax, "RateApplicablePercent"); err != nil {
		return model.DocumentAllowanceCharge{}, err
	}
	return doc, nil
}

func parseDelivery(el *etree.Element, inv *model.Invoice) error {
	if event := child(el, NSRAM, "ActualDeliverySupplyChainEvent"); event != nil {
		date, err := requiredChildDate(event, NSRAM, "OccurrenceDateTime")
		if err != nil {
			return err
		}
		inv.DeliveryDate = &date
	}
	var err error
	if inv.DespatchAdviceID, err = referencedDocumentID(el, "DespatchAdviceReferencedDocument"); err != nil {
		return err
	}
	if inv.ReceivingAdviceID, err = referencedDocumentID(el, "ReceivingAdviceReferencedDocument"); err != nil {
		return err
	}
	return nil
}

func parseSettlement(el *etree.Element, inv *model.Invoice) error {
	inv.SEPAReference = childTextOptional(el, NSRAM, "CreditorReferenceID")
	inv.PaymentReference = childTextOptional(el, NSRAM, "PaymentReference")
	inv.TaxCurrencyCode = childTextOptional(el, NSRAM, "TaxCurrencyCode")

	for _, means := range children(el, NSRAM, "SpecifiedTradeSettlementPaymentMeans") {
		pm, err := parsePaymentMeans(means)
		if err != nil {
			return err
		}
		inv.PaymentMeans = append(inv.PaymentMeans, pm)
	}
	for _, taxEl := range children(el, NSRAM, "ApplicableTradeTax") {
		tax, err := parseTax(taxEl, inv.CurrencyCode)
		if err != nil {
			return err
		}
		inv.Tax = append(inv.Tax, tax)
	}
	if period := child(el, NSRAM, "BillingSpecifiedPeriod"); period != nil {
		start, err := requiredChildDate(period, NSRAM, "StartDateTime")
		if err != nil {
			return err
		}
		end, err := requiredChildDate(period, NSRAM, "EndDateTime")
		if err != nil {
			return err
		}
		p, err := model.NewPeriod(start, end)
		if err != nil {
			return model.NewParseError("ram:BillingSpecifiedPeriod", "invalid period", err)
		}
		inv.BillingPeriod = &p
	}
	for _, acEl := range children(el, NSRAM, "SpecifiedTradeAllowanceCharge") {
		ac, err := parseDocAllowanceCharge(acEl, inv.CurrencyCode)
		if err != nil {
			return err
		}
		inv.AllowanceCharges = append(inv.AllowanceCharges, ac)
	}
	if terms := child(el, NSRAM, "SpecifiedTradePaymentTerms"); terms != nil {
		parsed, err := parsePaymentTerms(terms)
		if err != nil {
			return err
		}
		inv.PaymentTerms = parsed
	}
	for _, ref := range children(el, NSRAM, "InvoiceReferencedDocument") {
		preceding, err := parsePrecedingInvoice(ref)
		if err != nil {
			return err
		}
		inv.PrecedingInvoices = append(inv.PrecedingInvoices, preceding)
	}

	summation, err := requiredChild(el, NSRAM, "SpecifiedTradeSettlementHeaderMonetarySummation")
	if err != nil {
		return err
	}
	return parseSummation(summation, inv)
}

func parsePaymentMeans(el *etree.Element) (model.PaymentMeans, error) {
	var pm model.PaymentMeans
	typeCode, err := requiredChildText(el, NSRAM, "TypeCode")
	if err != nil {
		return model.PaymentMeans{}, err
	}
	pm.TypeCode = codes.PaymentMeansCode(typeCode)
	pm.Information = childTextOptional(el, NSRAM, "Information")
	if payer := child(el, NSRAM, "PayerPartyDebtorFinancialAccount"); payer != nil {
		pm.PayerIBAN = childTextOptional(payer, NSRAM, "IBANID")
	}
	if payee := child(el, NSRAM, "PayeePartyCreditorFinancialAccount"); payee != nil {
		pm.PayeeAccount = &model.BankAccount{
			IBAN:   childTextOptional(payee, NSRAM, "IBANID"),
			Name:   childTextOptional(payee, NSRAM, "AccountName"),
			BankID: childTextOptional(payee, NSRAM, "ProprietaryID"),
		}
	}
	if institution := child(el, NSRAM, "PayeeSpecifiedCreditorFinancialInstitution"); institution != nil {
		pm.PayeeBIC = childTextOptional(institution, NSRAM, "BICID")
	}
	return pm, nil
}

func parseTax(el *etree.Element, currency string) (model.Tax, error) {
	var tax model.Tax
	var err error
	if tax.CalculatedAmount, err = requiredChildAmount(el, "CalculatedAmount", currency); err != nil {
		return model.Tax{}, err
	}
	typeCode, err := requiredChildText(el, NSRAM, "TypeCode")
	if err != nil {
		return model.Tax{}, err
	}
	if typeCode != "VAT" {
		return model.Tax{}, model.NewParseError("ram:ApplicableTradeTax",
			"unsupported tax type "+typeCode, nil)
	}
	tax.ExemptionReason = childTextOptional(el, NSRAM, "ExemptionReason")
	if tax.BasisAmount, err = requiredChildAmount(el, "BasisAmount", currency); err != nil {
		return model.Tax{}, err
	}
	category, err := requiredChildText(el, NSRAM, "CategoryCode")
	if err != nil {
		return model.Tax{}, err
	}
	tax.CategoryCode = codes.TaxCategoryCode(category)
	tax.ExemptionReasonCode = childTextOptional(el, NSRAM, "ExemptionReasonCode")
	if tax.RatePercent, err = requiredChildDecimal(el, "RateApplicablePercent"); err != nil {
		return model.Tax{}, err
	}
	return tax, nil
}

func parsePaymentTerms(el *etree.Element) (*model.PaymentTerms, error) {
	terms := &model.PaymentTerms{
		Description:          childTextOptional(el, NSRAM, "Description"),
		DirectDebitMandateID: childTextOptional(el, NSRAM, "DirectDebitMandateID"),
	}
	if due := child(el, NSRAM, "DueDateDateTime"); due != nil {
		date, err := parseDate(due)
		if err != nil {
			return nil, err
		}
		terms.DueDate = &date
	}
	return terms, nil
}

func parsePrecedingInvoice(el *etree.Element) (model.PrecedingInvoice, error) {
	number, err := requiredChildText(el, NSRAM, "IssuerAssignedID")
	if err != nil {
		return model.PrecedingInvoice{}, err
	}
	preceding := model.PrecedingInvoice{Number: number}
	if issued := child(el, NSRAM, "FormattedIssueDateTime"); issued != nil {
		date, err := parseDate(issued)
		if err != nil {
			return model.PrecedingInvoice{}, err
		}
		preceding.IssueDate = &date
	}
	return preceding, nil
}

func parseSummation(el *etree.Element, inv *model.Invoice) error {
	var err error
	if inv.LineTotal, err = optionalChildAmount(el, "LineTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.ChargeTotal, err = optionalChildAmount(el, "ChargeTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.AllowanceTotal, err = optionalChildAmount(el, "AllowanceTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.TaxBasisTotal, err = requiredChildAmount(el, "TaxBasisTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.TaxTotal, err = requiredChildAmount(el, "TaxTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.RoundingAmount, err = optionalChildAmount(el, "RoundingAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.GrandTotal, err = requiredChildAmount(el, "GrandTotalAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.PrepaidAmount, err = optionalChildAmount(el, "TotalPrepaidAmount", inv.CurrencyCode); err != nil {
		return err
	}
	if inv.DuePayable, err = requiredChildAmount(el, "DuePayableAmount", inv.CurrencyCode); err != nil {
		return err
	}
	return nil
}

func parseNote(el *etree.Element) (model.Note, error) {
	content, err := requiredChildText(el, NSRAM, "Content")
	if err != nil {
		return model.Note{}, err
	}
	subject := codes.TextSubjectCode(childTextOptional(el, NSRAM, "SubjectCode"))
	note, err := model.NewNote(content, subject)
	if err != nil {
		return model.Note{}, model.NewParseError("ram:IncludedNote", "invalid note", err)
	}
	return note, nil
}
