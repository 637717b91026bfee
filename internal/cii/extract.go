package cii

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// The finders below match children by namespace URI and local name so that
// documents using non-conventional prefixes decode the same as our own
// output.

func child(parent *etree.Element, ns, local string) *etree.Element {
	for _, el := range parent.ChildElements() {
		if el.Tag == local && el.NamespaceURI() == ns {
			return el
		}
	}
	return nil
}

func children(parent *etree.Element, ns, local string) []*etree.Element {
	var found []*etree.Element
	for _, el := range parent.ChildElements() {
		if el.Tag == local && el.NamespaceURI() == ns {
			found = append(found, el)
		}
	}
	return found
}

func requiredChild(parent *etree.Element, ns, local string) (*etree.Element, error) {
	el := child(parent, ns, local)
	if el == nil {
		return nil, model.NewParseError(parent.FullTag(),
			"required element "+local+" not found", nil)
	}
	return el, nil
}

func requiredChildText(parent *etree.Element, ns, local string) (string, error) {
	el, err := requiredChild(parent, ns, local)
	if err != nil {
		return "", err
	}
	if el.Text() == "" {
		return "", model.NewParseError(el.FullTag(), "element has no text", nil)
	}
	return el.Text(), nil
}

func childTextOptional(parent *etree.Element, ns, local string) string {
	el := child(parent, ns, local)
	if el == nil {
		return ""
	}
	return el.Text()
}

// parseDate reads the udt:DateTimeString child, requiring the UNTDID 2379
// qualifier 102 and the CCYYMMDD text it implies.
func parseDate(el *etree.Element) (model.Date, error) {
	ds := child(el, NSUDT, "DateTimeString")
	if ds == nil {
		return model.Date{}, model.NewParseError(el.FullTag(),
			"required element DateTimeString not found", nil)
	}
	if format := ds.SelectAttrValue("format", ""); format != "102" {
		return model.Date{}, model.NewParseError(el.FullTag(),
			"unsupported date format qualifier "+format, nil)
	}
	date, err := model.ParseDate102(ds.Text())
	if err != nil {
		return model.Date{}, model.NewParseError(el.FullTag(), "invalid date", err)
	}
	return date, nil
}

func requiredChildDate(parent *etree.Element, ns, local string) (model.Date, error) {
	el, err := requiredChild(parent, ns, local)
	if err != nil {
		return model.Date{}, err
	}
	return parseDate(el)
}

func requiredChildDecimal(parent *etree.Element, local string) (decimal.Decimal, error) {
	text, err := requiredChildText(parent, NSRAM, local)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, model.NewParseError("ram:"+local, "not a decimal", err)
	}
	return d, nil
}

func optionalChildDecimal(parent *etree.Element, local string) (*decimal.Decimal, error) {
	el := child(parent, NSRAM, local)
	if el == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(el.Text())
	if err != nil {
		return nil, model.NewParseError("ram:"+local, "not a decimal", err)
	}
	return &d, nil
}

// parseAmount reads a monetary amount. A missing currencyID attribute falls
// back to the invoice currency.
func parseAmount(el *etree.Element, defaultCurrency string) (money.Money, error) {
	currency := el.SelectAttrValue("currencyID", defaultCurrency)
	if el.Text() == "" {
		return money.Money{}, model.NewParseError(el.FullTag(), "amount has no text", nil)
	}
	d, err := decimal.NewFromString(el.Text())
	if err != nil {
		return money.Money{}, model.NewParseError(el.FullTag(), "not a decimal amount", err)
	}
	if !codes.ValidCurrency(currency) {
		return money.Money{}, model.NewParseError(el.FullTag(),
			"not an ISO 4217 currency code: "+currency, nil)
	}
	return money.FromDecimal(d, currency), nil
}

func requiredChildAmount(parent *etree.Element, local, defaultCurrency string) (money.Money, error) {
	el, err := requiredChild(parent, NSRAM, local)
	if err != nil {
		return money.Money{}, err
	}
	return parseAmount(el, defaultCurrency)
}

func optionalChildAmount(parent *etree.Element, local, defaultCurrency string) (*money.Money, error) {
	el := child(parent, NSRAM, local)
	if el == nil {
		return nil, nil
	}
	m, err := parseAmount(el, defaultCurrency)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func parseQuantity(el *etree.Element) (model.Quantity, error) {
	unit := el.SelectAttrValue("unitCode", "")
	if unit == "" {
		return model.Quantity{}, model.NewParseError(el.FullTag(),
			"quantity has no unitCode", nil)
	}
	q, err := model.NewQuantity(el.Text(), codes.UnitCode(unit))
	if err != nil {
		return model.Quantity{}, model.NewParseError(el.FullTag(), "invalid quantity", err)
	}
	return q, nil
}

func parseSchemeID(el *etree.Element) model.SchemeID {
	return model.SchemeID{
		Value:  el.Text(),
		Scheme: el.SelectAttrValue("schemeID", ""),
	}
}

func referencedDocumentID(parent *etree.Element, local string) (string, error) {
	el := child(parent, NSRAM, local)
	if el == nil {
		return "", nil
	}
	return requiredChildText(el, NSRAM, "IssuerAssignedID")
}
