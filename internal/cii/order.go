package cii

import (
	"sort"

	"github.com/beevik/etree"
)

// childOrder fixes the child sequence of every aggregate element the codec
// emits, keyed by the aggregate's qualified name. The sequences follow the
// CII D16B schema. Serialization sorts children by this table, so the output
// order is a property of the data here rather than of emission code paths.
var childOrder = map[string][]string{
	"rsm:CrossIndustryInvoice": {
		"rsm:ExchangedDocumentContext",
		"rsm:ExchangedDocument",
		"rsm:SupplyChainTradeTransaction",
	},
	"rsm:ExchangedDocumentContext": {
		"ram:BusinessProcessSpecifiedDocumentContextParameter",
		"ram:GuidelineSpecifiedDocumentContextParameter",
	},
	"rsm:ExchangedDocument": {
		"ram:ID",
		"ram:TypeCode",
		"ram:IssueDateTime",
		"ram:IncludedNote",
	},
	"rsm:SupplyChainTradeTransaction": {
		"ram:IncludedSupplyChainTradeLineItem",
		"ram:ApplicableHeaderTradeAgreement",
		"ram:ApplicableHeaderTradeDelivery",
		"ram:ApplicableHeaderTradeSettlement",
	},
	"ram:IncludedSupplyChainTradeLineItem": {
		"ram:AssociatedDocumentLineDocument",
		"ram:SpecifiedTradeProduct",
		"ram:SpecifiedLineTradeAgreement",
		"ram:SpecifiedLineTradeDelivery",
		"ram:SpecifiedLineTradeSettlement",
	},
	"ram:AssociatedDocumentLineDocument": {
		"ram:LineID",
		"ram:IncludedNote",
	},
	"ram:SpecifiedTradeProduct": {
		"ram:GlobalID",
		"ram:SellerAssignedID",
		"ram:BuyerAssignedID",
		"ram:Name",
		"ram:Description",
	},
	"ram:SpecifiedLineTradeAgreement": {
		"ram:GrossPriceProductTradePrice",
		"ram:NetPriceProductTradePrice",
	},
	"ram:GrossPriceProductTradePrice": {
		"ram:ChargeAmount",
		"ram:BasisQuantity",
		"ram:AppliedTradeAllowanceCharge",
	},
	"ram:NetPriceProductTradePrice": {
		"ram:ChargeAmount",
		"ram:BasisQuantity",
	},
	"ram:SpecifiedLineTradeDelivery": {
		"ram:BilledQuantity",
	},
	"ram:SpecifiedLineTradeSettlement": {
		"ram:ApplicableTradeTax",
		"ram:SpecifiedTradeAllowanceCharge",
		"ram:SpecifiedTradeSettlementLineMonetarySummation",
	},
	"ram:SpecifiedTradeSettlementLineMonetarySummation": {
		"ram:LineTotalAmount",
	},
	"ram:ApplicableHeaderTradeAgreement": {
		"ram:BuyerReference",
		"ram:SellerTradeParty",
		"ram:BuyerTradeParty",
		"ram:SellerOrderReferencedDocument",
		"ram:BuyerOrderReferencedDocument",
		"ram:ContractReferencedDocument",
	},
	"ram:SellerTradeParty":  tradePartyOrder,
	"ram:BuyerTradeParty":   tradePartyOrder,
	"ram:SpecifiedLegalOrganization": {
		"ram:ID",
		"ram:TradingBusinessName",
	},
	"ram:PostalTradeAddress": {
		"ram:PostcodeCode",
		"ram:LineOne",
		"ram:LineTwo",
		"ram:LineThree",
		"ram:CityName",
		"ram:CountryID",
		"ram:CountrySubDivisionName",
	},
	"ram:ApplicableHeaderTradeDelivery": {
		"ram:ActualDeliverySupplyChainEvent",
		"ram:DespatchAdviceReferencedDocument",
		"ram:ReceivingAdviceReferencedDocument",
	},
	"ram:ActualDeliverySupplyChainEvent": {
		"ram:OccurrenceDateTime",
	},
	"ram:ApplicableHeaderTradeSettlement": {
		"ram:CreditorReferenceID",
		"ram:PaymentReference",
		"ram:TaxCurrencyCode",
		"ram:InvoiceCurrencyCode",
		"ram:SpecifiedTradeSettlementPaymentMeans",
		"ram:ApplicableTradeTax",
		"ram:BillingSpecifiedPeriod",
		"ram:SpecifiedTradeAllowanceCharge",
		"ram:SpecifiedTradePaymentTerms",
		"ram:SpecifiedTradeSettlementHeaderMonetarySummation",
		"ram:InvoiceReferencedDocument",
	},
	"ram:SpecifiedTradeSettlementPaymentMeans": {
		"ram:TypeCode",
		"ram:Information",
		"ram:PayerPartyDebtorFinancialAccount",
		"ram:PayeePartyCreditorFinancialAccount",
		"ram:PayeeSpecifiedCreditorFinancialInstitution",
	},
	"ram:PayerPartyDebtorFinancialAccount": {
		"ram:IBANID",
	},
	"ram:PayeePartyCreditorFinancialAccount": {
		"ram:IBANID",
		"ram:AccountName",
		"ram:ProprietaryID",
	},
	"ram:PayeeSpecifiedCreditorFinancialInstitution": {
		"ram:BICID",
	},
	"ram:ApplicableTradeTax": {
		"ram:CalculatedAmount",
		"ram:TypeCode",
		"ram:ExemptionReason",
		"ram:BasisAmount",
		"ram:CategoryCode",
		"ram:ExemptionReasonCode",
		"ram:RateApplicablePercent",
	},
	"ram:BillingSpecifiedPeriod": {
		"ram:StartDateTime",
		"ram:EndDateTime",
	},
	"ram:SpecifiedTradePaymentTerms": {
		"ram:Description",
		"ram:DueDateDateTime",
		"ram:DirectDebitMandateID",
	},
	"ram:SpecifiedTradeSettlementHeaderMonetarySummation": {
		"ram:LineTotalAmount",
		"ram:ChargeTotalAmount",
		"ram:AllowanceTotalAmount",
		"ram:TaxBasisTotalAmount",
		"ram:TaxTotalAmount",
		"ram:RoundingAmount",
		"ram:GrandTotalAmount",
		"ram:TotalPrepaidAmount",
		"ram:DuePayableAmount",
	},
	"ram:InvoiceReferencedDocument": {
		"ram:IssuerAssignedID",
		"ram:FormattedIssueDateTime",
	},
	"ram:IncludedNote": {
		"ram:Content",
		"ram:SubjectCode",
	},
	"ram:SpecifiedTradeAllowanceCharge": allowanceChargeOrder,
	"ram:AppliedTradeAllowanceCharge":   allowanceChargeOrder,
	"ram:ChargeIndicator": {
		"udt:Indicator",
	},
	"ram:CategoryTradeTax": {
		"ram:TypeCode",
		"ram:CategoryCode",
		"ram:RateApplicablePercent",
	},
	"ram:DefinedTradeContact": {
		"ram:PersonName",
		"ram:DepartmentName",
		"ram:TelephoneUniversalCommunication",
		"ram:EmailURIUniversalCommunication",
	},
	"ram:TelephoneUniversalCommunication": {
		"ram:CompleteNumber",
	},
}

var tradePartyOrder = []string{
	"ram:ID",
	"ram:GlobalID",
	"ram:Name",
	"ram:SpecifiedLegalOrganization",
	"ram:DefinedTradeContact",
	"ram:PostalTradeAddress",
	"ram:URIUniversalCommunication",
	"ram:SpecifiedTaxRegistration",
}

// allowanceChargeOrder serves both the document and line level groups; the
// trailing CategoryTradeTax appears only at the document level.
var allowanceChargeOrder = []string{
	"ram:ChargeIndicator",
	"ram:CalculationPercent",
	"ram:BasisAmount",
	"ram:ActualAmount",
	"ram:ReasonCode",
	"ram:Reason",
	"ram:CategoryTradeTax",
}

// reorder recursively applies the childOrder tables. Siblings with the same
// name, and names absent from a table, keep their relative order.
func reorder(el *etree.Element) {
	for _, child := range el.ChildElements() {
		reorder(child)
	}
	order, ok := childOrder[el.FullTag()]
	if !ok {
		return
	}
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	children := el.ChildElements()
	sort.SliceStable(children, func(i, j int) bool {
		ri, iok := rank[children[i].FullTag()]
		rj, jok := rank[children[j].FullTag()]
		if iok != jok {
			return iok // known names before unknown ones
		}
		return ri < rj
	})
	for _, child := range children {
		el.RemoveChild(child)
	}
	for _, child := range children {
		el.AddChild(child)
	}
}
