// Package cii encodes and decodes invoices in the UN/CEFACT
// Cross Industry Invoice (CII) XML syntax as profiled by Factur-X.
//
// Serialization is deterministic: the same instance always yields the same
// bytes. Parsing is prefix-tolerant; elements are matched by namespace URI
// and local name, never by the prefix the producer happened to choose.
package cii

// The three namespaces of a Factur-X CII document. The prefixes are the
// conventional ones and are what the serializer declares on the root.
const (
	NSCII = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NSRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NSUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)
