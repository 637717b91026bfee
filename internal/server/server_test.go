package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/server"
)

func testHandler() http.Handler {
	return server.NewServer(&server.Config{Address: ":0"}).Handler()
}

func validInvoice() *model.Invoice {
	return &model.Invoice{
		Profile:   model.ProfileMinimum,
		Number:    "2021-123",
		TypeCode:  codes.DocTypeInvoice,
		IssueDate: model.MustDate(2021, time.April, 13),
		Seller: model.Party{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:         model.Party{Name: "Kunde AG"},
		CurrencyCode:  "EUR",
		TaxBasisTotal: money.MustNew("100.00", "EUR"),
		TaxTotal:      money.MustNew("19.00", "EUR"),
		GrandTotal:    money.MustNew("119.00", "EUR"),
		DuePayable:    money.MustNew("119.00", "EUR"),
	}
}

func post(t *testing.T, handler http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGenerate(t *testing.T) {
	payload, err := json.Marshal(validInvoice())
	require.NoError(t, err)

	rec := post(t, testHandler(), "/api/v1/generate", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "rsm:CrossIndustryInvoice")
	assert.Contains(t, rec.Body.String(), "urn:factur-x.eu:1p0:minimum")
}

func TestGenerate_EmptyBody(t *testing.T) {
	rec := post(t, testHandler(), "/api/v1/generate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_InvalidJSON(t *testing.T) {
	rec := post(t, testHandler(), "/api/v1/generate", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_RuleBreach(t *testing.T) {
	inv := validInvoice()
	inv.GrandTotal = money.MustNew("999.00", "EUR")
	payload, err := json.Marshal(inv)
	require.NoError(t, err)

	rec := post(t, testHandler(), "/api/v1/generate", payload)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.NotEmpty(t, resp.Errors)
	got := make([]string, 0, len(resp.Errors))
	for _, v := range resp.Errors {
		got = append(got, v.Code)
	}
	assert.Contains(t, got, "BT-112")
}

func TestParse(t *testing.T) {
	xml, err := cii.Generate(validInvoice())
	require.NoError(t, err)

	rec := post(t, testHandler(), "/api/v1/parse", xml)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MINIMUM", resp.Profile)
	require.NotNil(t, resp.Invoice)
	assert.Equal(t, "2021-123", resp.Invoice.Number)
}

func TestParse_MalformedXML(t *testing.T) {
	rec := post(t, testHandler(), "/api/v1/parse", []byte("<rsm:CrossIndustryInvoice"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate_XMLWithFindings(t *testing.T) {
	xml, err := cii.Generate(validInvoice())
	require.NoError(t, err)
	broken := bytes.Replace(xml,
		[]byte("<ram:GrandTotalAmount>119.00</ram:GrandTotalAmount>"),
		[]byte("<ram:GrandTotalAmount>999.00</ram:GrandTotalAmount>"), 1)
	require.NotEqual(t, xml, broken)

	rec := post(t, testHandler(), "/api/v1/validate", broken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Errors)
	assert.Equal(t, "MINIMUM", resp.Profile)
}

func TestValidate_JSONInvoice(t *testing.T) {
	payload, err := json.Marshal(validInvoice())
	require.NoError(t, err)

	rec := post(t, testHandler(), "/api/v1/validate", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
}

func TestRender(t *testing.T) {
	xml, err := cii.Generate(validInvoice())
	require.NoError(t, err)

	rec := post(t, testHandler(), "/api/v1/render", xml)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invoice 2021-123")
	assert.Contains(t, rec.Body.String(), "Lieferant GmbH")
}
