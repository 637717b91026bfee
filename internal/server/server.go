// Package server exposes the invoice codec over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/render"
	"github.com/rezonia/facturx/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/parse", s.handleParse)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/render", s.handleRender)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGenerate takes a JSON invoice and returns Factur-X XML.
func (s *Server) handleGenerate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	var invoice model.Invoice
	if err := json.Unmarshal(body, &invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice JSON", "details": err.Error()})
		return
	}

	xml, err := cii.Generate(&invoice)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml", xml)
}

// handleParse takes Factur-X XML and returns the invoice as JSON, along
// with any warnings raised by validation.
func (s *Server) handleParse(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	invoice, err := cii.Parse(body)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Invoice:  invoice,
		Profile:  invoice.Profile.String(),
		Warnings: model.Warnings(validate.Validate(invoice)),
	})
}

// handleValidate takes Factur-X XML or a JSON invoice and reports every
// rule finding without rejecting the document.
func (s *Server) handleValidate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	invoice, err := decodeInvoice(body)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}

	violations := validate.Validate(invoice)
	errs := model.Errors(violations)
	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    len(errs) == 0,
		Profile:  invoice.Profile.String(),
		Errors:   errs,
		Warnings: model.Warnings(violations),
	})
}

// handleRender takes Factur-X XML and returns the plain-text summary.
func (s *Server) handleRender(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	invoice, err := cii.Parse(body)
	if err != nil {
		writeInvoiceError(c, err)
		return
	}
	c.String(http.StatusOK, render.Text(invoice))
}

// decodeInvoice accepts either CII XML or the JSON model. XML is detected
// by the leading angle bracket, optionally behind a UTF-8 BOM.
func decodeInvoice(body []byte) (*model.Invoice, error) {
	if isXML(body) {
		// Structural errors are still fatal here; rule findings are the
		// caller's to report, so only the first parse phase runs.
		return cii.ParseStructural(body)
	}
	var invoice model.Invoice
	if err := json.Unmarshal(body, &invoice); err != nil {
		return nil, model.NewParseError("", "body is neither CII XML nor invoice JSON", err)
	}
	return &invoice, nil
}

func isXML(data []byte) bool {
	if len(data) > 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '<':
			return true
		default:
			return false
		}
	}
	return false
}

func writeInvoiceError(c *gin.Context, err error) {
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "parse failed", Details: err.Error()})
		return
	}
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Errors: validationErr.Violations,
		})
		return
	}
	var constructionErr *model.ConstructionError
	if errors.As(err, &constructionErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid invoice", Details: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Details: err.Error()})
}
