package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var inferProfile bool

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice files against the EN 16931 business rules",
	Long: `Validate one or more Factur-X invoices (XML or JSON form).

Checks performed:
  - Mandatory fields for the declared profile
  - Fields not admitted by the declared profile
  - Conditional rules (SEPA accounts, VAT exemption reasons)
  - Arithmetic consistency of totals, taxes and lines

Examples:
  facturx validate invoice.xml
  facturx validate *.xml --infer -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&inferProfile, "infer", false,
		"Also report the narrowest profile that accepts each invoice")
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File            string              `json:"file"`
	Valid           bool                `json:"valid"`
	Profile         string              `json:"profile,omitempty"`
	InferredProfile string              `json:"inferred_profile,omitempty"`
	Errors          []facturx.Violation `json:"errors,omitempty"`
	Warnings        []facturx.Violation `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	results := make([]*ValidationResult, 0, len(args))
	allValid := true

	for _, file := range args {
		result := validateFile(file)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		printValidationTable(results)
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func printValidationTable(results []*ValidationResult) {
	for _, r := range results {
		if r.Valid {
			fmt.Printf("✓ %s: VALID (%s)\n", r.File, r.Profile)
		} else {
			fmt.Printf("✗ %s: INVALID\n", r.File)
			for _, v := range r.Errors {
				fmt.Printf("  - [%s] %s\n", v.Code, v.Message)
			}
		}
		for _, v := range r.Warnings {
			fmt.Printf("  ⚠ [%s] %s\n", v.Code, v.Message)
		}
		if r.InferredProfile != "" {
			fmt.Printf("  narrowest accepting profile: %s\n", r.InferredProfile)
		}
	}
}

func validateFile(path string) *ValidationResult {
	result := &ValidationResult{File: path, Valid: true}

	invoice, err := loadInvoice(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, facturx.Violation{
			Code:     "FILE",
			Message:  err.Error(),
			Severity: facturx.SeverityError,
		})
		return result
	}
	result.Profile = invoice.Profile.String()

	violations := facturx.Validate(invoice)
	for _, v := range violations {
		if v.Severity == facturx.SeverityError {
			result.Errors = append(result.Errors, v)
		} else {
			result.Warnings = append(result.Warnings, v)
		}
	}
	result.Valid = len(result.Errors) == 0

	if inferProfile {
		if p, ok := facturx.InferProfile(invoice); ok {
			result.InferredProfile = p.String()
		}
	}
	return result
}

// loadInvoice reads an invoice in XML, JSON or PDF form, without applying
// the business rules; those are this command's output, not a gate.
func loadInvoice(path string) (*facturx.Invoice, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		xml, err := facturx.ExtractXMLFromPDF(path)
		if err != nil {
			return nil, err
		}
		return facturx.ParseStructural(xml)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var invoice facturx.Invoice
		if err := json.Unmarshal(data, &invoice); err != nil {
			return nil, err
		}
		return &invoice, nil
	}
	return facturx.ParseStructural(data)
}
