package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var parseCmd = &cobra.Command{
	Use:   "parse <invoice.xml|invoice.pdf>",
	Short: "Parse a Factur-X invoice into JSON",
	Long: `Parse a Factur-X CII XML document, or a PDF carrying one as an
attachment, and print the invoice data as JSON.

Parsing validates the document against the business rules of its declared
profile; a document that breaches them is rejected.

Examples:
  facturx parse invoice.xml
  facturx parse invoice.pdf -o invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	invoice, err := parseInvoiceFile(args[0])
	if err != nil {
		return err
	}
	log.Debug().Str("file", args[0]).Str("profile", invoice.Profile.String()).
		Msg("parsed invoice")

	out, err := json.MarshalIndent(invoice, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(append(out, '\n'))
}

// parseInvoiceFile parses XML directly and goes through attachment
// extraction for PDFs.
func parseInvoiceFile(path string) (*facturx.Invoice, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		invoice, err := facturx.ParsePDF(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return invoice, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	invoice, err := facturx.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return invoice, nil
}
