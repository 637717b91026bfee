package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var generateCmd = &cobra.Command{
	Use:   "generate <invoice.json>",
	Short: "Generate Factur-X XML from a JSON invoice",
	Long: `Generate a Factur-X CII XML document from invoice data in JSON form.

The invoice is validated against the business rules of its declared profile
first; any Error-severity finding aborts generation. Output is
deterministic: the same input always produces the same bytes.

Examples:
  facturx generate invoice.json
  facturx generate invoice.json -o invoice.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	invoice, err := readInvoiceJSON(args[0])
	if err != nil {
		return err
	}
	log.Debug().Str("file", args[0]).Str("profile", invoice.Profile.String()).
		Msg("generating invoice")

	xml, err := facturx.Generate(invoice)
	if err != nil {
		return fmt.Errorf("generating %s: %w", args[0], err)
	}
	return writeOutput(xml)
}

func readInvoiceJSON(path string) (*facturx.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var invoice facturx.Invoice
	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &invoice, nil
}
