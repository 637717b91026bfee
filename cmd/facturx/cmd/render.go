package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var renderCmd = &cobra.Command{
	Use:   "render <invoice.xml|invoice.pdf>",
	Short: "Render an invoice as plain text",
	Long: `Render a human-readable plain-text summary of a Factur-X invoice:
document identity, parties, references and totals.

Examples:
  facturx render invoice.xml
  facturx render invoice.pdf -o invoice.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	invoice, err := parseInvoiceFile(args[0])
	if err != nil {
		return err
	}
	return writeOutput([]byte(facturx.FormatText(invoice) + "\n"))
}
