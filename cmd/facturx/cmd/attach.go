package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var attachCmd = &cobra.Command{
	Use:   "attach <invoice.json|invoice.xml> <input.pdf>",
	Short: "Attach Factur-X XML to a PDF",
	Long: `Attach a Factur-X invoice to a PDF file as the factur-x.xml embedded
file. A JSON invoice is validated and serialized first; an XML invoice is
parsed and re-validated before attaching.

Examples:
  facturx attach invoice.json letter.pdf -o invoice.pdf
  facturx attach invoice.xml letter.pdf -o invoice.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runAttach,
}

var extractCmd = &cobra.Command{
	Use:   "extract <invoice.pdf>",
	Short: "Extract the Factur-X XML attached to a PDF",
	Long: `Extract the Factur-X XML attachment from a PDF and print it.

Examples:
  facturx extract invoice.pdf
  facturx extract invoice.pdf -o invoice.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(extractCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	invoicePath, pdfPath := args[0], args[1]
	if outputPath == "" {
		return fmt.Errorf("attach requires --output")
	}

	var invoice *facturx.Invoice
	var err error
	if strings.EqualFold(filepath.Ext(invoicePath), ".json") {
		invoice, err = readInvoiceJSON(invoicePath)
	} else {
		var data []byte
		data, err = os.ReadFile(invoicePath)
		if err == nil {
			invoice, err = facturx.Parse(data)
		}
	}
	if err != nil {
		return err
	}

	log.Debug().Str("invoice", invoicePath).Str("pdf", pdfPath).
		Str("out", outputPath).Msg("attaching invoice")
	return facturx.EmbedInPDF(invoice, pdfPath, outputPath)
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Parse to reject PDFs whose attachment is not a valid invoice, but
	// output the attachment bytes untouched.
	if _, err := facturx.ParsePDF(args[0]); err != nil {
		return err
	}
	xml, err := facturx.ExtractXMLFromPDF(args[0])
	if err != nil {
		return err
	}
	return writeOutput(xml)
}
