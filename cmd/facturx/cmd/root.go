package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	outputPath   string
)

var rootCmd = &cobra.Command{
	Use:   "facturx",
	Short: "Generate, parse and validate Factur-X electronic invoices",
	Long: `facturx is a CLI tool for working with Factur-X/ZUGFeRD electronic
invoices in the Cross Industry Invoice (CII) XML syntax.

Supports:
  - Profiles: MINIMUM, BASIC WL, BASIC, EN 16931
  - Deterministic XML generation from JSON invoice data
  - Parsing and EN 16931 business-rule validation
  - Embedding XML into PDF files and reading it back

Examples:
  # Generate Factur-X XML from a JSON invoice
  facturx generate invoice.json -o invoice.xml

  # Parse Factur-X XML into JSON
  facturx parse invoice.xml

  # Validate one or more invoices
  facturx validate *.xml

  # Attach the XML to a PDF
  facturx attach invoice.json letter.pdf -o invoice.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Write output to file instead of stdout")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// writeOutput writes data to the --output file, or stdout when unset.
func writeOutput(data []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
