package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/pkg/facturx"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about invoice files",
	Long: `Display summary information about Factur-X invoice files.

Shows:
  - Declared profile and guideline URN
  - Document number, type and issue date
  - Parties and totals
  - Business-rule finding counts

Examples:
  facturx info invoice.xml
  facturx info *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	for _, file := range args {
		printFileInfo(file)
		fmt.Println()
	}
	return nil
}

func printFileInfo(path string) {
	fmt.Printf("File: %s\n", path)

	stat, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}
	fmt.Printf("  Size: %d bytes\n", stat.Size())

	invoice, err := loadInvoice(path)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Profile: %s\n", invoice.Profile)
	fmt.Printf("  Guideline: %s\n", invoice.Profile.URN())
	fmt.Printf("  Number: %s\n", invoice.Number)
	fmt.Printf("  Type: %s\n", invoice.TypeCode)
	fmt.Printf("  Issued: %s\n", invoice.IssueDate.ISO())
	fmt.Printf("  Seller: %s\n", invoice.Seller.Name)
	fmt.Printf("  Buyer: %s\n", invoice.Buyer.Name)
	fmt.Printf("  Currency: %s\n", invoice.CurrencyCode)
	fmt.Printf("  Grand total: %s\n", invoice.GrandTotal)
	if len(invoice.Lines) > 0 {
		fmt.Printf("  Lines: %d\n", len(invoice.Lines))
	}

	violations := facturx.Validate(invoice)
	errs, warns := 0, 0
	for _, v := range violations {
		if v.Severity == facturx.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	fmt.Printf("  Findings: %d error(s), %d warning(s)\n", errs, warns)
}
