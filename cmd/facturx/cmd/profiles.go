package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/model"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the supported Factur-X profiles",
	Long: `List the supported Factur-X conformance profiles in increasing
strictness, with the guideline URN each one declares on the wire.

The profile of a document determines which fields must, may, and must not
appear. Every profile's mandatory field set is a superset of all lower
profiles'.`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tGUIDELINE URN")
	fmt.Fprintln(w, "-------\t-------------")
	for _, p := range model.Profiles {
		fmt.Fprintf(w, "%s\t%s\n", p, p.URN())
	}
	return w.Flush()
}
