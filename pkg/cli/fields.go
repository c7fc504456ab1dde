package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mbo_model/pkg/core/assumptions"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the input catalog",
	Long: `List every model input with its description and unit, sorted by
path. Useful when writing an assumptions file from scratch.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, f := range assumptions.Catalog() {
			path := f.Path
			if !f.Editable {
				path = color.New(color.Faint).Sprint(path)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", path, f.Unit, f.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
