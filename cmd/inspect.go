package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pnp-vendors/internal/spreadsheet"
	"github.com/ginjaninja78/pnp-vendors/internal/validation"
)

// dumper prints records without pointer addresses so output is stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// inspectCmd dumps the parsed records without generating anything.
var inspectCmd = &cobra.Command{
	Use:   "inspect <spreadsheet>",
	Short: "Dump the vendor records parsed from a spreadsheet",
	Long: `Parse the spreadsheet with the same rules as the generator and dump every
vendor record. Nothing is written. Useful to check a new registry export
before regenerating the vendor table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		count := 0
		for vendor, err := range validation.UniqueIDs(spreadsheet.Parse(args[0], spreadsheetOptions(cfg))) {
			if err != nil {
				return err
			}
			dumper.Fdump(out, vendor)
			count++
		}

		fmt.Fprintf(out, "%d vendor(s)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
