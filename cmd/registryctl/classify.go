package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/checkpoint-logbook/internal/registry"
)

// classifyCmd shows how the field classifier sees raw values
var classifyCmd = &cobra.Command{
	Use:   "classify <value>...",
	Short: "Show predicate results and normalized forms for raw values",
	Long: `Run the phone, ID and plate predicates over raw cell values and show the
normalized phone and formatted plate for each.

Examples:
  registryctl classify 972521234567 12345678 SUNJ4410`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tPHONE\tID\tPLATE\tNORMALIZED PHONE\tFORMATTED PLATE")
	for _, v := range args {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v,
			yesNo(registry.LooksLikePhone(v)),
			yesNo(registry.LooksLikeID(v)),
			yesNo(registry.LooksLikePlate(v)),
			registry.NormalizePhone(v),
			registry.FormatPlate(v),
		)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
