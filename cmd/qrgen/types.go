package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrcard/internal/payload"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List payload types and their fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tFIELDS")
			for _, t := range payload.Types() {
				fmt.Fprintf(w, "%s\t%s\n", t, strings.Join(payload.FieldsOf(t), ", "))
			}
			return w.Flush()
		},
	}
}
