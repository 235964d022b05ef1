package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List routes in evaluation order",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMETHOD\tURI\tACTION")
	for _, r := range a.manager.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Method, r.URI, r.Action)
	}

	return tw.Flush()
}
