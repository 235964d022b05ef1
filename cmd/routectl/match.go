package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match METHOD PATH",
		Short: "Resolve a request to its action",
		Args:  cobra.ExactArgs(2),
		RunE:  runMatch,
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()

	action, params, ok := a.manager.Match(args[0], args[1])
	if !ok {
		fmt.Fprintf(out, "no match for %s %s\n", args[0], args[1])
		return nil
	}

	fmt.Fprintf(out, "action: %s\n", action)
	for _, name := range params.Names() {
		fmt.Fprintf(out, "param %s: %s\n", name, params[name])
	}

	return nil
}
