package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/slideproj/internal/glob"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <pattern> <text>...",
		Short: "Test an include pattern against paths",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := glob.Compile(args[0])
			out := cmd.OutOrStdout()
			for _, text := range args[1:] {
				verdict := "no match"
				if p.Match(text) {
					verdict = "match"
				}
				fmt.Fprintf(out, "%-8s  %s\n", verdict, text)
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
