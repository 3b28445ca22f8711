package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/slideproj/internal/cleanup"
	"github.com/oukeidos/slideproj/internal/version"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:   "slideproj [dirs...]",
		Short: "Full-window image slideshow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, args, &opts)
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	addCommonFlags(cmd.PersistentFlags(), &opts)
	addViewerFlags(cmd.Flags(), &opts)

	cmd.AddCommand(
		newListCmd(&opts),
		newMatchCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}
