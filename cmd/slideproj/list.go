package main

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/slideproj/internal/files"
	"github.com/oukeidos/slideproj/internal/imageloader"
	"github.com/oukeidos/slideproj/internal/slideshow"
)

type listOptions struct {
	long   bool
	output string
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list [dirs...]",
		Short: "Print the slides in the order they would be shown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, root, &opts)
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "Also print index, group, timestamp and caption")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the list to a file instead of stdout (never overwrites)")
	return cmd
}

func runList(cmd *cobra.Command, args []string, root *rootOptions, opts *listOptions) error {
	cfg, err := loadSettings(cmd.Flags(), root, args)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	list, repo, err := collectSlides(ctx, cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeList(&buf, list, repo, opts.long)

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	written, err := files.WriteNew(opts.output, buf.Bytes(), 0o600)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d slides to %s\n", list.Len(), written)
	return nil
}

func writeList(w io.Writer, list *slideshow.FileList, repo *imageloader.MetadataRepository, long bool) {
	for i, f := range list.Files() {
		if !long {
			fmt.Fprintln(w, f.Path())
			continue
		}
		md := repo.Metadata(f)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, md.Group, md.Timestamp.Format(time.RFC3339), md.Caption, f.Path())
	}
}
