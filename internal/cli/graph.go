package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/pipeline"
	"github.com/matzehuels/vnav/pkg/render/nodelink"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		opts     checkOpts
		output   string
		format   string
		detailed bool
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the anchor graph of a diagram",
		Long: `Draw which drawings are anchored to which.

The format is taken from --format, else from the extension of --output
(.svg, .dot or .json), else DOT is written to stdout. With --legacy,
CurvedLines anchored to missing drawings are kept and the missing anchors
are drawn in red.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if format == "" {
				format = formatFromPath(output)
			}
			if err := pipeline.ValidateFormat(format); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "graph")
			}

			s, err := c.settings()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, s, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Open(ctx, args[0], pipelineOptions(s, opts.legacy, opts.refresh))
			if err != nil {
				return err
			}
			if res.Fatal() {
				printErrorList(cmd.OutOrStdout(), args[0], res.Errors)
				return errors.New(errors.ErrCodeInvalidDocument, "cannot read %s", args[0])
			}

			prog := newProgress(logger)
			data, err := pipeline.Render(ctx, res.Drawings, format, nodelink.Options{Detailed: detailed, All: all, Logger: logger})
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			prog.done("Rendered " + format)
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, json")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with type and position")
	cmd.Flags().BoolVar(&all, "all", false, "include grid lines, planes and text")
	return cmd
}

// formatFromPath picks an output format from a file extension.
func formatFromPath(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		return pipeline.FormatSVG
	case ".json", ".vnav":
		return pipeline.FormatJSON
	}
	return pipeline.FormatDOT
}
