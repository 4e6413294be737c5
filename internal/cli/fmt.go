package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/diagram"
	"github.com/matzehuels/vnav/pkg/errors"
)

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var (
		opts   checkOpts
		output string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Repair a diagram and rewrite it in canonical form",
		Long: `Repair a diagram and rewrite it in canonical form.

Invalid drawings and lines with unsatisfiable anchors are dropped; the rest
is written as an indented JSON array sorted by id. The file is rewritten in
place unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			s, err := c.settings()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, s, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Open(ctx, path, pipelineOptions(s, opts.legacy, opts.refresh))
			if err != nil {
				return err
			}
			if res.Fatal() {
				printErrorList(out, path, res.Errors)
				return errors.New(errors.ErrCodeInvalidDocument, "cannot format %s", path)
			}

			var formatted bytes.Buffer
			if err := diagram.Write(&formatted, res.Drawings); err != nil {
				return err
			}

			if check {
				original, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if bytes.Equal(original, formatted.Bytes()) {
					printSuccess(out, "%s is formatted", path)
					return nil
				}
				return errors.New(errors.ErrCodeInvalidDocument, "%s is not formatted", path)
			}

			for _, e := range res.Errors {
				printWarning(out, "dropped: %s", e)
			}
			dest := path
			if output != "" {
				dest = output
			}
			if err := diagram.Export(dest, res.Drawings); err != nil {
				return err
			}
			printSuccess(out, "Wrote %d drawings", len(res.Drawings))
			printFile(out, dest)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of rewriting the input")
	cmd.Flags().BoolVar(&check, "check", false, "only report whether the file is already formatted")
	return cmd
}
