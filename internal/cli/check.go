package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/errors"
)

// checkOpts holds the flags shared by commands that parse a diagram.
type checkOpts struct {
	legacy      bool // run only the narrow repair pass
	noCache     bool // bypass the parse cache entirely
	refresh     bool // parse again even when cached
	interactive bool // show problems in a dialog
}

func (o *checkOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.legacy, "legacy", false, "only remove PathLines with missing or self-referencing anchors")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the parse cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a diagram and list its problems",
		Long: `Validate a diagram and list every problem found.

Drawings that fail validation and lines whose anchors cannot be satisfied
are reported. The command exits with status 1 when any problem is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "show problems in an interactive dialog")
	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path string, opts checkOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	s, err := c.settings()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, s, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Open(ctx, path, pipelineOptions(s, opts.legacy, opts.refresh))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %s", path))

	if res.Clean() {
		printSuccess(out, "%s is valid", path)
		printStats(out, len(res.Drawings), 0, res.CacheHit)
		return nil
	}

	if opts.interactive {
		if err := showErrorList(path, res.Errors); err != nil {
			return err
		}
	} else {
		printErrorList(out, path, res.Errors)
	}
	if !res.Fatal() {
		printStats(out, len(res.Drawings), len(res.Errors), res.CacheHit)
	}
	return errors.New(errors.ErrCodeInvalidDocument, "%s has %d problem(s)", path, len(res.Errors))
}
