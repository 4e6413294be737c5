package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

const defaultSnapRadius = 10

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		opts   checkOpts
		near   string
		radius float64
	)

	cmd := &cobra.Command{
		Use:   "resolve <file> [id]",
		Short: "Print the positions a drawing resolves to",
		Long: `Print the positions a drawing resolves to.

For a line, both end points are followed through their anchors. For an
anchor, its attachable points are printed. With --near, the anchor point a
line end placed at x,y would snap to is printed instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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

			res, err := runner.Open(ctx, args[0], pipelineOptions(s, opts.legacy, opts.refresh))
			if err != nil {
				return err
			}
			if res.Fatal() {
				printErrorList(out, args[0], res.Errors)
				return errors.New(errors.ErrCodeInvalidDocument, "cannot read %s", args[0])
			}

			if near != "" {
				p, err := parsePoint(near)
				if err != nil {
					return err
				}
				var exclude []string
				if len(args) == 2 {
					exclude = append(exclude, args[1])
				}
				ref, ok := drawing.Nearest(res.Drawings, p, radius, exclude...)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no anchor point within %g of %s", radius, near)
				}
				printSnap(out, ref)
				return nil
			}

			if len(args) < 2 {
				return errors.New(errors.ErrCodeInvalidInput, "a drawing id or --near is required")
			}
			return printResolved(out, res.Drawings, args[1])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&near, "near", "", "find the anchor point nearest to x,y")
	cmd.Flags().Float64Var(&radius, "radius", defaultSnapRadius, "snap radius for --near")
	return cmd
}

func printResolved(w io.Writer, m drawing.Map, id string) error {
	d, ok := m[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no drawing with id %q", id)
	}
	switch v := d.(type) {
	case *drawing.Line:
		start, end, err := drawing.LinePoints(v, m)
		if err != nil {
			return errors.Wrap(drawing.ResolveCode(err), err, "resolve %s", id)
		}
		printPoint(w, "start", start.X, start.Y)
		printPoint(w, "end", end.X, end.Y)
	case *drawing.Between:
		printPoint(w, "top", v.X, v.Y)
		printPoint(w, "bottom", v.X, v.Y+v.Height)
	case *drawing.PointAnchor:
		printPoint(w, "point", v.X, v.Y)
	default:
		return errors.New(errors.ErrCodeUnsupported, "%s drawings have no anchor points", d.Kind())
	}
	return nil
}

func printSnap(w io.Writer, ref drawing.Connected) {
	printKeyValue(w, "anchorId", ref.AnchorID)
	printKeyValue(w, "top", strconv.FormatBool(ref.TopOfBetween))
	printKeyValue(w, "startOfPath", strconv.FormatBool(ref.StartOfPathLine))
}

// parsePoint parses "x,y".
func parsePoint(s string) (drawing.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return drawing.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q is not x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return drawing.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q is not x,y", s)
	}
	return drawing.Point{X: x, Y: y}, nil
}
