package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/config"
	"github.com/matzehuels/vnav/pkg/diagram"
	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

// newOpts holds the flags of the new command.
type newOpts struct {
	id    string
	color string
	file  string
	at    string // x,y for positioned drawings
	start string // x,y or an anchor id
	end   string
	text  string
	force bool
}

// newCommand creates the new command.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	validTypes := make([]string, len(drawing.Types))
	for i, t := range drawing.Types {
		validTypes[i] = string(t)
	}

	cmd := &cobra.Command{
		Use:   "new <type>",
		Short: "Create a drawing with default styling",
		Long: `Create a drawing with default styling and a fresh id.

Without --file the drawing is printed as JSON. With --file it is added to
that diagram, which is created if it does not exist. Adding fails when the
drawing is invalid or anchored to something it cannot be anchored to.

Line ends given to --start and --end are either x,y coordinates or the id
of the drawing to anchor to, optionally followed by :top or :bottom for a
Between and :start or :end for a PathLine.`,
		ValidArgs: validTypes,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			d, err := buildDrawing(drawing.Type(args[0]), s, opts)
			if err != nil {
				return err
			}

			if opts.file == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}

			doc, err := c.openDocument(cmd.Context(), cmd.OutOrStdout(), s, opts.file, true, opts.force)
			if err != nil {
				return err
			}
			id, err := doc.Add(d)
			if err != nil {
				return err
			}
			if err := diagram.Export(opts.file, doc.Snapshot()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Added %s %s", args[0], id)
			printFile(cmd.OutOrStdout(), opts.file)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "drawing id (default: a new UUID)")
	cmd.Flags().StringVar(&opts.color, "color", "", "color as #rrggbb (default from settings)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "add the drawing to this diagram")
	cmd.Flags().StringVar(&opts.at, "at", "", "position as x,y")
	cmd.Flags().StringVar(&opts.start, "start", "", "line start: x,y or anchor id")
	cmd.Flags().StringVar(&opts.end, "end", "", "line end: x,y or anchor id")
	cmd.Flags().StringVar(&opts.text, "text", "", "label text for Text drawings")
	cmd.Flags().BoolVar(&opts.force, "force", false, "rewrite --file even if drawings were dropped while loading it")
	return cmd
}

// rmCommand creates the rm command.
func (c *CLI) rmCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <file> <id>",
		Short: "Remove a drawing and every line anchored to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]
			s, err := c.settings()
			if err != nil {
				return err
			}
			doc, err := c.openDocument(cmd.Context(), cmd.OutOrStdout(), s, path, false, force)
			if err != nil {
				return err
			}
			removed, err := doc.Delete(id)
			if err != nil {
				return err
			}
			if err := diagram.Export(path, doc.Snapshot()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed %d drawing(s)", len(removed))
			for _, r := range removed {
				printDetail(cmd.OutOrStdout(), "%s", r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rewrite the file even if drawings were dropped while loading it")
	return cmd
}

// openDocument parses path into an editable document. When create is set,
// a missing file yields an empty document.
//
// Edits rewrite the whole file from the loaded drawings. Problems found while
// loading are printed to out and refuse the document unless force is set.
func (c *CLI) openDocument(ctx context.Context, out io.Writer, s config.Settings, path string, create, force bool) (*diagram.Document, error) {
	opts := pipelineOptions(s, false, false)
	runner, err := c.newRunner(ctx, s, false)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	res, err := runner.Open(ctx, path, opts)
	switch {
	case create && errors.Is(err, errors.ErrCodeFileNotFound):
		return diagram.NewDocument(nil, opts.Parser()), nil
	case err != nil:
		return nil, err
	case res.Fatal():
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: %s", path, strings.Join(res.Errors, "; "))
	}
	if len(res.Errors) > 0 {
		printErrorList(out, fmt.Sprintf("Problems in %s", path), res.Errors)
		if !force {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"%s has %d problem(s); saving would drop the affected drawings (run vnav fmt first, or pass --force)", path, len(res.Errors))
		}
		printWarning(out, "Dropping %d problem drawing(s) from %s", len(res.Errors), path)
	}
	return diagram.NewDocument(res.Drawings, opts.Parser()), nil
}

// buildDrawing creates a default drawing of type t and applies opts.
func buildDrawing(t drawing.Type, s config.Settings, opts newOpts) (drawing.Drawing, error) {
	id := opts.id
	if id == "" {
		id = uuid.NewString()
	}
	color := opts.color
	if color == "" {
		color = s.DefaultColor
	}
	d := drawing.NewDefault(t, id, color)
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown drawing type %q", t)
	}

	if opts.at != "" {
		p, err := parsePoint(opts.at)
		if err != nil {
			return nil, err
		}
		switch v := d.(type) {
		case *drawing.PointAnchor:
			v.X, v.Y = p.X, p.Y
		case *drawing.Between:
			v.X, v.Y = p.X, p.Y
		case *drawing.Plane:
			v.X, v.Y = p.X, p.Y
		case *drawing.Text:
			v.X, v.Y = p.X, p.Y
		case *drawing.VerticalGridLine:
			v.X = p.X
		case *drawing.HorizontalGridLine:
			v.Y = p.Y
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "--at does not apply to %s; use --start and --end", t)
		}
	}

	if l, ok := d.(*drawing.Line); ok {
		var err error
		if l.Start, err = parseEndPoint(opts.start, l.Start); err != nil {
			return nil, err
		}
		if l.End, err = parseEndPoint(opts.end, l.End); err != nil {
			return nil, err
		}
	} else if opts.start != "" || opts.end != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--start and --end only apply to lines")
	}

	if txt, ok := d.(*drawing.Text); ok {
		txt.Text = opts.text
	}
	return d, nil
}

// parseEndPoint reads "x,y" as a floating end point and anything else as
// an anchor id. An empty value keeps def.
func parseEndPoint(s string, def drawing.EndPoint) (drawing.EndPoint, error) {
	if s == "" {
		return def, nil
	}
	if strings.Contains(s, ",") {
		p, err := parsePoint(s)
		if err != nil {
			return nil, err
		}
		return drawing.Floating{X: p.X, Y: p.Y}, nil
	}
	anchor, part, _ := strings.Cut(s, ":")
	c := drawing.Connected{AnchorID: anchor}
	switch part {
	case "":
	case "top":
		c.TopOfBetween = true
	case "start":
		c.StartOfPathLine = true
	case "bottom", "end":
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown anchor point %q (want top, bottom, start or end)", part)
	}
	return c, nil
}
