package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	scene "github.com/grindlemire/go-scene"
)

// options are the flags shared by every subcommand.
type options struct {
	width   float64
	height  float64
	verbose bool
	rest    []string
}

// parseOptions splits flags from positional arguments.
func parseOptions(args []string) (options, error) {
	opts := options{width: 80, height: 24}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-v", "--verbose":
			opts.verbose = true
		case "-w", "-h":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s needs a value", arg)
			}
			i++
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return opts, fmt.Errorf("parsing %s: %w", arg, err)
			}
			if v <= 0 {
				return opts, fmt.Errorf("%s must be positive, got %g", arg, v)
			}
			if arg == "-w" {
				opts.width = v
			} else {
				opts.height = v
			}
		default:
			opts.rest = append(opts.rest, arg)
		}
	}
	return opts, nil
}

// demoScene is a column with a toolbar row of three buttons above a
// content box holding a centered card.
type demoScene struct {
	pipeline *scene.FramePipeline
	root     *scene.FrameNode
}

func newNode(tag string, pattern scene.Pattern) *scene.FrameNode {
	n := scene.CreateFrameNode(tag, scene.Register().MakeUniqueID(), pattern)
	n.SetInspectorID(tag)
	return n
}

func buildDemo(width, height float64) (*demoScene, error) {
	p, err := scene.NewFramePipeline(scene.WithRootSize(scene.SizeF{Width: width, Height: height}))
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	root := newNode("window", scene.NewFlexPattern())
	root.LayoutProperty().UpdateUserDefinedIdealSize(scene.CalcSize{Width: scene.Percent(100), Height: scene.Percent(100)})
	root.LayoutProperty().UpdateFlex(scene.FlexStyle{Direction: scene.Column, AlignItems: scene.AlignStretch})

	toolbar := newNode("toolbar", scene.NewFlexPattern())
	toolbar.LayoutProperty().UpdateUserDefinedIdealSize(scene.CalcSize{Width: scene.Percent(100), Height: scene.Fixed(3)})
	toolbar.LayoutProperty().UpdateFlex(scene.FlexStyle{Direction: scene.Row, JustifyContent: scene.JustifySpaceBetween, Gap: 1})
	for _, name := range []string{"open", "save", "quit"} {
		button := newNode(name, &scene.BasePattern{})
		button.LayoutProperty().UpdateUserDefinedIdealSize(scene.CalcSize{Width: scene.Fixed(10), Height: scene.Fixed(3)})
		button.EventHub().GetOrCreateGestureEventHub().AddRecognizer("click")
		button.GetOrCreateFocusHub()
		toolbar.AddChild(button, -1)
	}

	content := newNode("content", scene.NewBoxPattern())
	content.LayoutProperty().UpdateFlexItem(scene.FlexItemStyle{FlexGrow: 1, FlexShrink: 1})
	content.EventHub().GetOrCreateInputEventHub().AddOnAxis(func(scene.OffsetF) {})

	card := newNode("card", &scene.BasePattern{})
	card.LayoutProperty().UpdateUserDefinedIdealSize(scene.CalcSize{Width: scene.Percent(50), Height: scene.Percent(50)})
	card.EventHub().GetOrCreateGestureEventHub().AddRecognizer("pan")
	content.AddChild(card, -1)

	root.AddChild(toolbar, -1)
	root.AddChild(content, -1)
	p.SetRoot(root)

	if err := p.FlushFrame(context.Background()); err != nil {
		return nil, fmt.Errorf("flushing first frame: %w", err)
	}
	return &demoScene{pipeline: p, root: root}, nil
}

// writeTree prints each frame node with its rect, indented by depth.
func writeTree(w io.Writer, n *scene.FrameNode, origin scene.OffsetF, verbose bool) {
	rect := n.GeometryNode().FrameRect()
	abs := scene.OffsetF{X: origin.X + rect.X, Y: origin.Y + rect.Y}
	indent := strings.Repeat("  ", max(n.Depth()-1, 0))
	fmt.Fprintf(w, "%s%s(%d) x=%g y=%g w=%g h=%g", indent, n.Tag(), n.ID(), abs.X, abs.Y, rect.Width, rect.Height)
	if verbose {
		fmt.Fprintf(w, " flag=%s active=%v", n.LayoutProperty().PropertyChangeFlag(), n.IsActive())
	}
	fmt.Fprintln(w)
	for _, child := range n.FrameChildren() {
		writeTree(w, child, abs, verbose)
	}
}

func runLayout(w io.Writer, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(opts.rest) > 0 {
		return fmt.Errorf("layout takes no arguments, got %q", opts.rest)
	}
	demo, err := buildDemo(opts.width, opts.height)
	if err != nil {
		return err
	}
	writeTree(w, demo.root, scene.OffsetF{}, opts.verbose)
	return nil
}

func runHit(w io.Writer, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(opts.rest) != 2 {
		return fmt.Errorf("hit needs x and y, got %d argument(s)", len(opts.rest))
	}
	var point scene.OffsetF
	if point.X, err = strconv.ParseFloat(opts.rest[0], 64); err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	if point.Y, err = strconv.ParseFloat(opts.rest[1], 64); err != nil {
		return fmt.Errorf("parsing y: %w", err)
	}

	demo, err := buildDemo(opts.width, opts.height)
	if err != nil {
		return err
	}
	ctx := context.Background()
	targets, _, res := demo.pipeline.DispatchTouch(ctx, point, scene.SourceTouch)
	fmt.Fprintf(w, "touch %s\n", res)
	for _, t := range targets {
		fmt.Fprintf(w, "  %s(%d) %s offset=(%g, %g)\n", t.Tag, t.NodeID, t.Name, t.CoordinateOffset.X, t.CoordinateOffset.Y)
	}
	axis, res := demo.pipeline.DispatchAxis(ctx, point)
	fmt.Fprintf(w, "axis %s\n", res)
	for _, t := range axis {
		fmt.Fprintf(w, "  %s(%d) %s\n", t.Tag, t.NodeID, t.Name)
	}
	if opts.verbose {
		if f := demo.pipeline.FocusManager().Focused(); f != nil {
			fmt.Fprintf(w, "focus %T\n", f)
		}
	}
	return nil
}
