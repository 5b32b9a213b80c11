package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/respack/packdiff"
)

var (
	addColor    = color.New(color.FgGreen).SprintFunc()
	removeColor = color.New(color.FgRed).SprintFunc()
	headerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	a, closeA, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeA()
	b, closeB, err := openSource(args[1])
	if err != nil {
		return err
	}
	defer closeB()
	changes, err := packdiff.Diff(a, b)
	if err != nil {
		return err
	}
	for i := range changes {
		printChange(cc.Out, &changes[i])
	}
	if len(changes) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func printChange(w io.Writer, c *packdiff.Change) {
	switch c.Kind {
	case packdiff.Added:
		fmt.Fprintln(w, addColor("+ "+c.Path))
		return
	case packdiff.Removed:
		fmt.Fprintln(w, removeColor("- "+c.Path))
		return
	}
	fmt.Fprintln(w, headerColor("~ "+c.Path))
	if c.Patch != nil {
		fmt.Fprintf(w, "  %s\n", c.Patch)
		return
	}
	for _, l := range c.Lines {
		switch l.Op {
		case packdiff.Insert:
			fmt.Fprintln(w, addColor("  "+l.String()))
		case packdiff.Delete:
			fmt.Fprintln(w, removeColor("  "+l.String()))
		default:
			fmt.Fprintln(w, "  "+l.String())
		}
	}
}
