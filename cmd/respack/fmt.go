package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/respack/parse"
	"github.com/signadot/respack/stream"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := []stream.WriterOption{stream.WithIndent(cfg.Indent)}
	if cfg.colors(cc.Out) {
		opts = append(opts, stream.WithColors(stream.NewColors()))
	}
	if len(args) == 0 {
		return formatOne(cfg, cc.Out, cc.In, opts)
	}
	for _, a := range args {
		f, err := os.Open(a)
		if err != nil {
			return err
		}
		err = formatOne(cfg, cc.Out, f, opts)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
	}
	return nil
}

func formatOne(cfg *FmtConfig, out io.Writer, in io.Reader, opts []stream.WriterOption) error {
	node, err := parse.ParseReader(in, parse.Lenient(cfg.Lenient))
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		sel, err := node.GetPath(cfg.Path)
		if err != nil {
			return err
		}
		if sel == nil {
			return fmt.Errorf("nothing at %s", cfg.Path)
		}
		node = sel
	}
	w := stream.NewWriter(out, opts...)
	w.Node(node)
	if err := w.Finish(); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}
