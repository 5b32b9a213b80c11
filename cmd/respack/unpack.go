package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/respack"
)

func unpack(cfg *UnpackConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unpack.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: unpack requires 1 arg, got %v", cli.ErrUsage, args)
	}
	if cfg.Out == "" {
		return fmt.Errorf("%w: -o is required", cli.ErrUsage)
	}
	src, closeSrc, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeSrc()
	p, err := respack.NewReader(respack.Lenient(cfg.Lenient), respack.WithLogger(theLog)).Read(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	w := respack.NewWriter(respack.WithLogger(theLog), respack.WithIndent(cfg.Indent))
	return w.WriteToDir(p, cfg.Out)
}
