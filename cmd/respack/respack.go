package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/respack/filetree"
)

func respackMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(theLog)
	color.NoColor = !cfg.colors(cc.Out)
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// colors reports whether output to w is colored: always with -color,
// never with -color=false, and otherwise when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return cfg.Color
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openSource opens an expanded pack directory or a zip archive. The
// returned close function must be called.
func openSource(p string) (filetree.Source, func() error, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return nil, nil, err
	}
	if fi.IsDir() {
		return filetree.DirSource(p), func() error { return nil }, nil
	}
	z, err := filetree.OpenZip(p)
	if err != nil {
		return nil, nil, err
	}
	return z, z.Close, nil
}
