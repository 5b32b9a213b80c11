package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"
	"github.com/signadot/respack"
	"github.com/signadot/respack/dirbuild"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/manifest"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: build takes at most one directory", cli.ErrUsage)
	}
	env, err := dirbuild.LoadEnv()
	if err != nil {
		return err
	}
	var conf *dirbuild.Config
	switch {
	case cfg.Config != "" && len(args) != 0:
		return fmt.Errorf("%w: cannot use -c with a directory", cli.ErrUsage)
	case cfg.Config != "":
		conf, err = dirbuild.OpenFile(cfg.Config, env)
	case len(args) != 0:
		conf, err = dirbuild.Open(args[0], env)
	default:
		conf, err = dirbuild.Open(".", env)
	}
	if err != nil {
		return err
	}

	p, err := respack.NewReader(respack.Lenient(conf.Lenient), respack.WithLogger(theLog)).ReadDir(conf.SourcePath())
	if err != nil {
		return fmt.Errorf("reading %s: %w", conf.SourcePath(), err)
	}
	w := respack.NewWriter(
		respack.WithLogger(theLog),
		respack.WithIndent(conf.Indent),
		respack.WithTreeOptions(conf.TreeOptions()...))
	out := conf.OutPath()
	var src filetree.Source
	if conf.IsZip() {
		b, err := w.Build(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, b.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s  %s  %s\n", b.SHA1, b.BLAKE3, out)
		if conf.ManifestPath() == "" {
			return nil
		}
		z, err := filetree.OpenZip(out)
		if err != nil {
			return err
		}
		defer z.Close()
		src = z
	} else {
		if err := w.WriteToDir(p, out); err != nil {
			return err
		}
		src = filetree.DirSource(out)
	}
	if conf.ManifestPath() == "" {
		return nil
	}
	return writeManifest(conf, src)
}

func writeManifest(conf *dirbuild.Config, src filetree.Source) error {
	m, err := manifest.Build(src)
	if err != nil {
		return err
	}
	c, err := manifest.ParseCompression(conf.Manifest.Compression)
	if err != nil {
		return err
	}
	d, err := m.Encode(c)
	if err != nil {
		return err
	}
	p := conf.ManifestPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	theLog.Info("wrote manifest", "path", p, "entries", len(m.Entries), "compression", c)
	return os.WriteFile(p, d, 0o644)
}
