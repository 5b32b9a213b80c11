package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "respack").
		WithSynopsis("respack [opts] command [opts]").
		WithDescription("respack builds, inspects and compares resource packs.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return respackMain(cfg, cc, args)
		}).
		WithSubs(
			BuildCommand(cfg),
			UnpackCommand(cfg),
			HashCommand(cfg),
			DiffCommand(cfg),
			EvalCommand(cfg),
			FmtCommand(cfg))
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [-c respack.yaml] [dir]").
		WithDescription("build the pack described by a build configuration").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

func UnpackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UnpackConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Unpack, "unpack").
		WithAliases("u").
		WithSynopsis("unpack -o dir pack.zip").
		WithDescription("read a pack and write it as a directory").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return unpack(cfg, cc, args)
		})
}

func HashCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HashConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Hash, "hash").
		WithAliases("h").
		WithSynopsis("hash pack.zip|dir...").
		WithDescription("print the SHA-1 and BLAKE3 digests of packs").
		WithRun(func(cc *cli.Context, args []string) error {
			return hash(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("compare two packs, directories or archives").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e", "ev").
		WithSynopsis("eval -when '{\"facing\":\"north\"}' | -expr 'props[\"facing\"] == \"north\"' [prop=val]...").
		WithDescription("evaluate a block state condition against properties").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-indent s] [-path $.x] [files]").
		WithDescription("reformat JSON documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}
