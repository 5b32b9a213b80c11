package main

import (
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='color output'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`

	Main *cli.Command
}

type BuildConfig struct {
	*MainConfig
	Config string `cli:"name=c aliases=config desc='build configuration file'"`

	Build *cli.Command
}

type UnpackConfig struct {
	*MainConfig
	Out     string `cli:"name=o desc='output directory'"`
	Indent  string `cli:"name=indent desc='indent JSON documents with this string'"`
	Lenient bool   `cli:"name=lenient desc='accept comments and trailing commas'"`

	Unpack *cli.Command
}

type HashConfig struct {
	*MainConfig

	Hash *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig
	When string `cli:"name=when desc='condition as a JSON object'"`
	Expr string `cli:"name=expr desc='condition as an expression'"`

	Eval *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Indent  string `cli:"name=indent desc='indent with this string (default compact)'"`
	Lenient bool   `cli:"name=lenient desc='accept comments and trailing commas'"`
	Path    string `cli:"name=path desc='print only the value at this path, e.g. $.variants'"`

	Fmt *cli.Command
}
