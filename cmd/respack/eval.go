package main

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
	"github.com/signadot/respack/condition"
	"github.com/signadot/respack/parse"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if (cfg.When == "") == (cfg.Expr == "") {
		return fmt.Errorf("%w: exactly one of -when and -expr is required", cli.ErrUsage)
	}
	props := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("%w: expected prop=val, got %q", cli.ErrUsage, a)
		}
		props[k] = v
	}
	var prog *vm.Program
	if cfg.When != "" {
		node, err := parse.Parse([]byte(cfg.When))
		if err != nil {
			return fmt.Errorf("-when: %w", err)
		}
		c, err := condition.Decode(node)
		if err != nil {
			return fmt.Errorf("-when: %w", err)
		}
		theLog.Debug("condition", "expr", condition.Expr(c))
		prog, err = condition.Compile(c)
		if err != nil {
			return err
		}
	} else {
		prog, err = condition.CompileString(cfg.Expr)
		if err != nil {
			return fmt.Errorf("-expr: %w", err)
		}
	}
	ok, err := condition.Eval(prog, props)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, ok)
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}
