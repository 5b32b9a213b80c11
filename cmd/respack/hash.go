package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/respack"
	"github.com/signadot/respack/digest"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: hash requires at least 1 arg", cli.ErrUsage)
	}
	for _, a := range args {
		sum, err := hashOne(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s  %s  %s\n", sum.SHA1, sum.BLAKE3, a)
	}
	return nil
}

// hashOne hashes an archive as is, and a directory as the archive it
// builds to.
func hashOne(p string) (digest.Sum, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return digest.Sum{}, err
	}
	if fi.IsDir() {
		pk, err := respack.NewReader(respack.WithLogger(theLog)).ReadDir(p)
		if err != nil {
			return digest.Sum{}, err
		}
		b, err := respack.NewWriter(respack.WithLogger(theLog)).Build(pk)
		if err != nil {
			return digest.Sum{}, err
		}
		return b.Sum, nil
	}
	f, err := os.Open(p)
	if err != nil {
		return digest.Sum{}, err
	}
	defer f.Close()
	return digest.Reader(f)
}
