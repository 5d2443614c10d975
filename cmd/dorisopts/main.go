// Command dorisopts inspects Doris sink execution options.
//
//	dorisopts show  -manifest manifest.toml [-sink NAME]
//	dorisopts env   [-prefix DORIS_SINK]
//	dorisopts serve
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joeydtaylor/steeze-doris/pkg/core"
	"github.com/joeydtaylor/steeze-doris/pkg/render"
	"github.com/joeydtaylor/steeze-doris/pkg/serverfx"
	"github.com/joeydtaylor/steeze-doris/pkg/sinkenv"
	"go.uber.org/fx"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "show":
		err = show(os.Args[2:])
	case "env":
		err = env(os.Args[2:])
	case "serve":
		fx.New(serverfx.Module(serverfx.DefaultOptions())).Run()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dorisopts show -manifest FILE [-sink NAME] | env [-prefix P] | serve")
}

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	path := fs.String("manifest", "manifest.toml", "manifest file (.toml, .yaml)")
	sink := fs.String("sink", "", "only this sink")
	_ = fs.Parse(args)

	cfg, err := core.LoadConfig(*path)
	if err != nil {
		return err
	}
	reg, err := core.NewRegistry(cfg)
	if err != nil {
		return err
	}
	t := render.Table{Colorize: !color.NoColor}
	names := reg.Names()
	if *sink != "" {
		if _, ok := reg.Get(*sink); !ok {
			return fmt.Errorf("sink %q not in %s", *sink, *path)
		}
		names = []string{*sink}
	}
	for _, n := range names {
		o, _ := reg.Get(n)
		if err := t.Options(os.Stdout, n, o); err != nil {
			return err
		}
	}
	return nil
}

func env(args []string) error {
	fs := flag.NewFlagSet("env", flag.ExitOnError)
	prefix := fs.String("prefix", sinkenv.DefaultPrefix, "environment variable prefix")
	_ = fs.Parse(args)

	o, err := sinkenv.LoadOptionsFromEnv(*prefix)
	if err != nil {
		return err
	}
	return render.Table{Colorize: !color.NoColor}.Options(os.Stdout, *prefix, o)
}
