// Command ember prints build and configuration information for the Ember
// mixed-precision training library.
package main

import (
	"fmt"
	"os"

	"github.com/ember-ml/ember/amp"
)

const version = "v0.1.0-dev"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "", "help":
		usage()
	case "version":
		fmt.Printf("ember %s\n", version)
	case "presets":
		printPresets()
	default:
		fmt.Fprintf(os.Stderr, "ember: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Print(`ember - mixed-precision training support for Go

Usage:

  ember <command>

Commands:

  version    print the build version
  presets    print the built-in loss scaling presets
  help       print this message
`)
}

func printPresets() {
	presets := []struct {
		name string
		cfg  amp.Config
	}{
		{"fp16", amp.ForFP16()},
		{"bf16", amp.ForBF16()},
	}
	for _, p := range presets {
		fmt.Printf("%-5s init=%g range=[%g, %g] growth=x%g every %d clean steps, backoff=x%g\n",
			p.name, p.cfg.InitScale, p.cfg.MinScale, p.cfg.MaxScale,
			p.cfg.GrowthFactor, p.cfg.GrowthInterval, p.cfg.BackoffFactor)
	}
}
