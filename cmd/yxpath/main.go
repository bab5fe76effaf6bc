package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/yangkit/xpath/cli"
)

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:".yxpath.yaml"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Eval    cli.EvalCmd    `cmd:"" help:"Evaluate an XPath expression against an XML document"`
	Tokens  cli.TokensCmd  `cmd:"" help:"Dump the token stream of an expression"`
	Tree    cli.TreeCmd    `cmd:"" help:"Dump the parsed tree of an expression"`
	Version cli.VersionCmd `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
