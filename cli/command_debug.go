package cli

import (
	"fmt"
	"os"

	"github.com/yangkit/xpath"
	"github.com/yangkit/xpath/tokenizer"
)

// TokensCmd represents the tokens command
type TokensCmd struct {
	Expr string `arg:"" help:"XPath expression"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	tokens, err := tokenizer.New(cmd.Expr).AllTokens()
	if err != nil {
		return err
	}

	for _, tok := range tokens {
		fmt.Printf("%3d  %-14s %q\n", tok.Position.Offset, tok.Type, tok.Value)
	}

	return nil
}

// TreeCmd represents the tree command
type TreeCmd struct {
	Expr string `arg:"" help:"XPath expression"`
}

// Run executes the tree command
func (cmd *TreeCmd) Run(ctx *Context) error {
	tree, err := xpath.Parse(cmd.Expr)
	if err != nil {
		return err
	}

	tree.Dump(os.Stdout)

	return nil
}
