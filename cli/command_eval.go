package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fatih/color"

	"github.com/yangkit/xpath"
	"github.com/yangkit/xpath/nsctx"
)

// Sentinel errors
var (
	ErrNoDocumentRoot = errors.New("document has no root element")
)

// EvalCmd represents the eval command
type EvalCmd struct {
	File   string `arg:"" help:"XML document file" type:"path"`
	Expr   string `arg:"" help:"XPath expression"`
	Nsc    string `help:"YAML file with prefix/URI bindings for the namespace context" type:"path"`
	Legacy bool   `help:"Match name test prefixes literally instead of resolving namespaces"`
	Trace  int    `help:"Evaluation trace verbosity" short:"t"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(cmd.File); err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}

	if doc.Root() == nil {
		return fmt.Errorf("%w: %s", ErrNoDocumentRoot, cmd.File)
	}

	trace := cmd.Trace
	if trace == 0 {
		trace = config.Trace
	}

	if trace > 0 {
		xpath.SetTraceLevel(trace)
		defer xpath.SetTraceLevel(0)
	}

	nsc, err := cmd.namespaceContext(config, doc)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Evaluating %q against %s", cmd.Expr, cmd.File)

		for _, b := range nsc.Bindings() {
			color.Blue("  xmlns:%s=%s", b.Prefix, b.URI)
		}
	}

	xr, err := xpath.Eval(&doc.Element, cmd.Expr, nsc)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	return printResult(ctx, xr)
}

// namespaceContext resolves the namespace context for the evaluation:
// an explicit --nsc file wins, then the bindings from the configuration,
// then the declarations in scope on the document root. --legacy disables
// namespace resolution entirely.
func (cmd *EvalCmd) namespaceContext(config *Config, doc *etree.Document) (*nsctx.Context, error) {
	if cmd.Legacy || config.Legacy {
		return nil, nil
	}

	if cmd.Nsc != "" {
		nsc, err := nsctx.Load(cmd.Nsc)
		if err != nil {
			return nil, fmt.Errorf("failed to load namespace context: %w", err)
		}

		return nsc, nil
	}

	if len(config.Namespaces) > 0 {
		nsc := nsctx.New()
		for _, b := range config.Namespaces {
			nsc.Set(b.Prefix, b.URI)
		}

		return nsc, nil
	}

	return nsctx.FromNode(doc.Root()), nil
}

func printResult(ctx *Context, xr *xpath.Context) error {
	if ctx.Quiet {
		return nil
	}

	switch xr.Type {
	case xpath.CtxNodeset:
		color.Green("nodeset: %d node(s)", len(xr.Nodeset))

		for i, el := range xr.Nodeset {
			s, err := nodeXML(el)
			if err != nil {
				return fmt.Errorf("failed to render node %d: %w", i, err)
			}

			fmt.Printf("%d: %s", i, s)
		}
	case xpath.CtxBool:
		color.Green("bool: %v", xr.Bool)
	case xpath.CtxNumber:
		color.Green("number: %s", strconv.FormatFloat(xr.Number, 'g', -1, 64))
	case xpath.CtxString:
		color.Green("string: %q", xr.String)
	}

	return nil
}

// nodeXML serializes one result node as indented XML.
func nodeXML(el *etree.Element) (string, error) {
	d := etree.NewDocument()
	d.AddChild(el.Copy())
	d.Indent(2)

	return d.WriteToString()
}
