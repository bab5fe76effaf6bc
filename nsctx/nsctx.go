// Package nsctx provides XPath namespace contexts: ordered mappings from
// prefix (including the empty default prefix) to namespace URI.
//
// A namespace context is supplied once per top-level evaluation and is
// read-only during evaluation. Its absence selects the legacy
// prefix-literal-comparison mode of the node test matcher; with a context,
// name tests match on resolved namespace URIs, which is what strict
// YANG/NETCONF processing requires (RFC 6241 8.9.1: the declarations in
// scope on the filter element form the context).
package nsctx

import (
	"github.com/beevik/etree"
)

// Binding associates one prefix with one namespace URI.
type Binding struct {
	Prefix string `yaml:"prefix"`
	URI    string `yaml:"uri"`
}

// Context is an ordered prefix to URI mapping.
type Context struct {
	bindings []Binding
}

// New creates an empty namespace context.
func New() *Context {
	return &Context{}
}

// Set binds prefix to uri, replacing an existing binding for the prefix.
// The empty prefix binds the default namespace.
func (c *Context) Set(prefix, uri string) {
	for i, b := range c.bindings {
		if b.Prefix == prefix {
			c.bindings[i].URI = uri
			return
		}
	}

	c.bindings = append(c.bindings, Binding{Prefix: prefix, URI: uri})
}

// Get resolves prefix to its URI. The second result reports whether the
// prefix is bound at all; an unbound prefix means "no namespace".
func (c *Context) Get(prefix string) (string, bool) {
	if c == nil {
		return "", false
	}

	for _, b := range c.bindings {
		if b.Prefix == prefix {
			return b.URI, true
		}
	}

	return "", false
}

// Len returns the number of bindings.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}

	return len(c.bindings)
}

// Bindings returns the bindings in insertion order.
func (c *Context) Bindings() []Binding {
	if c == nil {
		return nil
	}

	return c.bindings
}

// FromNode builds the namespace context in scope on el: all xmlns and
// xmlns:prefix declarations of el and its ancestors, nearest declaration
// winning. This mirrors how a NETCONF filter element's in-scope
// declarations become the context of its select expression.
func FromNode(el *etree.Element) *Context {
	c := New()

	for ; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			switch {
			case a.Space == "xmlns":
				if _, ok := c.Get(a.Key); !ok {
					c.Set(a.Key, a.Value)
				}
			case a.Space == "" && a.Key == "xmlns":
				if _, ok := c.Get(""); !ok {
					c.Set("", a.Value)
				}
			}
		}
	}

	return c
}
