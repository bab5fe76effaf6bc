package xpath

import (
	"bytes"
	"math"
	"os"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangkit/xpath/nsctx"
)

// parseDoc returns the document virtual root wrapping the given XML.
func parseDoc(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))

	return &doc.Element
}

func bodies(vec []*etree.Element) []string {
	out := make([]string, len(vec))
	for i, el := range vec {
		out[i] = el.Text()
	}

	return out
}

func TestChildSteps(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><b>2</b><c>3</c></a>`)

	t.Run("named child step", func(t *testing.T) {
		vec, err := Vec(root, "a/b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, bodies(vec))
	})

	t.Run("wildcard selects all children in document order", func(t *testing.T) {
		vec, err := Vec(root, "a/*", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, bodies(vec))
	})

	t.Run("node() selects all children", func(t *testing.T) {
		vec, err := Vec(root, "a/node()", nil)
		require.NoError(t, err)
		assert.Len(t, vec, 3)
	})

	t.Run("text() matches elements too", func(t *testing.T) {
		// known limitation: text() does not single out text nodes
		vec, err := Vec(root, "a/text()", nil)
		require.NoError(t, err)
		assert.Len(t, vec, 3)
	})

	t.Run("no match yields empty set", func(t *testing.T) {
		vec, err := Vec(root, "nothere/x", nil)
		require.NoError(t, err)
		assert.Empty(t, vec)
	})
}

func TestPredicates(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><b>2</b><c>3</c></a>`)

	t.Run("position is the integer cast of the number result", func(t *testing.T) {
		vec, err := Vec(root, "a/b[1]", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, bodies(vec))

		vec, err = Vec(root, "a/b[0]", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, bodies(vec))
	})

	t.Run("out of range position selects nothing", func(t *testing.T) {
		vec, err := Vec(root, "a/b[5]", nil)
		require.NoError(t, err)
		assert.Empty(t, vec)
	})

	t.Run("string-value comparison", func(t *testing.T) {
		vec, err := Vec(root, "a/b[.='1']", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, bodies(vec))
	})

	t.Run("chained predicates filter in order", func(t *testing.T) {
		vec, err := Vec(root, "a/*[. > 0][1]", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, bodies(vec))
	})

	t.Run("comparison against a sibling leaf", func(t *testing.T) {
		users := parseDoc(t, `<top><user><name>fred</name></user><user><name>barney</name></user></top>`)

		vec, err := Vec(users, "top/user[name='fred']", nil)
		require.NoError(t, err)
		require.Len(t, vec, 1)
		assert.Equal(t, "fred", vec[0].SelectElement("name").Text())
	})
}

func TestAbsolutePaths(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><m><b>2</b></m><c>3</c></a>`)
	inner := root.FindElement("//m/b")
	require.NotNil(t, inner)

	t.Run("absolute path ignores the context position", func(t *testing.T) {
		vec, err := Vec(inner, "/a/c", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, bodies(vec))
	})

	t.Run("lone slash selects the document element", func(t *testing.T) {
		vec, err := Vec(inner, "/", nil)
		require.NoError(t, err)
		require.Len(t, vec, 1)
		assert.Equal(t, "a", vec[0].Tag)
	})

	t.Run("descendant abbreviation from the root", func(t *testing.T) {
		vec, err := Vec(root, "//b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, bodies(vec))
	})

	t.Run("descendant abbreviation inside a path", func(t *testing.T) {
		vec, err := Vec(root, "a//b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, bodies(vec))
	})

	t.Run("explicit descendant axis", func(t *testing.T) {
		vec, err := Vec(root, "a/descendant::b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, bodies(vec))
	})
}

func TestParentAndSelfSteps(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><b>2</b></a>`)

	t.Run("parent step", func(t *testing.T) {
		el, err := First(root, "a/b/..", nil)
		require.NoError(t, err)
		require.NotNil(t, el)
		assert.Equal(t, "a", el.Tag)
	})

	t.Run("self step passes the node-set through", func(t *testing.T) {
		vec, err := Vec(root, "a/.", nil)
		require.NoError(t, err)
		require.Len(t, vec, 1)
		assert.Equal(t, "a", vec[0].Tag)
	})

	t.Run("parent of the root drops out silently", func(t *testing.T) {
		vec, err := Vec(root, "..", nil)
		require.NoError(t, err)
		assert.Empty(t, vec)
	})
}

func TestCurrent(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b></a>`)
	a := root.SelectElement("a")

	el, err := First(a, "current()", nil)
	require.NoError(t, err)
	assert.Same(t, a, el)
}

func TestUnion(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><b>2</b><c>3</c></a>`)

	t.Run("concatenates in encounter order", func(t *testing.T) {
		vec, err := Vec(root, "a/c | a/b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "1", "2"}, bodies(vec))
	})

	t.Run("no deduplication", func(t *testing.T) {
		vec, err := Vec(root, "a/b | a/b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "1", "2"}, bodies(vec))
	})
}

func TestLiteralArithmetic(t *testing.T) {
	root := parseDoc(t, `<a/>`)

	tests := []struct {
		expr string
		want float64
	}{
		{expr: "1 + 1", want: 2},
		{expr: "1 - 2", want: -1},
		{expr: "2 * 3 + 4", want: 10},
		{expr: "10 div 4", want: 2.5},
		{expr: "7 mod 3", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Number(root, tt.expr, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	t.Run("NaN operand poisons the result", func(t *testing.T) {
		n, err := Number(root, "'x' + 1", nil)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(n))
	})
}

func TestLiteralComparisons(t *testing.T) {
	root := parseDoc(t, `<a/>`)

	tests := []struct {
		expr string
		want bool
	}{
		{expr: "1 = 1.0", want: true},
		{expr: "'a' = 'b'", want: false},
		{expr: "'a' != 'b'", want: true},
		{expr: "1 = 1 and 2 = 2", want: true},
		{expr: "1 = 2 and 2 = 2", want: false},
		{expr: "1 = 2 or 1 = 1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			b, err := Bool(root, tt.expr, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestNodesetComparisons(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b><b>2</b><c>3</c></a>`)

	tests := []struct {
		expr string
		want bool
	}{
		{expr: "a/b = '1'", want: true},
		{expr: "a/b = '9'", want: false},
		{expr: "a/b >= 2", want: true},
		{expr: "a/b > 2", want: false},
		{expr: "3 > a/b", want: true},
		{expr: "1 > a/b", want: false},
		{expr: "a/b = a/c", want: false},
		{expr: "a/b != a/c", want: true},
		{expr: "a/b = (1 = 1)", want: true},
		{expr: "a/nothere = (1 = 1)", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			b, err := Bool(root, tt.expr, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}

	t.Run("one equal pair flips nodeset equality", func(t *testing.T) {
		eq := parseDoc(t, `<a><b>2</b><c>2</c></a>`)

		b, err := Bool(eq, "a/b = a/c", nil)
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("mixed scalar types are rejected", func(t *testing.T) {
		_, err := Bool(root, "1 = 'x'", nil)
		assert.ErrorIs(t, err, ErrMixedTypeComparison)
	})

	t.Run("ordering on nodeset and bool is rejected", func(t *testing.T) {
		_, err := Bool(root, "a/b < (1 = 1)", nil)
		assert.ErrorIs(t, err, ErrNodesetOperator)
	})
}

func TestNamespaceModes(t *testing.T) {
	t.Run("strict mode matches on resolved URIs", func(t *testing.T) {
		root := parseDoc(t, `<x xmlns="urn:A"><y>1</y></x>`)

		nscA := nsctx.New()
		nscA.Set("t", "urn:A")

		vec, err := Vec(root, "t:x", nscA)
		require.NoError(t, err)
		assert.Len(t, vec, 1)

		nscB := nsctx.New()
		nscB.Set("t", "urn:B")

		vec, err = Vec(root, "t:x", nscB)
		require.NoError(t, err)
		assert.Empty(t, vec)
	})

	t.Run("default prefix binding", func(t *testing.T) {
		root := parseDoc(t, `<x xmlns="urn:A"><y>1</y></x>`)

		c := nsctx.New()
		c.Set("", "urn:A")

		vec, err := Vec(root, "x/y", c)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, bodies(vec))
	})

	t.Run("unbound test prefix against namespaced node", func(t *testing.T) {
		root := parseDoc(t, `<x xmlns="urn:A"/>`)

		vec, err := Vec(root, "x", nsctx.New())
		require.NoError(t, err)
		assert.Empty(t, vec)
	})

	t.Run("legacy mode compares raw prefixes", func(t *testing.T) {
		root := parseDoc(t, `<p:x xmlns:p="urn:A"><y>1</y></p:x>`)

		vec, err := Vec(root, "p:x", nil)
		require.NoError(t, err)
		assert.Len(t, vec, 1)

		vec, err = Vec(root, "x", nil)
		require.NoError(t, err)
		assert.Empty(t, vec)
	})

	t.Run("in-scope declarations as context", func(t *testing.T) {
		root := parseDoc(t, `<top xmlns:t="urn:A"><t:x>1</t:x></top>`)
		top := root.SelectElement("top")

		c := nsctx.FromNode(top)

		vec, err := Vec(root, "top/t:x", c)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, bodies(vec))
	})
}

func TestEvalTreeDirect(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b></a>`)

	tree, err := Parse("a/b")
	require.NoError(t, err)

	xr, err := EvalTree(NewContext(root), tree, nil)
	require.NoError(t, err)
	require.Equal(t, CtxNodeset, xr.Type)
	assert.Len(t, xr.Nodeset, 1)

	_, err = EvalTree(nil, tree, nil)
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestUnknownAxisTree(t *testing.T) {
	root := parseDoc(t, `<a/>`)

	tree := &Tree{Kind: KindStep, Axis: Axis(99), C0: &Tree{Kind: KindNameTest, S1: "*"}}

	_, err := EvalTree(NewContext(root), tree, nil)
	assert.ErrorIs(t, err, ErrUnknownAxis)
}

func TestTrace(t *testing.T) {
	root := parseDoc(t, `<a><b>1</b></a>`)

	var buf bytes.Buffer

	SetTraceOutput(&buf)
	SetTraceLevel(2)

	defer func() {
		SetTraceLevel(0)
		SetTraceOutput(os.Stderr)
	}()

	_, err := Vec(root, "a/b", nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "step")
	assert.Contains(t, buf.String(), "nodeset")
}
