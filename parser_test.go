package xpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaths(t *testing.T) {
	t.Run("single step", func(t *testing.T) {
		tree, err := Parse("a")
		require.NoError(t, err)

		assert.Equal(t, KindStep, tree.Kind)
		assert.Equal(t, AxisChild, tree.Axis)
		require.NotNil(t, tree.C0)
		assert.Equal(t, KindNameTest, tree.C0.Kind)
		assert.Equal(t, "a", tree.C0.S1)
	})

	t.Run("two steps", func(t *testing.T) {
		tree, err := Parse("a/b")
		require.NoError(t, err)

		assert.Equal(t, KindRelPath, tree.Kind)
		assert.Equal(t, KindStep, tree.C0.Kind)
		assert.Equal(t, "a", tree.C0.C0.S1)
		assert.Equal(t, KindStep, tree.C1.Kind)
		assert.Equal(t, "b", tree.C1.C0.S1)
	})

	t.Run("absolute path", func(t *testing.T) {
		tree, err := Parse("/a")
		require.NoError(t, err)

		assert.Equal(t, KindAbsPath, tree.Kind)
		assert.NotEqual(t, AxisDescendantOrSelf, tree.Axis)
		assert.Equal(t, KindStep, tree.C0.Kind)
	})

	t.Run("lone slash", func(t *testing.T) {
		tree, err := Parse("/")
		require.NoError(t, err)

		assert.Equal(t, KindAbsPath, tree.Kind)
		assert.Nil(t, tree.C0)
	})

	t.Run("descendant abbreviation", func(t *testing.T) {
		tree, err := Parse("//a")
		require.NoError(t, err)

		assert.Equal(t, KindAbsPath, tree.Kind)
		assert.Equal(t, AxisDescendantOrSelf, tree.Axis)
	})

	t.Run("inner descendant marks the following segment", func(t *testing.T) {
		tree, err := Parse("a//b")
		require.NoError(t, err)

		require.Equal(t, KindRelPath, tree.Kind)
		assert.NotEqual(t, AxisDescendantOrSelf, tree.Axis)
		assert.Equal(t, "a", tree.C0.C0.S1)

		rest := tree.C1
		require.Equal(t, KindRelPath, rest.Kind)
		assert.Equal(t, AxisDescendantOrSelf, rest.Axis)
		assert.Equal(t, "b", rest.C0.C0.S1)
	})

	t.Run("prefixed name test", func(t *testing.T) {
		tree, err := Parse("t:top")
		require.NoError(t, err)

		test := tree.C0
		assert.Equal(t, "t", test.S0)
		assert.Equal(t, "top", test.S1)
	})

	t.Run("abbreviated steps", func(t *testing.T) {
		tree, err := Parse("./..")
		require.NoError(t, err)

		assert.Equal(t, AxisSelf, tree.C0.Axis)
		assert.Equal(t, AxisParent, tree.C1.Axis)
	})

	t.Run("attribute step", func(t *testing.T) {
		tree, err := Parse("@name")
		require.NoError(t, err)

		assert.Equal(t, AxisAttribute, tree.Axis)
		assert.Equal(t, "name", tree.C0.S1)
	})

	t.Run("axis specifier", func(t *testing.T) {
		tree, err := Parse("descendant-or-self::node()")
		require.NoError(t, err)

		assert.Equal(t, AxisDescendantOrSelf, tree.Axis)
		assert.Equal(t, KindNodeFunc, tree.C0.Kind)
		assert.Equal(t, "node", tree.C0.S0)
	})
}

func TestParsePredicates(t *testing.T) {
	t.Run("positional", func(t *testing.T) {
		tree, err := Parse("b[2]")
		require.NoError(t, err)

		require.Equal(t, KindStep, tree.Kind)
		pred := tree.C1
		require.Equal(t, KindPredicate, pred.Kind)
		assert.Nil(t, pred.C0)
		assert.Equal(t, KindNumber, pred.C1.Kind)
		assert.Equal(t, 2.0, pred.C1.Double)
	})

	t.Run("chained predicates keep order", func(t *testing.T) {
		tree, err := Parse("b[1][2]")
		require.NoError(t, err)

		outer := tree.C1
		require.Equal(t, KindPredicate, outer.Kind)
		assert.Equal(t, 2.0, outer.C1.Double)

		inner := outer.C0
		require.Equal(t, KindPredicate, inner.Kind)
		assert.Nil(t, inner.C0)
		assert.Equal(t, 1.0, inner.C1.Double)
	})

	t.Run("comparison predicate", func(t *testing.T) {
		tree, err := Parse("user[name='fred']")
		require.NoError(t, err)

		expr := tree.C1.C1
		require.Equal(t, KindRelational, expr.Kind)
		assert.Equal(t, OpEq, expr.Op)
		assert.Equal(t, KindStep, expr.C0.Kind)
		assert.Equal(t, KindString, expr.C1.Kind)
		assert.Equal(t, "fred", expr.C1.S0)
	})
}

func TestParseOperators(t *testing.T) {
	t.Run("precedence of times over plus", func(t *testing.T) {
		tree, err := Parse("1 + 2 * 3")
		require.NoError(t, err)

		require.Equal(t, KindAdditive, tree.Kind)
		assert.Equal(t, OpAdd, tree.Op)
		assert.Equal(t, KindNumber, tree.C0.Kind)

		right := tree.C1
		require.Equal(t, KindAdditive, right.Kind)
		assert.Equal(t, OpMult, right.Op)
	})

	t.Run("or binds weaker than and", func(t *testing.T) {
		tree, err := Parse("a or b and c")
		require.NoError(t, err)

		require.Equal(t, KindLogical, tree.Kind)
		assert.Equal(t, OpOr, tree.Op)
		assert.Equal(t, OpAnd, tree.C1.Op)
	})

	t.Run("union of paths", func(t *testing.T) {
		tree, err := Parse("a/b | c")
		require.NoError(t, err)

		require.Equal(t, KindUnion, tree.Kind)
		assert.Equal(t, OpUnion, tree.Op)
		assert.Equal(t, KindRelPath, tree.C0.Kind)
		assert.Equal(t, KindStep, tree.C1.Kind)
	})

	t.Run("operator names as element names", func(t *testing.T) {
		tree, err := Parse("div/mod")
		require.NoError(t, err)

		require.Equal(t, KindRelPath, tree.Kind)
		assert.Equal(t, "div", tree.C0.C0.S1)
		assert.Equal(t, "mod", tree.C1.C0.S1)
	})

	t.Run("parenthesized expression", func(t *testing.T) {
		tree, err := Parse("(1 = 1)")
		require.NoError(t, err)

		require.Equal(t, KindExpr, tree.Kind)
		assert.Equal(t, KindRelational, tree.C0.Kind)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "trailing slash", input: "a/"},
		{name: "unclosed predicate", input: "a[1"},
		{name: "unclosed paren", input: "(1"},
		{name: "unsupported function", input: "position()"},
		{name: "bad axis", input: "sideways::a"},
		{name: "dangling colon", input: "a:"},
		{name: "trailing garbage", input: "a b"},
		{name: "lexer error", input: "a = 'oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}
