package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree constructs: while( gr1.next() ) { gr2.query() }
func buildTree() *Node {
	gr1Next := &Node{
		Type:   KindCallExpression,
		Callee: &Node{Type: KindMemberExpression, Property: "next", Object: &Node{Type: KindIdentifier, Name: "gr1"}},
	}
	gr2Query := &Node{
		Type:   KindCallExpression,
		Callee: &Node{Type: KindMemberExpression, Property: "query", Object: &Node{Type: KindIdentifier, Name: "gr2"}},
	}
	body := &Node{Type: KindOther, RawType: "statement_block", Children: []*Node{gr2Query}}
	while := &Node{Type: KindWhileStatement, Children: []*Node{gr1Next, body}, Body: body}
	root := &Node{Type: KindOther, RawType: "program", Children: []*Node{while}}
	return root
}

func TestFindAll(t *testing.T) {
	root := buildTree()
	calls := FindAll(root, KindCallExpression)
	require.Len(t, calls, 2)
}

func TestFindLoops(t *testing.T) {
	root := buildTree()
	loops := FindLoops(root)
	require.Len(t, loops, 1)
	assert.Equal(t, KindWhileStatement, loops[0].Type)
}

func TestFindCallsByMemberProperty(t *testing.T) {
	root := buildTree()
	calls := FindCalls(root, "query")
	require.Len(t, calls, 1)
	assert.Equal(t, "query", calls[0].Callee.Property)
}

func TestFindCallsByBareIdentifier(t *testing.T) {
	root := &Node{
		Type: KindOther,
		Children: []*Node{
			{Type: KindCallExpression, Callee: &Node{Type: KindIdentifier, Name: "doThing"}},
		},
	}
	calls := FindCalls(root, "doThing")
	require.Len(t, calls, 1)
}

func TestWalkSkipSubtree(t *testing.T) {
	root := buildTree()
	var visited []Kind
	Walk(root, func(n *Node) VisitResult {
		visited = append(visited, n.Type)
		if n.Type == KindWhileStatement {
			return SkipSubtree
		}
		return Continue
	})
	assert.Equal(t, []Kind{KindOther, KindWhileStatement}, visited)
}

func TestFindFunctionLike(t *testing.T) {
	root := &Node{
		Type: KindOther,
		Children: []*Node{
			{Type: KindFunctionDeclaration, Name: "foo"},
			{Type: KindArrowFunctionExpression},
			{Type: KindIdentifier, Name: "x"},
		},
	}
	fns := FindFunctionLike(root)
	require.Len(t, fns, 2)
}
