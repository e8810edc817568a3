package ast

// FindAll returns every node of the given kind, in document order.
func FindAll(root *Node, kind Kind) []*Node {
	var out []*Node
	Walk(root, func(n *Node) VisitResult {
		if n.Type == kind {
			out = append(out, n)
		}
		return Continue
	})
	return out
}

// FindLoops returns every loop node (for/while/do-while/for-in/for-of), in
// document order.
func FindLoops(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) VisitResult {
		if n.IsLoop() {
			out = append(out, n)
		}
		return Continue
	})
	return out
}

// FindFunctionLike returns every function declaration, function expression,
// and arrow function, in document order.
func FindFunctionLike(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) VisitResult {
		if n.IsFunctionLike() {
			out = append(out, n)
		}
		return Continue
	})
	return out
}

// FindCalls returns every CallExpression whose callee resolves to name —
// either a bare identifier call (`name()`) or a member call whose property
// is name (`x.name()`), in document order.
func FindCalls(root *Node, name string) []*Node {
	var out []*Node
	Walk(root, func(n *Node) VisitResult {
		if n.Type == KindCallExpression && calleeName(n) == name {
			out = append(out, n)
		}
		return Continue
	})
	return out
}

// calleeName extracts the effective callee name of a CallExpression: the
// member-expression property for `x.y()`, or the bare identifier for `f()`.
func calleeName(call *Node) string {
	if call.Callee == nil {
		return ""
	}
	switch call.Callee.Type {
	case KindMemberExpression:
		return call.Callee.Property
	case KindIdentifier:
		return call.Callee.Name
	default:
		return call.Callee.Property
	}
}
