package ast

// Kind discriminates the node tags the core recognizes. Every tag named in
// the contract has a constant here; anything a parser adapter encounters
// outside this set is folded into KindOther and carries its raw type name.
type Kind string

const (
	KindFunctionDeclaration     Kind = "FunctionDeclaration"
	KindFunctionExpression      Kind = "FunctionExpression"
	KindArrowFunctionExpression Kind = "ArrowFunctionExpression"
	KindIdentifier              Kind = "Identifier"
	KindVariableDeclaration     Kind = "VariableDeclaration"
	KindVariableDeclarator      Kind = "VariableDeclarator"
	KindCallExpression          Kind = "CallExpression"
	KindMemberExpression        Kind = "MemberExpression"
	KindForStatement            Kind = "ForStatement"
	KindWhileStatement          Kind = "WhileStatement"
	KindDoWhileStatement        Kind = "DoWhileStatement"
	KindForInStatement          Kind = "ForInStatement"
	KindForOfStatement          Kind = "ForOfStatement"
	KindIfStatement             Kind = "IfStatement"
	KindOther                   Kind = "Other"
)

// loopKinds is the set recognized by FindLoops.
var loopKinds = map[Kind]bool{
	KindForStatement:     true,
	KindWhileStatement:   true,
	KindDoWhileStatement: true,
	KindForInStatement:   true,
	KindForOfStatement:   true,
}

// functionLikeKinds is the set recognized by FindFunctionLike.
var functionLikeKinds = map[Kind]bool{
	KindFunctionDeclaration:     true,
	KindFunctionExpression:      true,
	KindArrowFunctionExpression: true,
}

// Node is the tagged-union AST node. Every producer of a tree populates Type
// and, where meaningful, the fields below; fields irrelevant to a given Type
// are left zero. RawType carries the parser's own node type name when Type
// is KindOther — the open-ended escape hatch named in the contract.
type Node struct {
	Type     Kind            `json:"type"`
	RawType  string          `json:"rawType,omitempty"`
	Loc      *SourceLocation `json:"loc,omitempty"`
	Range    *ByteRange      `json:"range,omitempty"`
	Children []*Node         `json:"children,omitempty"`

	// Name carries an Identifier's text, a FunctionDeclaration's/
	// FunctionExpression's name (empty for anonymous), or a
	// VariableDeclarator's bound name.
	Name string `json:"name,omitempty"`

	// Callee/Property describe a CallExpression or MemberExpression: for
	// `a.b()`, Callee is the MemberExpression node, and its Property is
	// "b"; for a bare `f()`, Callee is the Identifier node whose Name is
	// "f", and the CallExpression's Property is left empty.
	Callee   *Node  `json:"callee,omitempty"`
	Object   *Node  `json:"object,omitempty"`
	Property string `json:"property,omitempty"`

	// Arguments holds a CallExpression's argument nodes in order.
	Arguments []*Node `json:"arguments,omitempty"`

	// Init holds a VariableDeclarator's initializer, if any.
	Init *Node `json:"init,omitempty"`

	// DeclKind distinguishes VariableDeclaration flavors ("var"/"let"/"const")
	// and records whether a for-in/of loop used `in` or `of` ("in" on a
	// ForInStatement, "of" on a ForOfStatement).
	DeclKind string `json:"declKind,omitempty"`

	// TypeAnnotation carries a TS type annotation's literal text (e.g.
	// "any", "unknown", "string") for Identifier and VariableDeclarator
	// nodes, a parameter's declared type, and a function-like node's
	// declared return type. Empty when the language has no annotation or
	// none was given.
	TypeAnnotation string `json:"typeAnnotation,omitempty"`

	// Body holds a function-like node's or loop's/if's block body, when
	// the caller needs to traverse into it explicitly rather than via
	// Children (Body is also included in Children).
	Body *Node `json:"body,omitempty"`
}

// IsLoop reports whether the node is one of the loop tags.
func (n *Node) IsLoop() bool {
	return n != nil && loopKinds[n.Type]
}

// IsFunctionLike reports whether the node is one of the function tags.
func (n *Node) IsFunctionLike() bool {
	return n != nil && functionLikeKinds[n.Type]
}
