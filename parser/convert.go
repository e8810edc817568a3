package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sentinel-refactor/ast"
)

// convert walks a tree-sitter node tree in document order and builds the
// equivalent ast.Node tree. Node types tree-sitter emits that the core
// does not name a tag for are folded into ast.KindOther, carrying the raw
// grammar type name — the open-ended escape hatch named in the contract.
func convert(n *sitter.Node, source string, lang ast.Language) *ast.Node {
	if n == nil {
		return nil
	}

	node := &ast.Node{
		Loc:   location(n),
		Range: &ast.ByteRange{Start: int(n.StartByte()), End: int(n.EndByte())},
	}

	switch n.Type() {
	case "function_declaration":
		node.Type = ast.KindFunctionDeclaration
		node.Name = childText(n, source, "name")
		if lang == ast.LanguageTS {
			node.TypeAnnotation = functionReturnTypeText(n, source)
		}
	case "function", "function_expression", "generator_function", "generator_function_declaration":
		node.Type = ast.KindFunctionExpression
		node.Name = childText(n, source, "name")
		if lang == ast.LanguageTS {
			node.TypeAnnotation = functionReturnTypeText(n, source)
		}
	case "arrow_function":
		node.Type = ast.KindArrowFunctionExpression
		if lang == ast.LanguageTS {
			node.TypeAnnotation = functionReturnTypeText(n, source)
		}
	case "required_parameter", "optional_parameter":
		// A TS formal parameter: the `type` field sits beside the name
		// pattern on the parameter node itself, not underneath it, so the
		// annotation has to be read here rather than from the identifier
		// case below.
		node.Type = ast.KindIdentifier
		node.Name = parameterNameText(n, source)
		if lang == ast.LanguageTS {
			node.TypeAnnotation = typeAnnotationText(n, source)
		}
	case "identifier", "property_identifier", "shorthand_property_identifier", "type_identifier":
		node.Type = ast.KindIdentifier
		node.Name = safeSlice(source, n.StartByte(), n.EndByte())
		if lang == ast.LanguageTS {
			node.TypeAnnotation = typeAnnotationText(n, source)
		}
	case "variable_declaration", "lexical_declaration":
		node.Type = ast.KindVariableDeclaration
		node.DeclKind = declarationKind(n, source)
	case "variable_declarator":
		node.Type = ast.KindVariableDeclarator
		node.Name = childText(n, source, "name")
		if init := n.ChildByFieldName("value"); init != nil {
			node.Init = convert(init, source, lang)
		}
		if lang == ast.LanguageTS {
			node.TypeAnnotation = typeAnnotationText(n, source)
		}
	case "call_expression":
		node.Type = ast.KindCallExpression
		if callee := n.ChildByFieldName("function"); callee != nil {
			node.Callee = convert(callee, source, lang)
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				node.Arguments = append(node.Arguments, convert(args.NamedChild(i), source, lang))
			}
		}
	case "member_expression":
		node.Type = ast.KindMemberExpression
		if obj := n.ChildByFieldName("object"); obj != nil {
			node.Object = convert(obj, source, lang)
		}
		if prop := n.ChildByFieldName("property"); prop != nil {
			node.Property = safeSlice(source, prop.StartByte(), prop.EndByte())
		}
	case "for_statement":
		node.Type = ast.KindForStatement
	case "while_statement":
		node.Type = ast.KindWhileStatement
	case "do_statement":
		node.Type = ast.KindDoWhileStatement
	case "for_in_statement":
		if forInOperatorIsOf(n, source) {
			node.Type = ast.KindForOfStatement
			node.DeclKind = "of"
		} else {
			node.Type = ast.KindForInStatement
			node.DeclKind = "in"
		}
	case "if_statement":
		node.Type = ast.KindIfStatement
	default:
		node.Type = ast.KindOther
		node.RawType = n.Type()
	}

	if body := n.ChildByFieldName("body"); body != nil {
		node.Body = convert(body, source, lang)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := convert(n.NamedChild(i), source, lang)
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}

	return node
}

func location(n *sitter.Node) *ast.SourceLocation {
	start := n.StartPoint()
	end := n.EndPoint()
	return &ast.SourceLocation{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column),
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column),
	}
}

func childText(n *sitter.Node, source, field string) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return safeSlice(source, child.StartByte(), child.EndByte())
}

// declarationKind reads the leading "var"/"let"/"const" token of a
// variable/lexical declaration.
func declarationKind(n *sitter.Node, source string) string {
	if n.ChildCount() == 0 {
		return ""
	}
	first := n.Child(0)
	return safeSlice(source, first.StartByte(), first.EndByte())
}

// typeAnnotationText reads the literal text of a TS type_annotation child
// (e.g. ": any" -> "any"), stripping the leading colon and whitespace.
func typeAnnotationText(n *sitter.Node, source string) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "type_annotation" {
			text := safeSlice(source, child.StartByte(), child.EndByte())
			return stripAnnotationPrefix(text)
		}
	}
	return ""
}

// parameterNameText reads a required_parameter/optional_parameter node's
// bound identifier, the way the teacher's extractJavaScriptParameter walks
// a parameter node's children by type rather than by field name.
func parameterNameText(n *sitter.Node, source string) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "identifier" {
			return safeSlice(source, child.StartByte(), child.EndByte())
		}
	}
	return ""
}

// functionReturnTypeText reads a function-like node's declared return type,
// the type_annotation that follows its formal_parameters child, the way
// the teacher's extractTypeScriptReturnType locates it.
func functionReturnTypeText(n *sitter.Node, source string) string {
	foundParams := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "formal_parameters" {
			foundParams = true
			continue
		}
		if foundParams && child.Type() == "type_annotation" {
			return stripAnnotationPrefix(safeSlice(source, child.StartByte(), child.EndByte()))
		}
	}
	return ""
}

func stripAnnotationPrefix(text string) string {
	for len(text) > 0 && (text[0] == ':' || text[0] == ' ') {
		text = text[1:]
	}
	return text
}

// forInOperatorIsOf distinguishes `for (x of y)` from `for (x in y)`: both
// parse as for_in_statement in the grammar, with an "in"/"of" token between
// the left and right children.
func forInOperatorIsOf(n *sitter.Node, source string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		text := safeSlice(source, child.StartByte(), child.EndByte())
		if text == "of" {
			return true
		}
		if text == "in" {
			return false
		}
	}
	return false
}
