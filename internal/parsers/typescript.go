package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// typeScriptParser extracts interfaces from TypeScript and JavaScript sources
// by walking a full tree-sitter syntax tree.
type typeScriptParser struct {
	*treeSitterParser
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *typeScriptParser {
	lang := sitter.NewLanguage(typescript.LanguageTypescript())
	return &typeScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "typescript"),
	}
}

// NewTSXParser creates a parser for TypeScript with JSX.
func NewTSXParser() *typeScriptParser {
	lang := sitter.NewLanguage(typescript.LanguageTSX())
	return &typeScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "tsx"),
	}
}

// NewJavaScriptParser creates a parser for JavaScript (JSX included). The walk
// is shared with TypeScript; the grammars differ only in node names the
// extractor already accounts for.
func NewJavaScriptParser() *typeScriptParser {
	lang := sitter.NewLanguage(javascript.Language())
	return &typeScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "javascript"),
	}
}

// Language returns the grammar name.
func (p *typeScriptParser) Language() string {
	return p.lang
}

// Extract parses source and renders its interface.
func (p *typeScriptParser) Extract(source []byte, opts extraction.Options) (string, error) {
	decls, err := p.Declarations(source)
	if err != nil {
		return "", err
	}
	return renderDeclarations(decls, opts), nil
}

// Declarations returns every class, function, interface, type alias and enum
// declaration in document order, unfiltered.
func (p *typeScriptParser) Declarations(source []byte) ([]extraction.Declaration, error) {
	tree, err := p.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var decls []extraction.Declaration
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_declaration", "abstract_class_declaration":
			if decl, ok := p.extractClass(n, source); ok {
				decls = append(decls, decl)
			}
			// Members are enumerated by extractClass.
			return false
		case "class":
			// Anonymous classes count only as a default export.
			if parent := n.Parent(); parent == nil || parent.Kind() != "export_statement" {
				return true
			}
			if decl, ok := p.extractClass(n, source); ok {
				decls = append(decls, decl)
			}
			return false
		case "function_declaration", "generator_function_declaration", "function_signature":
			if decl, ok := p.extractFunction(n, source); ok {
				decls = append(decls, decl)
			}
		case "interface_declaration":
			if decl, ok := p.extractVerbatim(n, source, extraction.KindInterface); ok {
				decls = append(decls, decl)
			}
		case "type_alias_declaration":
			if decl, ok := p.extractVerbatim(n, source, extraction.KindTypeAlias); ok {
				decls = append(decls, decl)
			}
		case "enum_declaration":
			if decl, ok := p.extractVerbatim(n, source, extraction.KindEnum); ok {
				decls = append(decls, decl)
			}
		}
		return true
	})

	return decls, nil
}

// declContext describes the wrappers (export, declare) around a declaration node.
type declContext struct {
	exported   bool
	modifiers  []string
	decorators []string
	anchor     *sitter.Node // outermost wrapper; doc comments precede it
}

// context collects export/declare wrappers by walking up from node.
func (p *typeScriptParser) context(node *sitter.Node, source []byte) declContext {
	ctx := declContext{anchor: node}

	parent := node.Parent()
walk:
	for parent != nil {
		switch parent.Kind() {
		case "ambient_declaration":
			// Ambient declarations describe existing public API.
			ctx.exported = true
			ctx.modifiers = append([]string{"declare"}, ctx.modifiers...)
		case "export_statement":
			ctx.exported = true
			mods := []string{"export"}
			if findChildByType(parent, "default") != nil {
				mods = append(mods, "default")
			}
			ctx.modifiers = append(mods, ctx.modifiers...)
			var decorators []string
			for _, d := range findChildrenByType(parent, "decorator") {
				decorators = append(decorators, extractNodeText(d, source))
			}
			ctx.decorators = append(decorators, ctx.decorators...)
		default:
			break walk
		}
		ctx.anchor = parent
		parent = parent.Parent()
	}

	return ctx
}

// docComment returns the canonical doc comment immediately preceding node,
// skipping over decorators that sit between the comment and the node.
func (p *typeScriptParser) docComment(node *sitter.Node, source []byte) string {
	prev := node.PrevSibling()
	for prev != nil && prev.Kind() == "decorator" {
		prev = prev.PrevSibling()
	}
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	text := extractNodeText(prev, source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return formatDocComment(text)
}

// extractClass extracts a class declaration and its members.
func (p *typeScriptParser) extractClass(node *sitter.Node, source []byte) (extraction.Declaration, bool) {
	var name string
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = extractNodeText(nameNode, source)
	}
	if name == "" && node.Kind() != "class" {
		return extraction.Declaration{}, false
	}

	ctx := p.context(node, source)
	decl := extraction.Declaration{
		Kind:       extraction.KindClass,
		Name:       name,
		Exported:   ctx.exported,
		Modifiers:  ctx.modifiers,
		Decorators: ctx.decorators,
		Doc:        p.docComment(ctx.anchor, source),
		TypeParams: p.typeParameters(node.ChildByFieldName("type_parameters"), source),
	}

	for _, d := range findChildrenByType(node, "decorator") {
		decl.Decorators = append(decl.Decorators, extractNodeText(d, source))
	}
	if node.Kind() == "abstract_class_declaration" {
		decl.Modifiers = append(decl.Modifiers, "abstract")
	}
	if heritage := findChildByType(node, "class_heritage"); heritage != nil {
		decl.Heritage = extractNodeText(heritage, source)
	}

	decl.Members = p.classMembers(node.ChildByFieldName("body"), source)
	return decl, true
}

// classMembers enumerates properties, methods and constructors of a class body.
func (p *typeScriptParser) classMembers(body *sitter.Node, source []byte) []extraction.Member {
	if body == nil {
		return nil
	}

	var members []extraction.Member
	// In the TypeScript grammar method decorators are siblings in the class body.
	var pending []string

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		switch child.Kind() {
		case "comment":
			continue
		case "decorator":
			pending = append(pending, extractNodeText(child, source))
			continue
		case "method_definition", "method_signature", "abstract_method_signature":
			if m, ok := p.extractMethod(child, source); ok {
				m.Decorators = append(pending, m.Decorators...)
				members = append(members, m)
			}
		case "public_field_definition", "field_definition":
			if m, ok := p.extractProperty(child, source); ok {
				m.Decorators = append(pending, m.Decorators...)
				members = append(members, m)
			}
		}
		pending = nil
	}

	return members
}

// memberHead collects decorators and modifier keywords that precede a member's name.
func (p *typeScriptParser) memberHead(node, nameNode *sitter.Node, source []byte, m *extraction.Member) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.StartByte() >= nameNode.StartByte() {
			break
		}
		switch child.Kind() {
		case "comment":
		case "decorator":
			m.Decorators = append(m.Decorators, extractNodeText(child, source))
		case "accessibility_modifier":
			text := extractNodeText(child, source)
			if text == "private" || text == "protected" {
				m.Private = true
			}
			m.Modifiers = append(m.Modifiers, text)
		default:
			if text := extractNodeText(child, source); text != "" {
				m.Modifiers = append(m.Modifiers, text)
			}
		}
	}
	if nameNode.Kind() == "private_property_identifier" {
		m.Private = true
	}
}

// extractMethod extracts a method, method signature or constructor.
func (p *typeScriptParser) extractMethod(node *sitter.Node, source []byte) (extraction.Member, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return extraction.Member{}, false
	}
	name := extractNodeText(nameNode, source)
	if name == "" {
		return extraction.Member{}, false
	}

	m := extraction.Member{
		Kind: extraction.MemberMethod,
		Name: name,
		Doc:  p.docComment(node, source),
	}
	if name == "constructor" {
		m.Kind = extraction.MemberConstructor
	}
	p.memberHead(node, nameNode, source, &m)

	m.Optional = findChildByType(node, "?") != nil
	m.TypeParams = p.typeParameters(node.ChildByFieldName("type_parameters"), source)
	m.Params = p.parameters(node.ChildByFieldName("parameters"), source)
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		m.Type = annotationText(ret, source)
	}

	return m, true
}

// extractProperty extracts a class field.
func (p *typeScriptParser) extractProperty(node *sitter.Node, source []byte) (extraction.Member, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		// JavaScript field_definition uses "property".
		nameNode = node.ChildByFieldName("property")
	}
	if nameNode == nil {
		return extraction.Member{}, false
	}
	name := extractNodeText(nameNode, source)
	if name == "" {
		return extraction.Member{}, false
	}

	m := extraction.Member{
		Kind: extraction.MemberProperty,
		Name: name,
		Doc:  p.docComment(node, source),
	}
	p.memberHead(node, nameNode, source, &m)

	m.Optional = findChildByType(node, "?") != nil
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		m.Type = annotationText(typeNode, source)
	}

	return m, true
}

// extractFunction extracts a standalone function declaration or signature.
func (p *typeScriptParser) extractFunction(node *sitter.Node, source []byte) (extraction.Declaration, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return extraction.Declaration{}, false
	}
	name := extractNodeText(nameNode, source)
	if name == "" {
		return extraction.Declaration{}, false
	}

	ctx := p.context(node, source)
	decl := extraction.Declaration{
		Kind:       extraction.KindFunction,
		Name:       name,
		Exported:   ctx.exported,
		Modifiers:  ctx.modifiers,
		Doc:        p.docComment(ctx.anchor, source),
		Generator:  node.Kind() == "generator_function_declaration",
		TypeParams: p.typeParameters(node.ChildByFieldName("type_parameters"), source),
		Params:     p.parameters(node.ChildByFieldName("parameters"), source),
	}
	if findChildByType(node, "async") != nil {
		decl.Modifiers = append(decl.Modifiers, "async")
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		decl.ReturnType = annotationText(ret, source)
	}

	return decl, true
}

// extractVerbatim extracts an interface, type alias or enum as source text.
func (p *typeScriptParser) extractVerbatim(node *sitter.Node, source []byte, kind extraction.DeclarationKind) (extraction.Declaration, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return extraction.Declaration{}, false
	}

	ctx := p.context(node, source)
	return extraction.Declaration{
		Kind:      kind,
		Name:      extractNodeText(nameNode, source),
		Exported:  ctx.exported,
		Modifiers: ctx.modifiers,
		Doc:       p.docComment(ctx.anchor, source),
		Text:      extractNodeText(node, source),
	}, true
}

// typeParameters extracts type parameters from a type_parameters node.
func (p *typeScriptParser) typeParameters(node *sitter.Node, source []byte) []extraction.TypeParam {
	if node == nil {
		return nil
	}

	var params []extraction.TypeParam
	for _, child := range findChildrenByType(node, "type_parameter") {
		tp := extraction.TypeParam{
			Name: extractNodeText(child.ChildByFieldName("name"), source),
		}
		if constraint := child.ChildByFieldName("constraint"); constraint != nil {
			tp.Constraint = extractNodeText(firstNamedChild(constraint), source)
		}
		if def := child.ChildByFieldName("value"); def != nil {
			tp.Default = extractNodeText(firstNamedChild(def), source)
		}
		if tp.Name != "" {
			params = append(params, tp)
		}
	}
	return params
}

// parameters extracts parameters from a formal_parameters node.
func (p *typeScriptParser) parameters(node *sitter.Node, source []byte) []extraction.Param {
	if node == nil {
		return nil
	}

	var params []extraction.Param
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		switch child.Kind() {
		case "comment":
			continue
		case "required_parameter", "optional_parameter":
			params = append(params, p.typedParameter(child, source))
		case "assignment_pattern":
			params = append(params, extraction.Param{
				Name:    extractNodeText(child.ChildByFieldName("left"), source),
				Default: extractNodeText(child.ChildByFieldName("right"), source),
			})
		default:
			// identifier, rest_pattern, object_pattern, array_pattern
			params = append(params, extraction.Param{Name: extractNodeText(child, source)})
		}
	}
	return params
}

// typedParameter extracts a TypeScript required_parameter or optional_parameter.
func (p *typeScriptParser) typedParameter(node *sitter.Node, source []byte) extraction.Param {
	param := extraction.Param{
		Optional: node.Kind() == "optional_parameter",
	}

	pattern := node.ChildByFieldName("pattern")
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if pattern != nil && child.StartByte() >= pattern.StartByte() {
			break
		}
		switch child.Kind() {
		case "decorator":
			param.Decorators = append(param.Decorators, extractNodeText(child, source))
		case "accessibility_modifier", "override_modifier", "readonly":
			param.Modifiers = append(param.Modifiers, extractNodeText(child, source))
		}
	}

	param.Name = extractNodeText(pattern, source)
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		param.Type = annotationText(typeNode, source)
	}
	if value := node.ChildByFieldName("value"); value != nil {
		param.Default = extractNodeText(value, source)
	}
	return param
}
