package extraction

// DeclarationKind identifies a top-level declaration.
type DeclarationKind int

const (
	KindClass DeclarationKind = iota
	KindFunction
	KindInterface
	KindTypeAlias
	KindEnum
)

func (k DeclarationKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindInterface:
		return "interface"
	case KindTypeAlias:
		return "type"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Declaration is one top-level (or namespace-nested) declaration, in document order.
type Declaration struct {
	Kind       DeclarationKind
	Name       string
	Exported   bool
	Modifiers  []string // e.g. "export", "default", "declare", "abstract", "async"
	Decorators []string
	Doc        string // canonical doc comment block, empty when absent
	TypeParams []TypeParam
	Heritage   string // class heritage clauses, verbatim
	Generator  bool

	// Class only.
	Members []Member

	// Function only.
	Params     []Param
	ReturnType string

	// Interface, type alias and enum are re-emitted verbatim.
	Text string
}

// MemberKind identifies a class member.
type MemberKind int

const (
	MemberProperty MemberKind = iota
	MemberMethod
	MemberConstructor
)

// Member is a class property, method or constructor.
type Member struct {
	Kind       MemberKind
	Name       string
	Modifiers  []string
	Decorators []string
	Doc        string
	Optional   bool
	Private    bool
	TypeParams []TypeParam
	Params     []Param
	Type       string // property type or method return type
}

// Param is a single function or method parameter. Type and Default hold the
// source text as written.
type Param struct {
	Decorators []string
	Modifiers  []string
	Name       string
	Optional   bool
	Type       string
	Default    string
}

// TypeParam is a generic type parameter with optional constraint and default.
type TypeParam struct {
	Name       string
	Constraint string
	Default    string
}
