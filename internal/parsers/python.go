package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/stencil/internal/extraction"
)

var (
	pyClassPattern  = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*(?:\[[^\]]*\])?\s*(?:\((.*)\))?\s*:`)
	pyDefPattern    = regexp.MustCompile(`^(?:async\s+)?def\s+`)
	pyStringPattern = regexp.MustCompile(`^(?i:[rbfu]{0,2})(?:"|')`)
	pyIdentPattern  = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// Block keywords that look like "name: value" on a single line.
var pyKeywords = map[string]bool{
	"else": true, "try": true, "finally": true, "except": true, "lambda": true,
	"with": true, "while": true, "for": true, "if": true, "elif": true,
	"return": true, "match": true, "case": true, "class": true, "def": true,
}

// pythonParser extracts interfaces from Python source without a syntax tree.
// Block structure is recovered from indentation, so results are best-effort.
type pythonParser struct{}

// NewPythonParser creates a new Python parser.
func NewPythonParser() *pythonParser {
	return &pythonParser{}
}

// Language returns "python".
func (p *pythonParser) Language() string {
	return "python"
}

// Extract renders every class in source as an interface block. It never fails.
func (p *pythonParser) Extract(source []byte, opts extraction.Options) (string, error) {
	return renderPythonClasses(p.classes(source), opts), nil
}

// pyMemberKind distinguishes attributes from methods.
type pyMemberKind int

const (
	pyAttribute pyMemberKind = iota
	pyMethod
)

// pyMember is a class attribute or method with types already mapped.
type pyMember struct {
	Kind       pyMemberKind
	Name       string
	Params     []string
	Type       string // attribute type or method return type
	Decorators []string
	Private    bool
}

// pyClass is one class block in document order.
type pyClass struct {
	Name    string
	Bases   string
	Doc     string
	Members []pyMember
}

// pythonScan holds the state of one forward pass over a file.
type pythonScan struct {
	cur     *lineCursor
	classes []pyClass

	// Indentation of the open class header; valid while inScope.
	classIndent int
	inScope     bool

	// Indentation of the last def; lines deeper than this are its body.
	methodIndent int
	inMethod     bool

	decorators []string
}

// classes scans source and returns its classes in document order.
func (p *pythonParser) classes(source []byte) []pyClass {
	s := &pythonScan{cur: newLineCursor(string(source))}
	s.run()
	return s.classes
}

func (s *pythonScan) run() {
	for {
		line, ok := s.cur.next()
		if !ok {
			return
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Physical lines belonging to the same statement never count toward
		// indentation, whatever column they start at.
		stmt := s.statement(trimmed)
		if pyStringPattern.MatchString(trimmed) {
			continue
		}

		indent := indentation(line)

		if strings.HasPrefix(trimmed, "class ") || strings.HasPrefix(trimmed, "class\t") {
			if s.openClass(stmt, indent) {
				continue
			}
		}

		if !s.inScope || indent <= s.classIndent {
			s.leaveScope()
			continue
		}

		if s.inMethod {
			if indent > s.methodIndent {
				continue
			}
			s.inMethod = false
		}

		switch {
		case strings.HasPrefix(trimmed, "@"):
			s.decorators = append(s.decorators, stmt)
		case pyDefPattern.MatchString(trimmed):
			s.method(stmt, indent)
		default:
			s.attribute(stmt)
			s.decorators = nil
		}
	}
}

// statement joins the physical lines of the logical line starting at first.
// Open brackets, unterminated triple-quoted strings and trailing backslashes
// pull in the lines that follow. Comments are removed.
func (s *pythonScan) statement(first string) string {
	delim, balance, cont := scanLogicalLine(first, "")
	text := stripComment(first)

	for delim != "" || balance > 0 || cont {
		line, ok := s.cur.next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		inString := delim != ""

		var depth int
		delim, depth, cont = scanLogicalLine(trimmed, delim)
		balance += depth
		if !inString {
			trimmed = stripComment(trimmed)
		}

		text = strings.TrimRight(strings.TrimSuffix(strings.TrimRight(text, " \t"), "\\"), " \t")
		text += " " + trimmed
	}
	return text
}

// openClass starts a new interface block for a class header line.
func (s *pythonScan) openClass(header string, indent int) bool {
	match := pyClassPattern.FindStringSubmatch(header)
	if match == nil {
		return false
	}

	class := pyClass{Name: match[1], Bases: strings.TrimSpace(match[2])}
	s.classIndent = indent
	s.inScope = true
	s.inMethod = false
	s.decorators = nil

	// A docstring on the next non-blank line belongs to the class.
	if next, n, ok := s.cur.peekNonBlank(); ok && isTripleQuoted(strings.TrimSpace(next)) {
		s.cur.advance(n)
		class.Doc = s.readTripleQuoted(strings.TrimSpace(next))
	}

	s.classes = append(s.classes, class)
	return true
}

// leaveScope ends member attribution until the next class header.
func (s *pythonScan) leaveScope() {
	s.inScope = false
	s.inMethod = false
	s.decorators = nil
}

func (s *pythonScan) current() *pyClass {
	return &s.classes[len(s.classes)-1]
}

// method parses a def header and records it on the current class.
func (s *pythonScan) method(header string, indent int) {
	s.inMethod = true
	s.methodIndent = indent
	decorators := s.decorators
	s.decorators = nil

	name, params, ret, ok := parseDef(header)
	if !ok {
		return
	}

	classMethod := false
	for _, d := range decorators {
		if d == "@classmethod" {
			classMethod = true
		}
	}

	ret = strings.TrimSpace(ret)
	if ret == "" {
		ret = "void"
	} else {
		ret = MapPythonType(ret)
	}

	s.current().Members = append(s.current().Members, pyMember{
		Kind:       pyMethod,
		Name:       name,
		Params:     formatPythonParams(params, classMethod),
		Type:       ret,
		Decorators: decorators,
		Private:    isPrivatePythonName(name),
	})
}

// attribute records a "name: Type [= value]" line on the current class.
func (s *pythonScan) attribute(line string) {
	line = stripComment(line)
	colon := indexTopLevel(line, ':')
	if colon <= 0 {
		return
	}

	name := strings.TrimSpace(line[:colon])
	if !pyIdentPattern.MatchString(name) || pyKeywords[name] {
		return
	}

	typ := line[colon+1:]
	if eq := indexTopLevel(typ, '='); eq >= 0 {
		typ = typ[:eq]
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return
	}

	s.current().Members = append(s.current().Members, pyMember{
		Kind:    pyAttribute,
		Name:    name,
		Type:    MapPythonType(typ),
		Private: isPrivatePythonName(name),
	})
}

// readTripleQuoted consumes a triple-quoted string starting on first and
// returns its text without the quotes.
func (s *pythonScan) readTripleQuoted(first string) string {
	body := strings.TrimLeft(first, "rbfuRBFU")
	delim := body[:3]
	body = body[3:]

	if end := strings.Index(body, delim); end >= 0 {
		return strings.TrimSpace(body[:end])
	}

	lines := []string{strings.TrimSpace(body)}
	for {
		line, ok := s.cur.next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if end := strings.Index(trimmed, delim); end >= 0 {
			lines = append(lines, strings.TrimSpace(trimmed[:end]))
			break
		}
		lines = append(lines, trimmed)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isTripleQuoted(trimmed string) bool {
	body := strings.TrimLeft(trimmed, "rbfuRBFU")
	if len(trimmed)-len(body) > 2 {
		return false
	}
	return strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)
}

// isPrivatePythonName reports whether name is private by convention.
// Dunder names such as __init__ are public.
func isPrivatePythonName(name string) bool {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return false
	}
	return strings.HasPrefix(name, "_")
}

// parseDef splits "def name(params) -> ret:" into its parts. Params may
// contain nested brackets and strings.
func parseDef(header string) (name, params, ret string, ok bool) {
	text := strings.TrimSpace(header)
	text = strings.TrimSpace(strings.TrimPrefix(text, "async"))
	text = strings.TrimSpace(strings.TrimPrefix(text, "def"))

	open := strings.IndexByte(text, '(')
	if open <= 0 {
		return "", "", "", false
	}
	name = strings.TrimSpace(text[:open])
	if bracket := strings.IndexByte(name, '['); bracket > 0 {
		// PEP 695 type parameters: def first[T](...)
		name = strings.TrimSpace(name[:bracket])
	}
	if !pyIdentPattern.MatchString(name) {
		return "", "", "", false
	}

	closing := matchingClose(text, open)
	if closing < 0 {
		return "", "", "", false
	}
	params = text[open+1 : closing]

	rest := strings.TrimSpace(text[closing+1:])
	if strings.HasPrefix(rest, "->") {
		rest = rest[2:]
		if colon := indexTopLevel(rest, ':'); colon >= 0 {
			ret = rest[:colon]
		} else {
			ret = rest
		}
	}
	return name, params, strings.TrimSpace(ret), true
}

// formatPythonParams renders a def parameter list. The leading self (or cls
// for class methods) is dropped.
func formatPythonParams(params string, classMethod bool) []string {
	if strings.TrimSpace(params) == "" {
		return nil
	}

	var out []string
	for i, param := range splitTopLevel(params, ',', false) {
		if param == "" || param == "*" || param == "/" {
			continue
		}
		if i == 0 && (param == "self" || classMethod && param == "cls") {
			continue
		}
		out = append(out, formatPythonParam(param))
	}
	return out
}

// formatPythonParam renders "name[: type][= default]".
func formatPythonParam(param string) string {
	def := ""
	if eq := indexTopLevel(param, '='); eq >= 0 {
		def = strings.TrimSpace(param[eq+1:])
		param = param[:eq]
	}

	name, typ := param, ""
	if colon := indexTopLevel(param, ':'); colon >= 0 {
		name, typ = param[:colon], param[colon+1:]
	}
	name = strings.TrimSpace(name)
	typ = strings.TrimSpace(typ)

	mapped := "any"
	if typ != "" {
		mapped = MapPythonType(typ)
	}

	switch {
	case strings.HasPrefix(name, "**"):
		return strings.TrimPrefix(name, "**") + "?: Record<string, " + mapped + ">"
	case strings.HasPrefix(name, "*"):
		return "..." + strings.TrimPrefix(name, "*") + ": Array<" + mapped + ">"
	case def != "":
		return name + "?: " + mapped
	default:
		return name + ": " + mapped
	}
}

// renderPythonClasses renders classes as balanced interface blocks.
func renderPythonClasses(classes []pyClass, opts extraction.Options) string {
	var lines []string
	for _, class := range classes {
		lines = append(lines, "interface "+class.Name+" {")
		for _, m := range class.Members {
			if m.Private && !opts.IncludePrivate {
				continue
			}
			switch m.Kind {
			case pyMethod:
				if opts.IncludeDecorators {
					for _, d := range m.Decorators {
						lines = append(lines, "    "+d)
					}
				}
				lines = append(lines, "    "+m.Name+"("+strings.Join(m.Params, ", ")+"): "+m.Type)
			default:
				lines = append(lines, "    "+m.Name+": "+m.Type)
			}
		}
		lines = append(lines, "}")
	}
	return strings.Join(lines, "\n")
}
