package parsers

import (
	"strings"

	"github.com/mvp-joe/stencil/internal/extraction"
)

const memberIndent = "  "

// renderDeclarations renders declarations as interface text. Every declaration
// is followed by a blank line; a class block is always closed.
func renderDeclarations(decls []extraction.Declaration, opts extraction.Options) string {
	var lines []string

	for _, decl := range decls {
		if !decl.Exported && !opts.IncludePrivate {
			continue
		}

		if opts.IncludeDecorators && decl.Doc != "" {
			lines = append(lines, decl.Doc)
		}

		switch decl.Kind {
		case extraction.KindClass:
			lines = append(lines, renderClass(decl, opts)...)
		case extraction.KindFunction:
			lines = append(lines, renderFunction(decl, opts)+";")
		default:
			lines = append(lines, renderModifiers(decl.Modifiers, opts)+decl.Text)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// renderModifiers joins modifiers with a trailing space each, dropping export
// unless requested.
func renderModifiers(mods []string, opts extraction.Options) string {
	var b strings.Builder
	for _, mod := range mods {
		if mod == "export" && !opts.IncludeExportKeyword {
			continue
		}
		b.WriteString(mod)
		b.WriteByte(' ')
	}
	return b.String()
}

func renderClass(decl extraction.Declaration, opts extraction.Options) []string {
	var lines []string

	if opts.IncludeDecorators {
		lines = append(lines, decl.Decorators...)
	}

	header := renderModifiers(decl.Modifiers, opts) + "class"
	if decl.Name != "" {
		header += " " + decl.Name
	}
	header += renderTypeParams(decl.TypeParams)
	if decl.Heritage != "" {
		header += " " + decl.Heritage
	}
	lines = append(lines, header+" {")

	for _, m := range decl.Members {
		if m.Private && !opts.IncludePrivate {
			continue
		}
		if opts.IncludeDecorators {
			if m.Doc != "" {
				lines = append(lines, indentBlock(m.Doc, memberIndent))
			}
			for _, d := range m.Decorators {
				lines = append(lines, memberIndent+d)
			}
		}
		lines = append(lines, memberIndent+renderMember(m, opts))
	}

	lines = append(lines, "}")
	return lines
}

func renderMember(m extraction.Member, opts extraction.Options) string {
	var b strings.Builder
	for _, mod := range m.Modifiers {
		b.WriteString(mod)
		b.WriteByte(' ')
	}

	b.WriteString(m.Name)
	if m.Optional {
		b.WriteByte('?')
	}

	switch m.Kind {
	case extraction.MemberProperty:
		if m.Type != "" {
			b.WriteString(": " + m.Type)
		}
	case extraction.MemberConstructor:
		b.WriteString("(" + renderParams(m.Params, opts) + ")")
	default:
		b.WriteString(renderTypeParams(m.TypeParams))
		b.WriteString("(" + renderParams(m.Params, opts) + ")")
		if m.Type != "" {
			b.WriteString(": " + m.Type)
		}
	}

	b.WriteByte(';')
	return b.String()
}

func renderFunction(decl extraction.Declaration, opts extraction.Options) string {
	var b strings.Builder
	b.WriteString(renderModifiers(decl.Modifiers, opts))
	b.WriteString("function")
	if decl.Generator {
		b.WriteByte('*')
	}
	b.WriteString(" " + decl.Name)
	b.WriteString(renderTypeParams(decl.TypeParams))
	b.WriteString("(" + renderParams(decl.Params, opts) + ")")
	if decl.ReturnType != "" {
		b.WriteString(": " + decl.ReturnType)
	}
	return b.String()
}

func renderTypeParams(params []extraction.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, 0, len(params))
	for _, tp := range params {
		part := tp.Name
		if tp.Constraint != "" {
			part += " extends " + tp.Constraint
		}
		if tp.Default != "" {
			part += " = " + tp.Default
		}
		parts = append(parts, part)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func renderParams(params []extraction.Param, opts extraction.Options) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var b strings.Builder
		if opts.IncludeDecorators && len(p.Decorators) > 0 {
			b.WriteString(strings.Join(p.Decorators, " ") + " ")
		}
		if len(p.Modifiers) > 0 {
			b.WriteString(strings.Join(p.Modifiers, " ") + " ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		if p.Type != "" {
			b.WriteString(": " + p.Type)
		}
		if p.Default != "" {
			b.WriteString(" = " + p.Default)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
