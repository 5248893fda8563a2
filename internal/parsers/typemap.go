package parsers

import (
	"strconv"
	"strings"
)

// pythonTypes maps bare Python type names to their TypeScript equivalents.
// Untyped containers get an "any" element type.
var pythonTypes = map[string]string{
	"str":       "string",
	"int":       "number",
	"float":     "number",
	"complex":   "number",
	"bool":      "boolean",
	"bytes":     "Uint8Array",
	"bytearray": "Uint8Array",
	"None":      "null",
	"NoneType":  "null",
	"Any":       "any",
	"object":    "object",
	"dict":      "Record<string, any>",
	"Dict":      "Record<string, any>",
	"list":      "Array<any>",
	"List":      "Array<any>",
	"set":       "Set<any>",
	"Set":       "Set<any>",
	"frozenset": "Set<any>",
	"FrozenSet": "Set<any>",
	"tuple":     "any[]",
	"Tuple":     "any[]",
}

var (
	arrayBases = map[string]bool{
		"List": true, "list": true, "Sequence": true, "MutableSequence": true,
		"Iterable": true, "Iterator": true, "Collection": true, "Deque": true, "deque": true,
	}
	recordBases = map[string]bool{
		"Dict": true, "dict": true, "Mapping": true, "MutableMapping": true,
		"DefaultDict": true, "defaultdict": true, "OrderedDict": true,
	}
	setBases = map[string]bool{
		"Set": true, "set": true, "FrozenSet": true, "frozenset": true,
		"AbstractSet": true, "MutableSet": true,
	}
	// Qualifiers that only annotate the wrapped type.
	wrapperBases = map[string]bool{
		"ClassVar": true, "Final": true, "Annotated": true,
		"Required": true, "NotRequired": true, "ReadOnly": true,
	}
)

// MapPythonType converts a Python type annotation into a TypeScript type
// expression. It is pure and never fails; unknown names pass through.
func MapPythonType(t string) string {
	t = strings.Join(strings.Fields(t), " ")
	if t == "" {
		return "any"
	}

	// Forward references: "Node" or 'Node'.
	if len(t) >= 2 && (t[0] == '"' || t[0] == '\'') && strings.IndexByte(t[1:], t[0]) == len(t)-2 {
		return MapPythonType(t[1 : len(t)-1])
	}

	if parts := splitTopLevel(t, '|', true); len(parts) > 1 {
		return mapUnion(parts)
	}

	if base, args, ok := splitGeneric(t); ok {
		return mapGeneric(base, args)
	}

	name := trimTypingPrefix(t)
	if mapped, ok := pythonTypes[name]; ok {
		return mapped
	}
	return name
}

func mapUnion(parts []string) string {
	mapped := make([]string, 0, len(parts))
	for _, part := range parts {
		mapped = append(mapped, MapPythonType(part))
	}
	return strings.Join(mapped, " | ")
}

func mapGeneric(base, args string) string {
	argList := splitTopLevel(args, ',', true)

	switch {
	case base == "Optional":
		return MapPythonType(args) + " | null"
	case base == "Union":
		return mapUnion(argList)
	case base == "Literal":
		return strings.Join(argList, " | ")
	case base == "Callable":
		return mapCallable(argList)
	case base == "Tuple" || base == "tuple":
		return mapTuple(argList)
	case wrapperBases[base]:
		return MapPythonType(argList[0])
	case arrayBases[base]:
		return "Array<" + MapPythonType(argList[0]) + ">"
	case setBases[base]:
		return "Set<" + MapPythonType(argList[0]) + ">"
	case recordBases[base]:
		if len(argList) != 2 {
			return "Record<string, any>"
		}
		return "Record<" + MapPythonType(argList[0]) + ", " + MapPythonType(argList[1]) + ">"
	}

	mapped := make([]string, 0, len(argList))
	for _, arg := range argList {
		mapped = append(mapped, MapPythonType(arg))
	}
	return base + "<" + strings.Join(mapped, ", ") + ">"
}

func mapTuple(args []string) string {
	if len(args) == 2 && args[1] == "..." {
		return "Array<" + MapPythonType(args[0]) + ">"
	}
	if len(args) == 1 && args[0] == "()" {
		return "[]"
	}
	mapped := make([]string, 0, len(args))
	for _, arg := range args {
		mapped = append(mapped, MapPythonType(arg))
	}
	return "[" + strings.Join(mapped, ", ") + "]"
}

// mapCallable renders Callable[[A, B], R] as (arg0: A, arg1: B) => R.
func mapCallable(args []string) string {
	if len(args) != 2 {
		return "(...args: any[]) => any"
	}

	ret := MapPythonType(args[1])
	params := args[0]
	if params == "..." || !strings.HasPrefix(params, "[") || !strings.HasSuffix(params, "]") {
		return "(...args: any[]) => " + ret
	}

	inner := strings.TrimSpace(params[1 : len(params)-1])
	if inner == "" {
		return "() => " + ret
	}
	var rendered []string
	for i, p := range splitTopLevel(inner, ',', true) {
		rendered = append(rendered, "arg"+strconv.Itoa(i)+": "+MapPythonType(p))
	}
	return "(" + strings.Join(rendered, ", ") + ") => " + ret
}

// splitGeneric splits "Base[args]" into base and args. The bracket opened after
// base must close at the end of t.
func splitGeneric(t string) (string, string, bool) {
	open := strings.IndexByte(t, '[')
	if open <= 0 || !strings.HasSuffix(t, "]") {
		return "", "", false
	}
	if matchingClose(t, open) != len(t)-1 {
		return "", "", false
	}

	base := strings.TrimSpace(t[:open])
	for _, r := range base {
		if !(r == '_' || r == '.' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", "", false
		}
	}
	return trimTypingPrefix(base), t[open+1 : len(t)-1], true
}

func trimTypingPrefix(name string) string {
	for _, prefix := range []string{"typing.", "typing_extensions.", "collections.abc.", "collections."} {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}
