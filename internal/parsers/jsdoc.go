package parsers

import "strings"

// formatDocComment re-assembles a /** ... */ block into canonical form:
//
//	/**
//	 * summary
//	 * @tag text
//	 */
//
// Returns "" when the block has neither summary nor tags.
func formatDocComment(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/**") || !strings.HasSuffix(raw, "*/") || len(raw) < 5 {
		return ""
	}
	body := raw[3 : len(raw)-2]

	var summary []string
	var tags []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "@"):
			tags = append(tags, line)
		case len(tags) > 0:
			// Continuation of the previous tag's description.
			if line != "" {
				tags[len(tags)-1] += " " + line
			}
		default:
			summary = append(summary, line)
		}
	}
	summary = trimBlankLines(summary)

	if len(summary) == 0 && len(tags) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range summary {
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * " + line + "\n")
	}
	for _, tag := range tags {
		b.WriteString(" * " + tag + "\n")
	}
	b.WriteString(" */")
	return b.String()
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}

// indentBlock prefixes every line of block with indent.
func indentBlock(block, indent string) string {
	if indent == "" {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
