// Package yamltest provides string helpers for writing expected-output
// test fixtures against generated C text.
package yamltest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := yamltest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder

	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Input dedents a multi-line string literal written in test source with
// a common leading indent, so expected fixtures can be written as
// readable indented blocks. A single leading or trailing newline
// introduced by the backtick literal's line break is stripped;
// whitespace-only lines are collapsed to empty lines.
func Input(s string) string {
	lines := strings.Split(s, "\n")

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" && len(lines) > 1 {
		lines = lines[1:]
	}

	indent := -1

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}

	if indent > 0 {
		for i, l := range lines {
			if strings.TrimSpace(l) == "" {
				lines[i] = ""
				continue
			}

			if len(l) >= indent {
				lines[i] = l[indent:]
			}
		}
	} else {
		for i, l := range lines {
			if strings.TrimSpace(l) == "" {
				lines[i] = ""
			}
		}
	}

	out := strings.Join(lines, "\n")
	out = strings.TrimSuffix(out, "\n")

	return out
}
