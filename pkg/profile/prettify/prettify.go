// Package prettify shortens verbose template-heavy C++ symbol names for
// display. It is a pure string rewriter, independent of the tree
// transforms.
package prettify

import "strings"

// Symbol returns a shortened display form of a raw symbol name. When no
// rewrite rule applies, the input string itself is returned, so callers
// can cheaply detect "no change".
func Symbol(name string) string {
	result := prettify(name)
	if result == name {
		return name
	}
	return result
}

// findSameDepth scans for ch starting at offset, treating '<' and '('
// as depth+1 and '>' and ')' as depth-1. The delimiter only matches at
// depth 0, so terminators of nested templates or parentheses inside a
// matched argument are ignored. Returns -1 when not found.
func findSameDepth(str string, offset int, ch byte, returnNext bool) int {
	depth := 0
	for ; offset < len(str); offset++ {
		current := str[offset]
		if current == '<' || current == '(' {
			depth++
		} else if current == '>' || current == ')' {
			depth--
		}

		if depth == 0 && current == ch {
			if returnNext {
				return offset + 1
			}
			return offset
		}
	}
	return -1
}

// startsWithAny returns the length of the first matching prefix, or -1.
func startsWithAny(str string, prefixes ...string) int {
	for _, prefix := range prefixes {
		if strings.HasPrefix(str, prefix) {
			return len(prefix)
		}
	}
	return -1
}

var oneParameterTemplates = []string{
	"vector<", "set<", "deque<", "list<",
	"forward_list<", "multiset<", "unordered_set<", "unordered_multiset<",
}

var twoParameterTemplates = []string{
	"map<", "multimap<", "unordered_map<", "unordered_multimap<",
}

func prettify(str string) string {
	// Find a std:: that sits at a template-argument boundary, after
	// whitespace or after an opening parenthesis. Anything else is part
	// of an unrelated identifier and must stay untouched.
	pos := 0
	for {
		idx := strings.Index(str[pos:], "std::")
		if idx == -1 {
			return str
		}
		pos += idx + 5
		if pos == 5 || str[pos-6] == '<' || str[pos-6] == ' ' || str[pos-6] == '(' {
			break
		}
	}

	var result strings.Builder
	result.WriteString(str[:pos])
	symbol := str[pos:]

	var end int

	if end = startsWithAny(symbol, "__cxx11::", "__1::"); end != -1 {
		// Strip the libstdc++/libc++ internal namespace
		symbol = symbol[end:]
	}

	// Translate basic_string<(char|wchar_t|T), ...> to string, wstring
	// or basic_string<T>
	if end = startsWithAny(symbol, "basic_string<"); end != -1 {
		comma := findSameDepth(symbol, end, ',', false)
		closing := findSameDepth(symbol, 0, '>', true)
		if comma != -1 && closing != -1 {
			typ := symbol[end:comma]
			switch typ {
			case "char":
				result.WriteString("string")
			case "wchar_t":
				result.WriteString("wstring")
			default:
				result.WriteString(symbol[:end])
				result.WriteString(typ)
				result.WriteByte('>')
			}
			symbol = symbol[closing:]

			// Also translate the constructor/destructor name
			if end = startsWithAny(symbol, "::basic_string(", "::~basic_string("); end != -1 {
				result.WriteString("::")
				if symbol[2] == '~' {
					result.WriteByte('~')
				}
				if typ == "wchar_t" {
					result.WriteByte('w')
				} else if typ != "char" {
					result.WriteString("basic_")
				}
				result.WriteString("string(")
				symbol = symbol[end:]
			}
		}
	} else if end = startsWithAny(symbol, oneParameterTemplates...); end != -1 {
		// Translate (vector|set|...)<T, ...> to (vector|set|...)<T>
		comma := findSameDepth(symbol, end, ',', false)
		closing := findSameDepth(symbol, 0, '>', true)
		if comma != -1 && closing != -1 {
			result.WriteString(symbol[:end])
			result.WriteString(prettify(symbol[end:comma]))
			result.WriteByte('>')

			symbol = symbol[closing:]
		}
	} else if end = startsWithAny(symbol, twoParameterTemplates...); end != -1 {
		// Translate (map|multimap|...)<T, U, ...> to (map|multimap|...)<T, U>
		comma1 := findSameDepth(symbol, end, ',', false)
		comma2 := -1
		if comma1 != -1 {
			comma2 = findSameDepth(symbol, comma1+1, ',', false)
		}
		closing := findSameDepth(symbol, 0, '>', true)
		if comma1 != -1 && comma2 != -1 && closing != -1 {
			result.WriteString(symbol[:end])
			result.WriteString(prettify(symbol[end:comma1]))
			result.WriteString(prettify(symbol[comma1:comma2]))
			result.WriteByte('>')

			symbol = symbol[closing:]
		}
	} else if end = startsWithAny(symbol, "allocator<"); end != -1 {
		// Translate allocator<T> to allocator<...>
		gt := findSameDepth(symbol, 0, '>', true)
		if gt != -1 {
			result.WriteString(symbol[:end])
			result.WriteString("...>")

			symbol = symbol[gt:]
		}
	}

	if symbol != "" {
		result.WriteString(prettify(symbol))
	}

	return result.String()
}
