package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites DSL source before it reaches zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols and cannot clash with user variables.
//  2. kebab-case identifiers become underscore form (groove-names ->
//     groove_names); zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are left untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			i = copyQuoted(&result, b, i, '"', true)
			continue
		case b[i] == '`':
			i = copyQuoted(&result, b, i, '`', false)
			continue
		case b[i] == ';':
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		case b[i] == ':' && i+1 < len(b):
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		case b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Only between identifier characters; a spaced minus stays.
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// copyQuoted copies the literal starting at b[i] up to and including its
// closing quote and returns the index after it.
func copyQuoted(dst *[]byte, b []byte, i int, quote byte, escapes bool) int {
	*dst = append(*dst, b[i])
	i++
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			*dst = append(*dst, b[i], b[i+1])
			i += 2
			continue
		}
		*dst = append(*dst, b[i])
		i++
	}
	if i < len(b) {
		*dst = append(*dst, b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
