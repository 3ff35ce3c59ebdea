package syntax

// SplitInTwo splits content into two parts around the first occurrence
// of separator, matched case-insensitively. The separator itself is
// stripped. If the separator does not occur, the first part is the whole
// content and the second part is empty. Both results are always non-nil.
func SplitInTwo(content, separator string) (string, string) {
	if separator == "" {
		return content, ""
	}
	matched := 0
	for i := 0; i < len(content); i++ {
		if equalFoldByte(content[i], separator[matched]) {
			matched++
			if matched == len(separator) {
				return content[:i+1-len(separator)], content[i+1:]
			}
		} else {
			matched = 0
		}
	}
	return content, ""
}

func equalFoldByte(a, b byte) bool {
	if a == b {
		return true
	}
	if 'A' <= a && a <= 'Z' {
		a += 'a' - 'A'
	}
	if 'A' <= b && b <= 'Z' {
		b += 'a' - 'A'
	}
	return a == b
}
