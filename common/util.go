package common

// IsValidIdentifier returns whether a string is a valid nova identifier
// (module name atom, local/type name, typaram name).
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	first := s[0]
	if !(first == '_' || ('a' <= first && first <= 'z') || ('A' <= first && first <= 'Z')) {
		return false
	}

	for _, c := range s[1:] {
		if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		return false
	}

	return true
}
