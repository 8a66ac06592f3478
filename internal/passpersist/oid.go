package passpersist

// ValidOID reports whether s is a dotted-numeric object identifier such as
// 1.3.6.1.4.1.9999.1.1.0. A single leading dot is accepted.
func ValidOID(s string) bool {
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
	}
	if s == "" {
		return false
	}

	hasDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
			if !hasDigit {
				return false
			}
			hasDigit = false
		default:
			return false
		}
	}
	return hasDigit
}
