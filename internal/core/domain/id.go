package domain

// IsValidID reports whether s is a well-formed document identifier
// (24 lowercase-or-uppercase hex characters). The inventory update path uses
// this to decide between id lookup and farm-id fallback without touching the
// database.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
