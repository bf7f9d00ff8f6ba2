package utils

// TruncateRunes caps s at limit characters, never splitting a multibyte
// rune. Columns sized in characters (utf8mb4) need this rather than a
// byte slice.
func TruncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
