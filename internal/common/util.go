package common

import "strings"

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LooksLikeEmail reports whether s has a non-empty local part and a domain
// separated by a single '@'. It is a sanity check, not RFC 5322 validation.
func LooksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	domain := s[at+1:]
	return domain != "" && !strings.ContainsAny(s, " \t\r\n")
}

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// plaintext passwords from memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
