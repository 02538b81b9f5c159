// internal/app/system/inputval/inputval.go
package inputval

import "strings"

// IsValidEmail reports whether s looks like a plain addr-spec email
// (local@domain). Display-name forms ("Name <a@b>") are rejected; a
// single-label domain is accepted so dev and test hosts work.
func IsValidEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	return validDotAtom(s[:at]) && validDotAtom(s[at+1:])
}

// validDotAtom checks a dot-separated atom: non-empty, no leading,
// trailing, or consecutive dots, and only plausible atom characters.
func validDotAtom(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(".!#$%&'*+-/=?^_`{|}~", r):
		default:
			return false
		}
	}
	return true
}
