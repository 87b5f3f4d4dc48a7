package epub

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// illegalFilenameChars are rejected by Windows and FAT filesystems.
const illegalFilenameChars = `<>:"/\|?*`

// Sanitize converts an arbitrary title into a filesystem-safe name component:
//  1. Normalize to NFC so visually identical titles produce identical bytes.
//  2. Replace illegal filename characters and control characters with '_'.
//  3. Collapse each whitespace run into a single space.
//  4. Trim leading and trailing whitespace.
//
// The result may be empty if the input contains nothing but whitespace.
func Sanitize(input string) string {
	s := norm.NFC.String(input)

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		switch {
		case unicode.IsControl(r) || strings.ContainsRune(illegalFilenameChars, r):
			b.WriteRune('_')
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// truncateUTF8 shortens s to at most maxBytes without splitting a rune.
// The cut point backs up to the nearest rune boundary at or below maxBytes.
func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}

	end := maxBytes
	for end > 0 && !utf8Boundary(s, end) {
		end--
	}
	return s[:end]
}

// utf8Boundary reports whether s[i] starts a new rune (or is the end of s).
func utf8Boundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	// Continuation bytes are 0b10xxxxxx.
	return s[i]&0xC0 != 0x80
}
