package buffer

import "unicode"

// RuneSource is the read-only view the word helpers scan.
type RuneSource interface {
	Len() int
	RuneAt(i int) rune
}

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or underscore characters.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordStart returns the offset of the start of the word before pos,
// skipping any non-word runes first.
func WordStart(src RuneSource, pos int) int {
	if src == nil || src.Len() == 0 {
		return 0
	}
	if pos > src.Len() {
		pos = src.Len()
	}
	if pos > 0 {
		pos--
	}
	for pos > 0 && !IsWordRune(src.RuneAt(pos)) {
		pos--
	}
	for pos > 0 && IsWordRune(src.RuneAt(pos-1)) {
		pos--
	}
	return pos
}

// NextWordStart returns the offset of the start of the word after pos, or
// Len() when there is none.
func NextWordStart(src RuneSource, pos int) int {
	if src == nil || src.Len() == 0 {
		return 0
	}
	if pos < 0 {
		pos = 0
	}
	n := src.Len()
	for pos < n && IsWordRune(src.RuneAt(pos)) {
		pos++
	}
	for pos < n && !IsWordRune(src.RuneAt(pos)) {
		pos++
	}
	return pos
}

// WordEnd returns the offset of the last rune of the word at or after pos.
// When pos already sits on the end of a word it moves on to the next one.
func WordEnd(src RuneSource, pos int) int {
	if src == nil || src.Len() == 0 {
		return 0
	}
	n := src.Len()
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		return n - 1
	}
	if IsWordRune(src.RuneAt(pos)) && (pos == n-1 || !IsWordRune(src.RuneAt(pos+1))) {
		pos++
	}
	for pos < n && !IsWordRune(src.RuneAt(pos)) {
		pos++
	}
	for pos < n && IsWordRune(src.RuneAt(pos)) {
		pos++
	}
	if pos > 0 {
		pos--
	}
	return pos
}
