package buffer

// TextStorage defines the storage operations the cursor and the renderer
// rely on. Positions and lengths are expressed in runes (not bytes).
type TextStorage interface {
	Insert(r rune, pos int) error
	DeleteBackward(pos int)
	DeleteForward(pos int)
	Len() int
	String() string
	Line(n int) string
	LineCount() int
	LineStart(n int) int
}

var _ TextStorage = (*GapBuffer)(nil)
