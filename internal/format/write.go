package format

// Writer accumulates canonical output and handles indentation at line
// starts.
type Writer struct {
	buf         []byte
	indentWidth int
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer using the given spaces-per-level width.
func NewWriter(indentWidth int) *Writer {
	return &Writer{
		buf:         make([]byte, 0, 256),
		indentWidth: indentWidth,
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel * w.indentWidth {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes s, emitting the current indentation first when at
// a line start.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
}

// Newline terminates the current line. A line already terminated stays
// terminated: consecutive calls emit a single newline.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine terminates the current line and emits one empty line. The
// empty line carries no indentation.
func (w *Writer) BlankLine() {
	w.Newline()
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
