package tablefmt

// reader.go cleans up table input before it is parsed:
//   - a leading UTF-8 BOM (written by many Windows tools) is dropped
//   - invalid UTF-8 bytes are replaced with '?'
//
// Both steps stream; the input is never loaded into memory as a whole. The
// cleaned text is then consumed one line at a time by lineReader.

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewInputReader wraps r so that the returned reader yields valid UTF-8
// without a leading byte order mark.
func NewInputReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &sanitizingReader{br: br}
}

type sanitizingReader struct {
	br *bufio.Reader

	// Encoded bytes of a rune that did not fit into the previous Read.
	pending []byte
}

func (s *sanitizingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	var buf [utf8.UTFMax]byte
	for n < len(p) {
		// Do not block for more input once something can be returned.
		if n > 0 && s.br.Buffered() == 0 {
			break
		}

		r, size, err := s.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}

		enc := buf[:0]
		if r == utf8.RuneError && size == 1 {
			enc = append(enc, '?')
		} else {
			enc = utf8.AppendRune(enc, r)
		}

		m := copy(p[n:], enc)
		n += m
		if m < len(enc) {
			s.pending = append(s.pending[:0], enc[m:]...)
		}
	}

	return n, nil
}

// lineReader yields the non-blank lines of a table together with their 1-based
// line numbers. Line endings (\n or \r\n) are removed.
type lineReader struct {
	br   *bufio.Reader
	line int
	err  error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

func (l *lineReader) next() (string, int, error) {
	for l.err == nil {
		text, err := l.br.ReadString('\n')
		l.err = err
		if text == "" {
			continue
		}

		l.line++
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		if text != "" {
			return text, l.line, nil
		}
	}
	return "", l.line, l.err
}
