package tablefmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Options controls the text layout of a table.
type Options struct {
	Delimiter rune
	Format    Format
}

// DefaultOptions returns ';' delimited tables with DefaultFormat.
func DefaultOptions() Options {
	return Options{
		Delimiter: ';',
		Format:    DefaultFormat(),
	}
}

// Write emits a header line with every schema column followed by one line per
// record. Cells are joined by the delimiter as encoded, without quoting, so a
// value containing the delimiter or a line break is rejected with
// ErrUnsplittableValue. At least one record is required.
func Write[T any](w io.Writer, s *Schema[T], records []*T, opts Options) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}

	bw := bufio.NewWriter(w)
	sep := string(opts.Delimiter)

	names := s.Names()
	if err := writeLine(bw, names, names, sep); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, s.Len())
	for i, rec := range records {
		if rec == nil {
			return fmt.Errorf("write record %d: nil record", i)
		}
		for j, c := range s.columns {
			line[j] = c.Encode(rec, opts.Format)
		}
		if err := writeLine(bw, names, line, sep); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func writeLine(bw *bufio.Writer, names, cells []string, sep string) error {
	for j, cell := range cells {
		if strings.Contains(cell, sep) || strings.ContainsAny(cell, "\r\n") {
			return fmt.Errorf("column %s value %q: %w", names[j], cell, ErrUnsplittableValue)
		}
	}
	_, err := bw.WriteString(strings.Join(cells, sep) + "\n")
	return err
}

// Marshal is Write into a byte slice.
func Marshal[T any](s *Schema[T], records []*T, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s, records, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// boundColumn is a schema column located in an input header.
type boundColumn[T any] struct {
	col Column[T]
	pos int
}

// Read parses a table from r. Every non-blank line is one record and is split
// on the delimiter; quotes have no special meaning. The header decides where
// each schema column is found in the data lines; schema columns missing from
// the header keep their zero value and header columns unknown to the schema
// are ignored.
func Read[T any](r io.Reader, s *Schema[T], opts Options) ([]*T, error) {
	lr := newLineReader(NewInputReader(r))
	sep := string(opts.Delimiter)

	text, _, err := lr.next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header line", ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := strings.Split(text, sep)

	// First occurrence wins when a header repeats a name.
	headerIdx := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := headerIdx[name]; !seen {
			headerIdx[name] = i
		}
	}

	bound := make([]boundColumn[T], 0, s.Len())
	for _, c := range s.columns {
		if pos, ok := headerIdx[c.Name()]; ok {
			bound = append(bound, boundColumn[T]{col: c, pos: pos})
		}
	}

	var records []*T
	for {
		text, line, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line+1, err)
		}

		fields := strings.Split(text, sep)
		rec := new(T)
		for _, b := range bound {
			if b.pos >= len(fields) {
				continue
			}
			raw := fields[b.pos]
			if err := b.col.Decode(rec, raw, opts.Format); err != nil {
				return nil, &RowConversionError{
					Line:   line,
					Column: b.col.Name(),
					Raw:    raw,
					Err:    err,
				}
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// Unmarshal is Read from a byte slice.
func Unmarshal[T any](data []byte, s *Schema[T], opts Options) ([]*T, error) {
	return Read(bytes.NewReader(data), s, opts)
}
