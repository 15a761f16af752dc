package encoding

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// NewCSVReader decodes r to UTF-8 and returns a CSV reader configured for the delimiter
// the content uses. Exports from European spreadsheet locales use ';', everything else ','.
func NewCSVReader(r io.Reader) (*csv.Reader, error) {
	utf8r, _, err := NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReaderSize(utf8r, sniffWindowBytes)

	head, err := br.Peek(sniffWindowBytes)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = SniffDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return reader, nil
}

// SniffDelimiter picks ';' when any of the leading lines has more semicolons than commas.
// Decimal commas make a plain count over the whole sample unreliable, so lines are
// compared one by one.
func SniffDelimiter(head []byte) rune {
	for line := range bytes.SplitSeq(head, []byte("\n")) {
		semi := bytes.Count(line, []byte(";"))
		comma := bytes.Count(line, []byte(","))

		if semi > comma {
			return ';'
		}
	}

	return ','
}
