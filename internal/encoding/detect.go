package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset is the text encoding detected for a spreadsheet export.
type Charset string

const (
	CharsetUTF8    Charset = "UTF-8"
	CharsetUTF8BOM Charset = "UTF-8 (BOM)"
	CharsetUTF16LE Charset = "UTF-16LE"
	CharsetUTF16BE Charset = "UTF-16BE"
	CharsetWindows Charset = "windows-1252"
	CharsetLatin5  Charset = "ISO-8859-9"
)

const sniffWindowBytes = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of buf: a BOM wins, then valid UTF-8, then chardet's best
// guess, falling back to Windows-1252 which is what spreadsheet tools emit by default.
func Detect(buf []byte) Charset {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return CharsetUTF8BOM
	case bytes.HasPrefix(buf, bomUTF16LE):
		return CharsetUTF16LE
	case bytes.HasPrefix(buf, bomUTF16BE):
		return CharsetUTF16BE
	case utf8.Valid(buf):
		return CharsetUTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return CharsetUTF8
		case "ISO-8859-9":
			return CharsetLatin5
		}
	}

	return CharsetWindows
}

// NewUTF8Reader detects the encoding of the input and returns a reader that decodes
// the content to UTF-8, along with the charset that was detected.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffWindowBytes)

	buf, err := br.Peek(sniffWindowBytes)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := Detect(buf)

	switch cs {
	case CharsetUTF8:
		return br, cs, nil
	case CharsetUTF8BOM:
		_, _ = br.Discard(len(bomUTF8))
		return br, cs, nil
	case CharsetUTF16LE:
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), cs, nil
	case CharsetUTF16BE:
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), cs, nil
	case CharsetLatin5:
		return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), cs, nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), cs, nil
}
