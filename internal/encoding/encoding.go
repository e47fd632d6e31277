// Package encoding normalizes supplier price-list files to UTF-8. Price
// lists usually arrive as Excel CSV exports, which on Spanish-locale Windows
// means Windows-1252 or ISO-8859-1 rather than UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// charsetDecoders maps chardet results to decoders for the charsets these
// files show up in.
var charsetDecoders = map[string]*encoding.Decoder{
	"ISO-8859-1":   charmap.Windows1252.NewDecoder(), // superset of Latin-1
	"windows-1252": charmap.Windows1252.NewDecoder(),
	"ISO-8859-15":  charmap.ISO8859_15.NewDecoder(),
}

// NewUTF8Reader wraps r so its content reads as UTF-8: BOMs are honored,
// valid UTF-8 passes through, anything else goes through charset detection
// with Windows-1252 as the fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	// UTF-16 Excel exports carry a BOM; ExpectBOM handles both byte orders.
	if len(head) >= 2 && (head[0] == 0xFF && head[1] == 0xFE || head[0] == 0xFE && head[1] == 0xFF) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if dec, ok := charsetDecoders[result.Charset]; ok {
			return transform.NewReader(br, dec), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
