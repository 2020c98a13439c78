package csvio

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeReader normalizes an import file to UTF-8. Files starting with a
// UTF-8 byte-order mark are passed through with the mark stripped; everything
// else is treated as legacy GBK and converted. ASCII-only content survives
// either path unchanged.
func DecodeReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
		return br
	}
	return transform.NewReader(br, simplifiedchinese.GBK.NewDecoder())
}
