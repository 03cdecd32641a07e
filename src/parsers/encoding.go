package parsers

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeExport turns the raw bytes of a broker export into text. MT5 and
// friends predominantly emit UTF-16LE (sometimes with a BOM), so that decode
// is attempted first: UTF-8 bytes read as UTF-16LE reliably produce garbage
// with no tab or comma in it, which makes a cheap discriminator. The inverse
// check is not safe, hence the fixed order.
func DecodeExport(buf []byte) string {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	text, err := dec.String(string(buf))
	if err != nil || (!strings.ContainsRune(text, '\t') && !strings.ContainsRune(text, ',')) {
		text = string(buf)
	}
	// Null bytes survive misaligned UTF-16 decodes and export padding.
	return strings.ReplaceAll(text, "\x00", "")
}
