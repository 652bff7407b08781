package output

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"git.home.luguber.info/inful/how2use/internal/foundation/normalization"
)

// Encoding names the byte encoding of emitted documents.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

var encodings = normalization.NewTable(normalization.Lenient, map[string]Encoding{
	"utf-8":     EncodingUTF8,
	"utf-8-bom": EncodingUTF8BOM,
	"utf-16le":  EncodingUTF16LE,
	"utf-16be":  EncodingUTF16BE,
})

// ParseEncoding accepts spellings such as "UTF8", "utf_16le" or "utf-8-bom".
// An empty value selects UTF-8.
func ParseEncoding(raw string) (Encoding, error) {
	if strings.TrimSpace(raw) == "" {
		return EncodingUTF8, nil
	}
	return encodings.Parse(raw)
}

// ValidEncodings lists the canonical encoding names.
func ValidEncodings() []string {
	return encodings.Names()
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}
