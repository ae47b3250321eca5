// Package charset decodes include-file bytes into UTF-8 source text,
// honoring a Classic ASP processing-directive codepage setting (the
// `codepage` key of `<%@ ... %>`, e.g. 65001 for UTF-8, 1200/1201 for
// UTF-16) and BOM-sniffing when no codepage is configured.
package charset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts data to a UTF-8 string. codepage is the numeric string
// value of a processing directive's codepage setting ("" if unset): 1200
// forces UTF-16 little-endian, 1201 forces UTF-16 big-endian, and any
// other value (including 65001 and "") falls back to BOM-sniffing with a
// Latin-1 promotion for byte sequences that are neither a recognized BOM
// nor valid UTF-8.
func Decode(data []byte, codepage string) (string, error) {
	switch codepage {
	case "1200":
		return decodeUTF16(data, unicode.LittleEndian)
	case "1201":
		return decodeUTF16(data, unicode.BigEndian)
	}

	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	result := bytes.TrimPrefix(utf8Data, []byte{0xEF, 0xBB, 0xBF})
	return string(result), nil
}
