package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for trade export uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                      true,
	"application/csv":               true,
	"text/tab-separated-values":     true,
	"application/vnd.ms-excel":      true, // often used for CSV by older Excel
	"text/plain":                    true,
	"application/octet-stream":      true, // UTF-16 exports are frequently sniffed as binary
	"application/x-www-form-urlencoded": false,
}

// ValidateClientContentType checks the Content-Type header declared by the
// client for the uploaded file part.
func ValidateClientContentType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if mediaType == "" {
		return nil // browsers omit the part type for some inputs
	}
	if allowed, exists := AllowedClientContentTypes[mediaType]; !exists || !allowed {
		return fmt.Errorf("client-declared file type '%s' is not allowed for trade export upload", contentType)
	}
	return nil
}

var utf16leBOM = []byte{0xFF, 0xFE}

// ValidateExportContent inspects the first KB of the upload and rejects
// content that is neither UTF-8 nor UTF-16LE text. Unlike a generic binary
// check, NUL bytes are acceptable here: UTF-16LE broker exports are full of
// them.
func ValidateExportContent(file io.ReadSeeker) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}
	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content checking: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file after content checking: %w", err)
	}
	buf := buffer[:n]
	if len(buf) == 0 {
		return fmt.Errorf("uploaded file is empty")
	}

	if bytes.HasPrefix(buf, utf16leBOM) || looksUTF16LE(buf) {
		return nil
	}
	if utf8.Valid(buf) && bytes.IndexByte(buf, 0) == -1 {
		return nil
	}
	return fmt.Errorf("uploaded file does not look like a text export")
}

// looksUTF16LE detects BOM-less UTF-16LE by the NUL high bytes that ASCII
// text produces at odd offsets.
func looksUTF16LE(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	nulsAtOdd := 0
	checked := 0
	for i := 1; i < len(buf); i += 2 {
		checked++
		if buf[i] == 0 {
			nulsAtOdd++
		}
	}
	return nulsAtOdd*10 >= checked*7 // at least 70% of high bytes are NUL
}
