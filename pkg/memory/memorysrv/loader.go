package memorysrv

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/ledongthuc/pdf"
)

// ExtractText returns the text of an uploaded document, picked by file extension.
// PDFs are parsed; anything else must be UTF-8 text.
func ExtractText(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".pdf" {
		return extractPDF(fileName, data)
	}

	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return "", memory.ErrUnsupportedDocument().WithDetail("file", fileName)
	}
	return string(data), nil
}

func extractPDF(fileName string, data []byte) (text string, err error) {
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = memory.ErrUnsupportedDocument().
				WithDetail("file", fileName).
				WithDetail("reason", fmt.Sprint(r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", memory.ErrUnsupportedDocument().
			WithDetail("file", fileName).
			WithDetail("reason", err.Error())
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", memory.ErrUnsupportedDocument().
			WithDetail("file", fileName).
			WithDetail("reason", err.Error())
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", memory.ErrUnsupportedDocument().
			WithDetail("file", fileName).
			WithDetail("reason", err.Error())
	}
	return buf.String(), nil
}

// DefaultChunkSize is the approximate chunk length in characters
const DefaultChunkSize = 1000

// ChunkText splits content on whitespace into chunks of roughly size
// characters. A chunk closes as soon as its words plus one separator each
// reach size. Content without words comes back as a single chunk.
func ChunkText(content string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	var current []string
	currentSize := 0

	for _, word := range strings.Fields(content) {
		current = append(current, word)
		currentSize += len(word) + 1
		if currentSize >= size {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentSize = 0
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	if len(chunks) == 0 {
		return []string{content}
	}
	return chunks
}
