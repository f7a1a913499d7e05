// Package resumeparser turns an uploaded resume into a structured profile: text is
// extracted locally by file type and then interpreted by Gemini.
package resumeparser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrNoText is returned when a file contains no extractable text.
var ErrNoText = errors.New("no text content found")

// ExtractFunc pulls plain text out of one file format.
type ExtractFunc func(content []byte) (string, error)

// TextExtractor dispatches to a per-extension ExtractFunc.
type TextExtractor struct {
	extractors map[string]ExtractFunc
}

// NewTextExtractor returns an extractor for pdf, docx and txt files.
func NewTextExtractor() *TextExtractor {
	e := &TextExtractor{extractors: make(map[string]ExtractFunc)}
	e.Register(".pdf", extractPDF)
	e.Register(".docx", extractDOCX)
	e.Register(".txt", extractPlain)
	return e
}

// Register binds fn to a file extension such as ".pdf".
func (e *TextExtractor) Register(ext string, fn ExtractFunc) {
	e.extractors[strings.ToLower(ext)] = fn
}

// Extract returns the text of content, chosen by filename's extension.
func (e *TextExtractor) Extract(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fn, ok := e.extractors[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %q", ext)
	}
	text, err := fn(content)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), ""), nil
	}
	return string(content), nil
}

func extractPDF(content []byte) (string, error) {
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		return "", errors.New("not a PDF file: invalid header")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDOCX(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent())
}

// documentXMLText flattens WordprocessingML into text, one line per paragraph.
func documentXMLText(raw string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
