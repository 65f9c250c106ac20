package localfile

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
)

const (
	docxBody = "word/document.xml"
	docxCore = "docProps/core.xml"
)

type docxDocument struct {
	Body struct {
		Paragraphs []struct {
			Runs []struct {
				Text []struct {
					Content string `xml:",chardata"`
				} `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

type docxProps struct {
	Title string `xml:"title"`
}

// readDOCX extracts the paragraph text and core title of a Word document.
func readDOCX(data []byte) (string, string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", fmt.Errorf("%w: not a docx archive", domain.ErrInvalidInput)
	}

	raw, err := readZipEntry(r, docxBody)
	if err != nil {
		return "", "", err
	}
	if raw == nil {
		return "", "", fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, docxBody)
	}

	var doc docxDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", "", fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidInput, docxBody, err)
	}

	var b strings.Builder
	for i, p := range doc.Body.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, run := range p.Runs {
			for _, t := range run.Text {
				b.WriteString(t.Content)
			}
		}
	}

	// The title is optional; a broken core.xml is ignored.
	var title string
	if core, err := readZipEntry(r, docxCore); err == nil && core != nil {
		var props docxProps
		if xml.Unmarshal(core, &props) == nil {
			title = strings.TrimSpace(props.Title)
		}
	}

	return title, strings.TrimSpace(b.String()), nil
}

// readZipEntry returns the named entry, or nil if it is absent.
func readZipEntry(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}
