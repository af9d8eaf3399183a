package models

import (
	"mime"
	"strings"
)

const PDFContentType = "application/pdf"

// SelectedFile is a user-chosen upload held by the workflow until it is
// submitted or reset.
type SelectedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the declared content type is application/pdf.
// Media type parameters are ignored.
func (f SelectedFile) IsPDF() bool {
	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil {
		mediaType = strings.TrimSpace(f.ContentType)
	}
	return strings.EqualFold(mediaType, PDFContentType)
}
