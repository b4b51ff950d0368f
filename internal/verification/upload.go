package verification

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// MaxDocumentBytes caps each uploaded image; oversized files are rejected
// before any upstream call is made.
const MaxDocumentBytes = 5 << 20

// DocumentParts are the five required image parts, in upload order.
var DocumentParts = []string{"cccdFront", "cccdBack", "gplxFront", "gplxBack", "portrait"}

var (
	ErrMissingDocument = errors.New("verification: required document missing")
	ErrDocumentTooBig  = errors.New("verification: document exceeds size limit")
	ErrMissingField    = errors.New("verification: cccd and gplx numbers are required")
)

// Upload is a validated verification submission: five images plus the two
// licence numbers.
type Upload struct {
	CCCD  string
	GPLX  string
	Files map[string]*multipart.FileHeader
}

// ParseUpload validates an incoming multipart form into an Upload. All
// checks happen here, client-side of the backend: missing parts, oversized
// files, and blank text fields never travel upstream.
func ParseUpload(form *multipart.Form) (*Upload, error) {
	if form == nil {
		return nil, ErrMissingDocument
	}

	cccd := firstValue(form, "cccd")
	gplx := firstValue(form, "gplx")
	if cccd == "" || gplx == "" {
		return nil, ErrMissingField
	}

	files := make(map[string]*multipart.FileHeader, len(DocumentParts))
	for _, part := range DocumentParts {
		headers := form.File[part]
		if len(headers) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingDocument, part)
		}
		header := headers[0]
		if header.Size > MaxDocumentBytes {
			return nil, fmt.Errorf("%w: %s (%d bytes)", ErrDocumentTooBig, part, header.Size)
		}
		files[part] = header
	}

	return &Upload{CCCD: cccd, GPLX: gplx, Files: files}, nil
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// WriteTo re-streams the submission as a fresh multipart body for the
// backend upload endpoint and returns the content type.
func (u *Upload) WriteTo(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	if err := mw.WriteField("cccd", u.CCCD); err != nil {
		return "", err
	}
	if err := mw.WriteField("gplx", u.GPLX); err != nil {
		return "", err
	}

	for _, part := range DocumentParts {
		header := u.Files[part]
		src, err := header.Open()
		if err != nil {
			return "", err
		}
		dst, err := mw.CreateFormFile(part, header.Filename)
		if err != nil {
			src.Close()
			return "", err
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			return "", err
		}
		src.Close()
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}
