package documents

import (
	"strings"
	"time"
)

const (
	// KeyPrefix is the folder every stored document lives under.
	KeyPrefix = "documents/"

	// NotAvailable replaces empty metadata values.
	NotAvailable = "NA"

	FieldDocumentValueCode     = "documentValueCode"
	FieldDocumentValueTypeCode = "documentValueTypeCode"

	// Object store metadata keys; S3 lower-cases user metadata on read.
	MetaDocumentValueCode     = "documentvaluecode"
	MetaDocumentValueTypeCode = "documentvaluetypecode"
)

// ExtractedFile is the single file part pulled out of a multipart body.
type ExtractedFile struct {
	FieldName string
	FileName  string
	MimeType  string
	Data      []byte
}

// FormFields holds the allow-listed text fields of an upload.
type FormFields struct {
	DocumentValueCode     string
	DocumentValueTypeCode string
}

// Metadata returns the object store metadata for the fields, with empty values replaced by NotAvailable.
func (f FormFields) Metadata() map[string]string {
	return map[string]string{
		MetaDocumentValueCode:     orNA(f.DocumentValueCode),
		MetaDocumentValueTypeCode: orNA(f.DocumentValueTypeCode),
	}
}

// Document is one entry of a listing.
type Document struct {
	Key          string
	FileName     string
	Size         int64
	LastModified time.Time
}

// Download is a fetched document ready to be returned to the client.
type Download struct {
	Key                   string
	FileName              string
	ContentType           string
	Data                  []byte
	DocumentValueCode     string
	DocumentValueTypeCode string
}

// FileNameFromKey returns the last path segment of key.
func FileNameFromKey(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

func orNA(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
