package documents

import (
	"fmt"
	"strings"
)

// allowedExtensions is fixed at build time.
var allowedExtensions = map[string]struct{}{
	"docx": {},
	"pdf":  {},
	"jpg":  {},
	"png":  {},
	"jpeg": {},
	"txt":  {},
	"xlsx": {},
}

var canonicalTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"txt":  "text/plain",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// Extension returns the lower-cased text after the last dot of fileName, or "".
func Extension(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(fileName[i+1:])
}

// ResolveContentType checks fileName against the extension allow-list and
// returns its canonical MIME type. The client-declared type is only used for
// allowed extensions that have no canonical entry.
func ResolveContentType(fileName, declared string) (string, error) {
	ext := Extension(fileName)
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
	if ct, ok := canonicalTypes[ext]; ok {
		return ct, nil
	}
	return declared, nil
}

// AllowedExtensions lists the accepted extensions, for error messages.
func AllowedExtensions() []string {
	return []string{"docx", "pdf", "jpg", "png", "jpeg", "txt", "xlsx"}
}
