package documents

import "errors"

var (
	ErrMalformedRequest    = errors.New("malformed request")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingFilePart     = errors.New("no file found in request")
	ErrParse               = errors.New("multipart parse error")
	ErrInvalidAction       = errors.New("invalid action")
	ErrMissingKey          = errors.New("missing key parameter")
)
