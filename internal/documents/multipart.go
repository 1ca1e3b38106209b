package documents

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// knownFields is the allow-list of text fields copied out of an upload form.
var knownFields = map[string]func(*FormFields, string){
	FieldDocumentValueCode:     func(f *FormFields, v string) { f.DocumentValueCode = v },
	FieldDocumentValueTypeCode: func(f *FormFields, v string) { f.DocumentValueTypeCode = v },
}

// DecodeForm parses a multipart/form-data body and returns its file part and
// allow-listed fields.
//
// Only one file is accepted per request: the first part carrying a filename is
// kept and any later file parts are drained without being buffered.
func DecodeForm(contentType string, body []byte) (ExtractedFile, FormFields, error) {
	var (
		file    ExtractedFile
		fields  FormFields
		hasFile bool
	)

	boundary, err := formBoundary(contentType)
	if err != nil {
		return file, fields, err
	}

	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		// NextPart wraps io.EOF when the stream is truncated; only the bare
		// sentinel marks the closing boundary.
		if err == io.EOF {
			break
		}
		if err != nil {
			return ExtractedFile{}, FormFields{}, fmt.Errorf("%w: %v", ErrParse, err)
		}

		if err := decodePart(part, &file, &fields, &hasFile); err != nil {
			_ = part.Close()
			return ExtractedFile{}, FormFields{}, err
		}
		_ = part.Close()
	}

	if !hasFile || len(file.Data) == 0 {
		return ExtractedFile{}, FormFields{}, ErrMissingFilePart
	}
	return file, fields, nil
}

func decodePart(part *multipart.Part, file *ExtractedFile, fields *FormFields, hasFile *bool) error {
	if part.FileName() != "" {
		if *hasFile {
			if _, err := io.Copy(io.Discard, part); err != nil {
				return fmt.Errorf("%w: %v", ErrParse, err)
			}
			return nil
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return fmt.Errorf("%w: read file part: %v", ErrParse, err)
		}
		*file = ExtractedFile{
			FieldName: part.FormName(),
			FileName:  part.FileName(),
			MimeType:  part.Header.Get("Content-Type"),
			Data:      data,
		}
		*hasFile = true
		return nil
	}

	value, err := io.ReadAll(part)
	if err != nil {
		return fmt.Errorf("%w: read field %q: %v", ErrParse, part.FormName(), err)
	}
	if set, ok := knownFields[part.FormName()]; ok {
		set(fields, string(value))
	}
	return nil
}

func formBoundary(contentType string) (string, error) {
	if strings.TrimSpace(contentType) == "" {
		return "", fmt.Errorf("%w: content-type header is required", ErrMalformedRequest)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: invalid content-type: %v", ErrMalformedRequest, err)
	}
	if mediaType != "multipart/form-data" {
		return "", fmt.Errorf("%w: content-type must be multipart/form-data", ErrMalformedRequest)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("%w: multipart boundary is missing", ErrMalformedRequest)
	}
	return boundary, nil
}
