package documents

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formFile struct {
	field    string
	name     string
	mimeType string
	data     []byte
}

// buildForm writes fields (in order) followed by files and returns the body and content type.
func buildForm(t *testing.T, fields [][2]string, files ...formFile) ([]byte, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range fields {
		require.NoError(t, writer.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		if f.mimeType != "" {
			h.Set("Content-Type", f.mimeType)
		}
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body.Bytes(), writer.FormDataContentType()
}

func TestDecodeFormWellFormed(t *testing.T) {
	body, ct := buildForm(t,
		[][2]string{
			{"documentValueCode", "INV001"},
			{"documentValueTypeCode", "INVOICE"},
			{"uploader", "ignored"},
		},
		formFile{field: "file", name: "report.pdf", mimeType: "application/octet-stream", data: []byte("%PDF-1.4 body")},
	)

	file, fields, err := DecodeForm(ct, body)
	require.NoError(t, err)

	want := ExtractedFile{
		FieldName: "file",
		FileName:  "report.pdf",
		MimeType:  "application/octet-stream",
		Data:      []byte("%PDF-1.4 body"),
	}
	if diff := cmp.Diff(want, file); diff != "" {
		t.Fatalf("extracted file mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, FormFields{DocumentValueCode: "INV001", DocumentValueTypeCode: "INVOICE"}, fields)
}

func TestDecodeFormFieldsAfterFile(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("upload", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("documentValueTypeCode", "NOTE"))
	require.NoError(t, writer.Close())

	file, fields, err := DecodeForm(writer.FormDataContentType(), body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", file.FileName)
	assert.Equal(t, "", fields.DocumentValueCode)
	assert.Equal(t, "NOTE", fields.DocumentValueTypeCode)
}

func TestDecodeFormKeepsFirstFile(t *testing.T) {
	body, ct := buildForm(t, nil,
		formFile{field: "file", name: "first.png", mimeType: "image/png", data: []byte("first")},
		formFile{field: "file", name: "second.pdf", mimeType: "application/pdf", data: []byte("second")},
	)

	file, _, err := DecodeForm(ct, body)
	require.NoError(t, err)
	assert.Equal(t, "first.png", file.FileName)
	assert.Equal(t, []byte("first"), file.Data)
}

func TestDecodeFormNoFilePart(t *testing.T) {
	body, ct := buildForm(t, [][2]string{{"documentValueCode", "X"}})

	_, _, err := DecodeForm(ct, body)
	require.ErrorIs(t, err, ErrMissingFilePart)
}

func TestDecodeFormEmptyFilePart(t *testing.T) {
	body, ct := buildForm(t, nil, formFile{field: "file", name: "empty.txt", data: nil})

	_, _, err := DecodeForm(ct, body)
	require.ErrorIs(t, err, ErrMissingFilePart)
}

func TestDecodeFormMalformedContentType(t *testing.T) {
	body, _ := buildForm(t, nil, formFile{field: "file", name: "a.pdf", data: []byte("x")})

	tests := map[string]string{
		"missing":         "",
		"json":            "application/json",
		"no boundary":     "multipart/form-data",
		"unparsable":      "multipart/form-data; boundary",
		"urlencoded":      "application/x-www-form-urlencoded",
		"multipart mixed": "multipart/mixed; boundary=abc",
	}
	for name, ct := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeForm(ct, body)
			require.ErrorIs(t, err, ErrMalformedRequest)
		})
	}
}

func TestDecodeFormTruncatedBody(t *testing.T) {
	body, ct := buildForm(t, nil, formFile{field: "file", name: "a.pdf", data: []byte("some pdf bytes")})
	truncated := body[:len(body)-20]

	_, _, err := DecodeForm(ct, truncated)
	require.ErrorIs(t, err, ErrParse)
}

func TestDecodeFormWrongBoundary(t *testing.T) {
	body, _ := buildForm(t, nil, formFile{field: "file", name: "a.pdf", data: []byte("x")})

	_, _, err := DecodeForm("multipart/form-data; boundary=not-the-boundary", body)
	require.ErrorIs(t, err, ErrParse)
}
