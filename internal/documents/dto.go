package documents

import "time"

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message               string `json:"message"`
	Key                   string `json:"key"`
	FileName              string `json:"fileName"`
	DocumentValueCode     string `json:"documentValueCode"`
	DocumentValueTypeCode string `json:"documentValueTypeCode"`
}

// DocumentResponse is the outward-facing representation of a listed document.
type DocumentResponse struct {
	Key          string    `json:"key"`
	FileName     string    `json:"fileName"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ListResponse wraps a listing.
type ListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// TextDownloadResponse is the JSON envelope returned for text/plain downloads.
type TextDownloadResponse struct {
	FileName    string           `json:"fileName"`
	ContentType string           `json:"contentType"`
	Content     string           `json:"content"`
	Metadata    DownloadMetadata `json:"metadata"`
}

// DownloadMetadata carries the form fields stored with a document.
type DownloadMetadata struct {
	DocumentValueCode     string `json:"documentValueCode"`
	DocumentValueTypeCode string `json:"documentValueTypeCode"`
}

func toUploadResponse(res UploadResult) UploadResponse {
	return UploadResponse{
		Message:               "File uploaded successfully",
		Key:                   res.Key,
		FileName:              res.FileName,
		DocumentValueCode:     res.Fields.DocumentValueCode,
		DocumentValueTypeCode: res.Fields.DocumentValueTypeCode,
	}
}

func toListResponse(docs []Document) ListResponse {
	out := ListResponse{Documents: make([]DocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		out.Documents = append(out.Documents, DocumentResponse{
			Key:          doc.Key,
			FileName:     doc.FileName,
			Size:         doc.Size,
			LastModified: doc.LastModified,
		})
	}
	return out
}
