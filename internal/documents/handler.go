package documents

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"docstore-backend/internal/shared/metrics"
	"docstore-backend/internal/shared/server/respond"
	"docstore-backend/internal/shared/storage/object"
	"docstore-backend/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Action is the operation selected by the "action" query parameter.
type Action int

const (
	ActionUnknown Action = iota
	ActionUpload
	ActionList
	ActionDownload
)

// ParseAction maps the query value onto an Action.
func ParseAction(raw string) Action {
	switch raw {
	case "uploadFile":
		return ActionUpload
	case "listDocuments":
		return ActionList
	case "downloadFile":
		return ActionDownload
	default:
		return ActionUnknown
	}
}

func (a Action) String() string {
	switch a {
	case ActionUpload:
		return "uploadFile"
	case ActionList:
		return "listDocuments"
	case ActionDownload:
		return "downloadFile"
	default:
		return "unknown"
	}
}

// Handler routes proxy requests to the document flows.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

type requestInfo struct {
	id     string
	method string
	action Action
}

// Handle is the single entry point for every request. It never returns an
// error: every failure, including panics inside a flow, becomes a response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if strings.EqualFold(req.HTTPMethod, http.MethodOptions) {
		return respond.Preflight(), nil
	}

	start := time.Now()
	info := requestInfo{
		id:     requestID(req),
		method: req.HTTPMethod,
		action: ParseAction(queryParam(req, "action")),
	}

	resp := h.dispatch(ctx, info, req)
	if resp.Headers == nil {
		resp.Headers = respond.CORSHeaders()
	}
	resp.Headers["X-Request-Id"] = info.id

	elapsed := time.Since(start)
	metrics.ObserveRequest(info.action.String(), resp.StatusCode, elapsed)
	telemetry.Info("request.complete", map[string]any{
		"request_id":  info.id,
		"method":      info.method,
		"action":      info.action.String(),
		"status":      resp.StatusCode,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	return resp, nil
}

func (h *Handler) dispatch(ctx context.Context, info requestInfo, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("panic", map[string]any{
				"request_id": info.id,
				"action":     info.action.String(),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			resp = respond.Error(http.StatusInternalServerError, "internal_error", fmt.Sprint(rec))
		}
	}()

	var err error
	switch info.action {
	case ActionUpload:
		resp, err = h.upload(ctx, info, req)
	case ActionList:
		resp, err = h.list(ctx, info)
	case ActionDownload:
		resp, err = h.download(ctx, info, req)
	default: // ActionUnknown
		return h.fail(info, http.StatusBadRequest, "invalid_action", "Invalid action", ErrInvalidAction)
	}
	if err != nil {
		return h.fail(info, http.StatusInternalServerError, "internal_error", err.Error(), err)
	}
	return resp
}

func (h *Handler) upload(ctx context.Context, info requestInfo, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := h.requestBody(req)
	if err != nil {
		return h.fail(info, http.StatusBadRequest, "validation_error", err.Error(), err), nil
	}

	file, fields, err := DecodeForm(headerValue(req, "Content-Type"), body)
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedRequest):
			return h.fail(info, http.StatusBadRequest, "validation_error", err.Error(), err), nil
		case errors.Is(err, ErrMissingFilePart), errors.Is(err, ErrParse):
			return h.fail(info, http.StatusInternalServerError, "upload_failed", err.Error(), err), nil
		default:
			return events.APIGatewayProxyResponse{}, err
		}
	}

	res, err := h.Svc.Upload(ctx, file, fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFileType):
			msg := "Unsupported file type. Allowed types: " + strings.Join(AllowedExtensions(), ", ")
			return h.fail(info, http.StatusBadRequest, "unsupported_file_type", msg, err), nil
		case errors.Is(err, ErrMalformedRequest):
			return h.fail(info, http.StatusBadRequest, "validation_error", err.Error(), err), nil
		case errors.Is(err, object.ErrWrite):
			return h.fail(info, http.StatusInternalServerError, "upload_failed", err.Error(), err), nil
		default:
			return events.APIGatewayProxyResponse{}, err
		}
	}

	telemetry.Info("document.uploaded", map[string]any{
		"request_id":   info.id,
		"key":          res.Key,
		"content_type": res.ContentType,
		"size_bytes":   len(file.Data),
	})
	return respond.OK(toUploadResponse(res)), nil
}

func (h *Handler) list(ctx context.Context, info requestInfo) (events.APIGatewayProxyResponse, error) {
	docs, err := h.Svc.List(ctx)
	if err != nil {
		if errors.Is(err, object.ErrRead) {
			return h.fail(info, http.StatusInternalServerError, "list_failed", err.Error(), err), nil
		}
		return events.APIGatewayProxyResponse{}, err
	}
	return respond.OK(toListResponse(docs)), nil
}

func (h *Handler) download(ctx context.Context, info requestInfo, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	dl, err := h.Svc.Download(ctx, queryParam(req, "key"))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingKey):
			return h.fail(info, http.StatusBadRequest, "validation_error", "Missing key parameter", err), nil
		case errors.Is(err, object.ErrNotFound):
			return h.fail(info, http.StatusNotFound, "not_found", "File not found", err), nil
		case errors.Is(err, object.ErrRead):
			return h.fail(info, http.StatusInternalServerError, "download_failed", err.Error(), err), nil
		default:
			return events.APIGatewayProxyResponse{}, err
		}
	}

	if dl.ContentType == "text/plain" {
		return respond.OK(TextDownloadResponse{
			FileName:    dl.FileName,
			ContentType: dl.ContentType,
			Content:     base64.StdEncoding.EncodeToString(dl.Data),
			Metadata: DownloadMetadata{
				DocumentValueCode:     dl.DocumentValueCode,
				DocumentValueTypeCode: dl.DocumentValueTypeCode,
			},
		}), nil
	}

	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return respond.Attachment(dl.FileName, contentType, dl.Data, map[string]string{
		"X-Document-Value-Code":      dl.DocumentValueCode,
		"X-Document-Value-Type-Code": dl.DocumentValueTypeCode,
	}), nil
}

// requestBody returns the raw body, decoding it when the gateway flagged it as base64.
func (h *Handler) requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	var body []byte
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: body is not valid base64", ErrMalformedRequest)
		}
		body = decoded
	} else {
		body = []byte(req.Body)
	}
	if int64(len(body)) > h.MaxUploadBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedRequest, h.MaxUploadBytes)
	}
	return body, nil
}

func (h *Handler) fail(info requestInfo, status int, code, message string, err error) events.APIGatewayProxyResponse {
	fields := map[string]any{
		"request_id": info.id,
		"method":     info.method,
		"action":     info.action.String(),
		"status":     status,
		"code":       code,
		"message":    message,
	}
	if err != nil {
		fields["err"] = err.Error()
	}
	telemetry.Error("http.error", fields)
	return respond.Error(status, code, message)
}

func requestID(req events.APIGatewayProxyRequest) string {
	if id := req.RequestContext.RequestID; id != "" {
		return id
	}
	if id := headerValue(req, "X-Request-Id"); id != "" {
		return id
	}
	return uuid.NewString()
}

func headerValue(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	for k, vs := range req.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

func queryParam(req events.APIGatewayProxyRequest, name string) string {
	if v, ok := req.QueryStringParameters[name]; ok {
		return v
	}
	if vs := req.MultiValueQueryStringParameters[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
