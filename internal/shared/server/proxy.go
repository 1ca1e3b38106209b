package server

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"

	"docstore-backend/internal/shared/server/middleware"
	"docstore-backend/internal/shared/server/respond"
	"docstore-backend/internal/shared/telemetry"
)

// ProxyHandler is the API Gateway REST proxy signature served by the Lambda entry point.
type ProxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Adapt serves a ProxyHandler over plain HTTP. The request body is always
// forwarded base64 encoded, the way the gateway does for binary media types.
func Adapt(h ProxyHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := ToProxyRequest(c.Request, middleware.RequestIDFromContext(c))
		if err != nil {
			writeProxyResponse(c, respond.Error(http.StatusBadRequest, "validation_error", "could not read request body"))
			return
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			telemetry.Error("proxy.handler_error", map[string]any{
				"request_id": req.RequestContext.RequestID,
				"err":        err.Error(),
			})
			resp = respond.Error(http.StatusInternalServerError, "internal_error", err.Error())
		}
		writeProxyResponse(c, resp)
	}
}

// ToProxyRequest converts an HTTP request into the gateway proxy envelope.
func ToProxyRequest(r *http.Request, requestID string) (events.APIGatewayProxyRequest, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, err
		}
		body = b
	}

	headers := make(map[string]string, len(r.Header))
	multiHeaders := make(map[string][]string, len(r.Header))
	for k, vs := range r.Header {
		if len(vs) == 0 {
			continue
		}
		headers[k] = strings.Join(vs, ",")
		multiHeaders[k] = append([]string(nil), vs...)
	}

	query := r.URL.Query()
	params := make(map[string]string, len(query))
	multiParams := make(map[string][]string, len(query))
	for k, vs := range query {
		if len(vs) == 0 {
			continue
		}
		params[k] = vs[len(vs)-1]
		multiParams[k] = append([]string(nil), vs...)
	}

	return events.APIGatewayProxyRequest{
		Resource:                        r.URL.Path,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           params,
		MultiValueQueryStringParameters: multiParams,
		Body:                            base64.StdEncoding.EncodeToString(body),
		IsBase64Encoded:                 true,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  requestID,
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
		},
	}, nil
}

func writeProxyResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	h := c.Writer.Header()
	for k, v := range resp.Headers {
		h.Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		h.Del(k)
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			telemetry.Error("proxy.bad_response_body", map[string]any{"err": err.Error()})
			c.AbortWithStatus(http.StatusBadGateway)
			return
		}
		body = decoded
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	c.Status(status)
	if len(body) == 0 {
		c.Writer.WriteHeaderNow()
		return
	}
	_, _ = c.Writer.Write(body)
}
