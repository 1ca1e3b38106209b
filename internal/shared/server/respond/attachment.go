package respond

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Attachment builds a binary download response. The body is base64 encoded and
// flagged as such so the gateway decodes it before returning it to the client.
func Attachment(fileName, contentType string, data []byte, extra map[string]string) events.APIGatewayProxyResponse {
	h := map[string]string{
		"Content-Type":        contentType,
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", sanitizeHeaderValue(fileName)),
		"Content-Length":      strconv.Itoa(len(data)),
	}
	for k, v := range extra {
		h[k] = v
	}
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusOK,
		Headers:         headers(h),
		Body:            base64.StdEncoding.EncodeToString(data),
		IsBase64Encoded: true,
	}
}

func sanitizeHeaderValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
