package respond

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"docstore-backend/internal/shared/telemetry"
)

// CORSHeaders returns the fixed permissive CORS header set attached to every response.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers":     "Content-Type, Authorization, X-Requested-With, X-Api-Key, X-Amz-Date, X-Amz-Security-Token",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Max-Age":           "86400",
	}
}

// headers merges extra over the CORS set.
func headers(extra map[string]string) map[string]string {
	h := CORSHeaders()
	for k, v := range extra {
		h[k] = v
	}
	return h
}

// JSON builds a JSON response with the given status.
func JSON(status int, payload interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		telemetry.Error("respond.marshal_failed", map[string]any{"err": err.Error()})
		return Error(http.StatusInternalServerError, "internal_error", "failed to encode response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers(map[string]string{"Content-Type": "application/json"}),
		Body:       string(body),
	}
}

// OK builds a 200 OK JSON response.
func OK(payload interface{}) events.APIGatewayProxyResponse {
	return JSON(http.StatusOK, payload)
}

// Preflight answers a CORS pre-flight request.
func Preflight() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    CORSHeaders(),
	}
}
