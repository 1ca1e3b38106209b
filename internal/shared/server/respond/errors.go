package respond

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error builds a standardized error response.
func Error(status int, code, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers(map[string]string{"Content-Type": "application/json"}),
		Body:       string(body),
	}
}
