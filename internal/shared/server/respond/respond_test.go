package respond

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCORS(t *testing.T, h map[string]string) {
	t.Helper()
	assert.Equal(t, "*", h["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", h["Access-Control-Allow-Methods"])
	assert.NotEmpty(t, h["Access-Control-Allow-Headers"])
	assert.Equal(t, "true", h["Access-Control-Allow-Credentials"])
	assert.Equal(t, "86400", h["Access-Control-Max-Age"])
}

func TestJSON(t *testing.T) {
	resp := JSON(http.StatusCreated, map[string]string{"ok": "yes"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"ok":"yes"}`, resp.Body)
	assert.False(t, resp.IsBase64Encoded)
	assertCORS(t, resp.Headers)
}

func TestJSONUnencodable(t *testing.T) {
	resp := JSON(http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestError(t *testing.T) {
	resp := Error(http.StatusNotFound, "not_found", "document not found")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertCORS(t, resp.Headers)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "document not found", body.Error.Message)
}

func TestPreflight(t *testing.T) {
	resp := Preflight()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assertCORS(t, resp.Headers)
}

func TestAttachment(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x00}
	resp := Attachment("logo\r\n.png", "image/png", data, map[string]string{"X-Document-Value-Code": "NA"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, "image/png", resp.Headers["Content-Type"])
	assert.Equal(t, `attachment; filename="logo.png"`, resp.Headers["Content-Disposition"])
	assert.Equal(t, "5", resp.Headers["Content-Length"])
	assert.Equal(t, "NA", resp.Headers["X-Document-Value-Code"])
	assertCORS(t, resp.Headers)

	decoded, err := base64.StdEncoding.DecodeString(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}
