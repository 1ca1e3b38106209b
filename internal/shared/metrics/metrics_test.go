package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("listDocuments", "200"))
	ObserveRequest("listDocuments", http.StatusOK, 15*time.Millisecond)
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("listDocuments", "200"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandlerRendersPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	AddUploadedBytes(42)
	ObserveRequest("uploadFile", http.StatusOK, time.Millisecond)

	router := gin.New()
	router.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"docstore_requests_total", "docstore_request_duration_seconds_bucket", "docstore_uploaded_bytes_total"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics output:\n%s", want, body)
		}
	}
}
