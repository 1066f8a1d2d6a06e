package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method, route string
	status        int
}

type requestRecorderStub struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *requestRecorderStub) RecordRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	r.reqs = append(r.reqs, recordedRequest{method, route, status})
	r.mu.Unlock()
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	stub := &requestRecorderStub{}
	handler := Chain(RequestID, Metrics(stub))(mux)

	for _, path := range []string{"/api/entries/1", "/api/entries/2", "/nope"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, path, nil))
	}

	require.Len(t, stub.reqs, 3)
	assert.Equal(t, recordedRequest{"DELETE", "DELETE /api/entries/{id}", 204}, stub.reqs[0])
	assert.Equal(t, recordedRequest{"DELETE", "DELETE /api/entries/{id}", 204}, stub.reqs[1])
	assert.Equal(t, recordedRequest{"DELETE", "unmatched", 404}, stub.reqs[2])
}
