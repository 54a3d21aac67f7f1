package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestPistonExecute_ForwardsBodyVerbatim(t *testing.T) {
	var calls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)

		var req pistonExecuteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode execute request: %v", err)
		}
		if req.Language != "python" || req.Version != "3.10.0" {
			t.Errorf("unexpected runtime: %s %s", req.Language, req.Version)
		}
		if len(req.Files) != 1 || req.Files[0].Content != "print(42)" {
			t.Errorf("unexpected files payload: %+v", req.Files)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run":{"stdout":"42\n","stderr":"","code":0}}`))
	}))
	defer upstream.Close()

	client := NewPistonClient(upstream.URL)

	body, err := client.Execute(context.Background(), "print(42)")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var parsed struct {
		Run struct {
			Stdout string `json:"stdout"`
		} `json:"run"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if parsed.Run.Stdout != "42\n" {
		t.Errorf("Expected stdout %q, got %q", "42\n", parsed.Run.Stdout)
	}

	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("Expected exactly 1 upstream call, got %d", calls)
	}
}

func TestPistonExecute_NonOKStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unknown runtime"}`))
	}))
	defer upstream.Close()

	client := NewPistonClient(upstream.URL)

	_, err := client.Execute(context.Background(), "print(42)")
	if err == nil {
		t.Fatal("expected error for non-OK upstream status")
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if upErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", upErr.Status)
	}
}

func TestPistonExecute_NonJSONResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer upstream.Close()

	client := NewPistonClient(upstream.URL)

	if _, err := client.Execute(context.Background(), "print(42)"); err == nil {
		t.Fatal("expected error for non-JSON upstream response")
	}
}

func TestPistonExecute_TransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	client := NewPistonClient(upstream.URL)

	if _, err := client.Execute(context.Background(), "print(42)"); err == nil {
		t.Fatal("expected error when upstream is unreachable")
	}
}
