package board

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thenamakop/taskboard/internal/models"
)

func TestBearerAPICarriesToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer server.Close()

	api := NewBearerAPI(server.URL, "secret-token")
	if _, err := api.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q; want %q", gotAuth, "Bearer secret-token")
	}
}

func TestBearerAPIDecodesStructuredFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "task not found",
			"kind":  "not_found",
		})
	}))
	defer server.Close()

	api := NewBearerAPI(server.URL, "token")
	_, err := api.UpdateTask(context.Background(), "missing", TaskPatch{})
	if err == nil {
		t.Fatal("UpdateTask() error = nil; want StatusError")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error type = %T; want *StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("Code = %d; want 404", statusErr.Code)
	}
	if statusErr.Kind != "not_found" {
		t.Errorf("Kind = %q; want %q", statusErr.Kind, "not_found")
	}
}

func TestBearerAPIPatchBodyOmitsUnsetFields(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(models.Task{ID: "t1"})
	}))
	defer server.Close()

	api := NewBearerAPI(server.URL, "token")
	status := models.StatusDone
	if _, err := api.UpdateTask(context.Background(), "t1", TaskPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if len(body) != 1 {
		t.Errorf("patch body fields = %d (%v); want only status", len(body), body)
	}
	if body["status"] != models.StatusDone {
		t.Errorf("status = %v; want %q", body["status"], models.StatusDone)
	}
}
