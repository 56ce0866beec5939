package backend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockBackend создаёт mock HTTP-сервер backend API.
func setupMockBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// mockTokenProvider возвращает фиксированный токен.
func mockTokenProvider(token string) TokenProvider {
	return func(ctx context.Context) (string, error) {
		return token, nil
	}
}

// newTestClient создаёт клиент к mock-серверу.
func newTestClient(t *testing.T, serverURL string, tp TokenProvider) *Client {
	t.Helper()
	client, err := New(serverURL, "", 5*time.Second, tp, testLogger())
	if err != nil {
		t.Fatalf("Ошибка создания клиента: %v", err)
	}
	return client
}

// TestClient_ListDocuments проверяет список по статусу и Authorization header.
func TestClient_ListDocuments(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/document-processing/documents" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("status = %q, ожидается pending", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer admin-token" {
			t.Errorf("Authorization = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"documents": [
				{"id": 42, "title": "Budget", "status": "pending", "generated_tags": ["a","b"]},
				{"id": 43, "title": "Leak", "status": "pending", "generated_tags": "[\"x\"]"}
			],
			"total": 2
		}`))
	})

	client := newTestClient(t, server.URL, mockTokenProvider("admin-token"))

	docs, err := client.ListDocuments(context.Background(), model.StatusPending)
	if err != nil {
		t.Fatalf("ListDocuments вернул ошибку: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, ожидается 2", len(docs))
	}
	if docs[0].ID != 42 || docs[0].GeneratedTags[1] != "b" {
		t.Errorf("документ 0 разобран неверно: %+v", docs[0])
	}
	// Теги, закодированные строкой, нормализуются на границе
	if len(docs[1].GeneratedTags) != 1 || docs[1].GeneratedTags[0] != "x" {
		t.Errorf("строковые теги не нормализованы: %v", docs[1].GeneratedTags)
	}
}

// TestClient_ErrorMapping проверяет маппинг статусов backend в sentinel-ошибки.
func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"401 → ErrUnauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"403 → ErrUnauthorized", http.StatusForbidden, ErrUnauthorized},
		{"404 → ErrNotFound", http.StatusNotFound, ErrNotFound},
		{"500 → ErrBackendUnavailable", http.StatusInternalServerError, ErrBackendUnavailable},
		{"503 → ErrBackendUnavailable", http.StatusServiceUnavailable, ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			client := newTestClient(t, server.URL, nil)

			_, err := client.GetDocument(context.Background(), 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetDocument = %v, ожидается %v", err, tt.wantErr)
			}
		})
	}
}

// TestClient_UpdateDocumentStatus проверяет тело перехода статуса.
func TestClient_UpdateDocumentStatus(t *testing.T) {
	var body map[string]any
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("метод = %s, ожидается PUT", r.Method)
		}
		if r.URL.Path != "/api/document-processing/documents/42" {
			t.Errorf("путь = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("ошибка декодирования тела: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, server.URL, nil)
	if err := client.UpdateDocumentStatus(context.Background(), 42, model.StatusApproved, "admin@haqnow.com"); err != nil {
		t.Fatalf("UpdateDocumentStatus вернул ошибку: %v", err)
	}

	if body["status"] != "approved" {
		t.Errorf("status = %v", body["status"])
	}
	if body["approved_by"] != "admin@haqnow.com" {
		t.Errorf("approved_by = %v", body["approved_by"])
	}
	// Метаданные в переходе не участвуют
	if _, ok := body["title"]; ok {
		t.Error("переход статуса не должен отправлять title")
	}
}

// TestClient_ProcessDocument проверяет тело запуска pipeline.
func TestClient_ProcessDocument(t *testing.T) {
	var body processDocumentRequest
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/document-processing/process-document" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusAccepted)
	})

	client := newTestClient(t, server.URL, nil)
	if err := client.ProcessDocument(context.Background(), 42, "https://files.haqnow.com/42.pdf"); err != nil {
		t.Fatalf("ProcessDocument вернул ошибку: %v", err)
	}
	if body.DocumentID != 42 || body.PDFURL != "https://files.haqnow.com/42.pdf" {
		t.Errorf("тело запроса: %+v", body)
	}
}

// TestClient_BulkUpdateTranslations проверяет путь и тело bulk-обновления.
func TestClient_BulkUpdateTranslations(t *testing.T) {
	var body bulkUpdateRequest
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/translations/admin/bulk-update/de/navigation" {
			t.Errorf("путь = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, server.URL, nil)
	err := client.BulkUpdateTranslations(context.Background(), "de", "navigation",
		map[string]string{"greeting": "Hallo"})
	if err != nil {
		t.Fatalf("BulkUpdateTranslations вернул ошибку: %v", err)
	}
	if body.Translations["greeting"] != "Hallo" {
		t.Errorf("translations = %v", body.Translations)
	}
}

// TestClient_CreateAPIKey — plaintext присутствует в ответе создания.
func TestClient_CreateAPIKey(t *testing.T) {
	server := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "name": "uploader", "key_prefix": "hq_live_ab12",
			"scopes": ["upload"], "is_active": true, "plaintext_key": "hq_live_ab12cdef9999"}`))
	})

	client := newTestClient(t, server.URL, nil)
	created, err := client.CreateAPIKey(context.Background(), "uploader", []model.APIKeyScope{model.ScopeUpload})
	if err != nil {
		t.Fatalf("CreateAPIKey вернул ошибку: %v", err)
	}
	if created.PlaintextKey != "hq_live_ab12cdef9999" {
		t.Errorf("PlaintextKey = %q", created.PlaintextKey)
	}
	if created.KeyPrefix != "hq_live_ab12" {
		t.Errorf("KeyPrefix = %q", created.KeyPrefix)
	}
}
