package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/main-salman/haqnow/admin-module/internal/api/middleware"
	"github.com/main-salman/haqnow/admin-module/internal/backend"
	"github.com/main-salman/haqnow/admin-module/internal/domain/model"
	"github.com/main-salman/haqnow/admin-module/internal/repository"
	"github.com/main-salman/haqnow/admin-module/internal/service"
)

// --- Фейковые зависимости ---

type stubDocBackend struct {
	docs      map[int64]*model.Document
	statusErr error
}

func (b *stubDocBackend) ListDocuments(_ context.Context, status model.DocumentStatus) ([]*model.Document, error) {
	var out []*model.Document
	for _, d := range b.docs {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *stubDocBackend) GetDocument(_ context.Context, id int64) (*model.Document, error) {
	d, ok := b.docs[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (b *stubDocBackend) UpdateDocumentMetadata(_ context.Context, id int64, meta model.DocumentMetadata) error {
	d, ok := b.docs[id]
	if !ok {
		return backend.ErrNotFound
	}
	d.Title = meta.Title
	return nil
}

func (b *stubDocBackend) UpdateDocumentStatus(_ context.Context, id int64, status model.DocumentStatus, _ string) error {
	if b.statusErr != nil {
		return b.statusErr
	}
	d, ok := b.docs[id]
	if !ok {
		return backend.ErrNotFound
	}
	d.Status = status
	return nil
}

func (b *stubDocBackend) DeleteDocument(_ context.Context, id int64) error {
	delete(b.docs, id)
	return nil
}

func (b *stubDocBackend) ProcessDocument(_ context.Context, _ int64, _ string) error {
	return nil
}

type stubAuditRepo struct {
	entries []repository.AuditEntry
}

func (r *stubAuditRepo) Record(_ context.Context, entry *repository.AuditEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, entityType string, limit, offset int) ([]repository.AuditEntry, error) {
	var out []repository.AuditEntry
	for _, e := range r.entries {
		if entityType == "" || e.EntityType == entityType {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubAuditRepo) Count(_ context.Context, entityType string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if entityType == "" || e.EntityType == entityType {
			n++
		}
	}
	return n, nil
}

type stubSettingsRepo struct {
	settings map[string]repository.UISetting
}

func (r *stubSettingsRepo) Get(_ context.Context, key string) (*repository.UISetting, error) {
	s, ok := r.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *stubSettingsRepo) Set(_ context.Context, key, value, updatedBy string) error {
	if r.settings == nil {
		r.settings = make(map[string]repository.UISetting)
	}
	r.settings[key] = repository.UISetting{Key: key, Value: value, UpdatedBy: updatedBy}
	return nil
}

func (r *stubSettingsRepo) List(_ context.Context) ([]repository.UISetting, error) {
	var out []repository.UISetting
	for _, s := range r.settings {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSettingsRepo) Delete(_ context.Context, key string) error {
	if _, ok := r.settings[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.settings, key)
	return nil
}

// --- Вспомогательные функции ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter собирает роутер с обработчиком и фиктивными claims
// в контексте каждого запроса.
func newTestRouter(t *testing.T, docBackend *stubDocBackend, audit *stubAuditRepo, super bool) chi.Router {
	t.Helper()

	logger := testLogger()
	h := NewAPIHandler(
		nil,
		service.NewDocumentService(docBackend, audit, logger),
		nil, nil, nil, nil, nil, nil,
		service.NewUISettingsService(&stubSettingsRepo{}, logger),
		audit,
		logger,
	)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := &middleware.AuthClaims{
				AdminID:      7,
				Email:        "moderator@haqnow.com",
				Name:         "Test Moderator",
				IsSuperAdmin: super,
			}
			ctx := context.WithValue(req.Context(), middleware.ContextKeyClaims, claims)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.Routes(r)
	return r
}

func pendingDoc(id int64) *model.Document {
	return &model.Document{
		ID:      id,
		Title:   "Отчёт о закупках",
		Country: "Jordan",
		Status:  model.StatusPending,
		PDFURL:  "https://files.haqnow.com/doc.pdf",
	}
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("не удалось разобрать тело ошибки: %v", err)
	}
	return resp.Error.Code
}

// --- Тесты ---

func TestListDocuments(t *testing.T) {
	backend := &stubDocBackend{docs: map[int64]*model.Document{42: pendingDoc(42)}}
	router := newTestRouter(t, backend, &stubAuditRepo{}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	var resp documentListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(resp.Documents) != 1 || resp.Documents[0].ID != 42 {
		t.Errorf("неожиданный список документов: %+v", resp.Documents)
	}
}

func TestListDocuments_InvalidStatus(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents?status=archived", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{docs: map[int64]*model.Document{}}, &stubAuditRepo{}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents/99", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидался 404", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != "NOT_FOUND" {
		t.Errorf("код ошибки = %q, ожидался NOT_FOUND", code)
	}
}

func TestGetDocument_InvalidID(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents/abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}
}

func TestApproveDocument(t *testing.T) {
	backend := &stubDocBackend{docs: map[int64]*model.Document{42: pendingDoc(42)}}
	audit := &stubAuditRepo{}
	router := newTestRouter(t, backend, audit, false)

	body := strings.NewReader(`{"title": "Отчёт о закупках 2024"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/42/approve", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200: %s", rec.Code, rec.Body.String())
	}
	var doc model.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("не удалось разобрать документ: %v", err)
	}
	if doc.Status != model.StatusApproved {
		t.Errorf("статус документа = %q, ожидался approved", doc.Status)
	}
	if doc.Title != "Отчёт о закупках 2024" {
		t.Errorf("правка заголовка не сохранилась: %q", doc.Title)
	}
	if len(audit.entries) == 0 {
		t.Error("действие не попало в журнал модерации")
	}
}

func TestApproveDocument_TransitionFailedAfterSave(t *testing.T) {
	backend := &stubDocBackend{
		docs:      map[int64]*model.Document{42: pendingDoc(42)},
		statusErr: errors.New("backend timeout"),
	}
	router := newTestRouter(t, backend, &stubAuditRepo{}, false)

	body := strings.NewReader(`{"title": "Исправленный заголовок"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/42/approve", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("статус = %d, ожидался 502: %s", rec.Code, rec.Body.String())
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != "TRANSITION_FAILED_AFTER_SAVE" {
		t.Errorf("код ошибки = %q, ожидался TRANSITION_FAILED_AFTER_SAVE", code)
	}
}

func TestAdminRoutes_RequireSuperAdmin(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admins", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("статус = %d, ожидался 403 для обычного администратора", rec.Code)
	}
}

func TestListAuditLog(t *testing.T) {
	audit := &stubAuditRepo{entries: []repository.AuditEntry{
		{ID: "a", Actor: "moderator@haqnow.com", EntityType: "document", EntityID: 1, Action: "approve"},
		{ID: "b", Actor: "moderator@haqnow.com", EntityType: "comment", EntityID: 2, Action: "reject"},
	}}
	router := newTestRouter(t, &stubDocBackend{}, audit, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit?entity_type=document", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	var resp auditListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if resp.Total != 1 || len(resp.Entries) != 1 || resp.Entries[0].EntityType != "document" {
		t.Errorf("неожиданный ответ журнала: %+v", resp)
	}
}

func TestListAuditLog_InvalidLimit(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	for _, raw := range []string{"0", "1000", "abc"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit?limit="+raw, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: статус = %d, ожидался 400", raw, rec.Code)
		}
	}
}

func TestSetSetting(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	body := strings.NewReader(`{"value": "50"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/moderation.page_size", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("статус = %d, ожидался 204: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings/moderation.page_size", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	var setting uiSettingDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &setting); err != nil {
		t.Fatalf("не удалось разобрать настройку: %v", err)
	}
	if setting.Value != "50" || setting.UpdatedBy != "moderator@haqnow.com" {
		t.Errorf("неожиданная настройка: %+v", setting)
	}
}

func TestSetSetting_InvalidValue(t *testing.T) {
	router := newTestRouter(t, &stubDocBackend{}, &stubAuditRepo{}, false)

	body := strings.NewReader(`{"value": "не число"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/moderation.page_size", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}
}
