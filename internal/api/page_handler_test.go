package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"coursecms/internal/page"
	"coursecms/internal/pagestore"
	"coursecms/internal/tasks"
)

type memBlob struct {
	data []byte
}

func (b *memBlob) Read(_ context.Context) ([]byte, error)      { return b.data, nil }
func (b *memBlob) Write(_ context.Context, data []byte) error { b.data = data; return nil }

type fakeEnqueuer struct {
	enqueued []*asynq.Task
	err      error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.enqueued = append(f.enqueued, task)
	return &asynq.TaskInfo{}, nil
}

type fakeCleaner struct {
	prefixes []string
}

func (f *fakeCleaner) DeletePrefix(_ context.Context, prefix string) error {
	f.prefixes = append(f.prefixes, prefix)
	return nil
}

func newTestHandler(t *testing.T) (*PageHandler, *pagestore.Store, *fakeEnqueuer, *fakeCleaner) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := pagestore.NewStore(&memBlob{}, nil)
	enqueuer := &fakeEnqueuer{}
	cleaner := &fakeCleaner{}
	// the unreachable address makes rate counting a no-op in tests
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	h := NewPageHandler(store, enqueuer, cleaner, redisClient, nil, 60)
	return h, store, enqueuer, cleaner
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func testContext(w *httptest.ResponseRecorder, req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestCreatePage(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, jsonRequest(t, http.MethodPost, "/v1/pages", gin.H{
		"title":  "Hakkinda",
		"status": "draft",
	}))

	h.CreatePage(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created page.Page
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != 1 || created.Slug != "hakkinda" || created.Author != "Site Admin" {
		t.Fatalf("unexpected page: %+v", created)
	}
}

func TestCreatePageDuplicateSlug(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, pagestore.PageInput{Title: "About"}); err != nil {
		t.Fatalf("seed page: %v", err)
	}

	w := httptest.NewRecorder()
	c := testContext(w, jsonRequest(t, http.MethodPost, "/v1/pages", gin.H{
		"title": "Other",
		"slug":  "about",
	}))

	h.CreatePage(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreatePageMissingTitle(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, jsonRequest(t, http.MethodPost, "/v1/pages", gin.H{"slug": "x"}))

	h.CreatePage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUpdatePageNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, jsonRequest(t, http.MethodPut, "/v1/pages/42", gin.H{"title": "X"}))
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	h.UpdatePage(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeletePageCleansPreviews(t *testing.T) {
	h, store, _, cleaner := newTestHandler(t)
	p, err := store.Create(context.Background(), pagestore.PageInput{Title: "Doomed"})
	if err != nil {
		t.Fatalf("seed page: %v", err)
	}

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodDelete, "/v1/pages/1", nil))
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.DeletePage(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}
	if len(cleaner.prefixes) != 1 || !strings.Contains(cleaner.prefixes[0], "page-previews/1/") {
		t.Fatalf("preview cleanup not requested: %v", cleaner.prefixes)
	}
	if _, err := store.Get(context.Background(), p.ID); err == nil {
		t.Fatal("page still present after delete")
	}
}

func TestPreviewPageSanitizesBlocks(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, jsonRequest(t, http.MethodPost, "/v1/pages/preview", gin.H{
		"content": "<p>freehand</p>",
		"blocks": []gin.H{
			{"id": "b1", "type": "text", "data": gin.H{"html": `<p onclick="x()">hi</p><script>evil()</script>`}},
		},
	}))
	c.Set("userID", uint(1))

	h.PreviewPage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "onclick") || strings.Contains(body, "script") {
		t.Fatalf("preview not sanitized: %s", body)
	}
	if strings.Contains(body, "freehand") {
		t.Fatalf("blocks should override freehand content: %s", body)
	}
	if !strings.Contains(body, "hi") {
		t.Fatalf("block content missing: %s", body)
	}
}

func TestSnapshotPageEnqueuesTask(t *testing.T) {
	h, store, enqueuer, _ := newTestHandler(t)
	if _, err := store.Create(context.Background(), pagestore.PageInput{Title: "Shot"}); err != nil {
		t.Fatalf("seed page: %v", err)
	}

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodPost, "/v1/pages/1/snapshot", nil))
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set("userID", uint(7))

	h.SnapshotPage(c)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d body=%s", w.Code, w.Body.String())
	}
	if len(enqueuer.enqueued) != 1 {
		t.Fatalf("expected one enqueued task, got %d", len(enqueuer.enqueued))
	}
	task := enqueuer.enqueued[0]
	if task.Type() != tasks.TypePageSnapshot {
		t.Fatalf("task type = %s", task.Type())
	}
	var payload tasks.PageSnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.PageID != 1 || payload.RequestedBy != 7 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSnapshotPageUnknownID(t *testing.T) {
	h, _, enqueuer, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodPost, "/v1/pages/9/snapshot", nil))
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	c.Set("userID", uint(7))

	h.SnapshotPage(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if len(enqueuer.enqueued) != 0 {
		t.Fatal("task enqueued for missing page")
	}
}

func TestPublicPageServesPublishedOnly(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, pagestore.PageInput{Title: "Draft Page", Status: "draft"}); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	if _, err := store.Create(ctx, pagestore.PageInput{
		Title:   "Live Page",
		Status:  "published",
		Content: `<p>welcome</p><script>evil()</script>`,
	}); err != nil {
		t.Fatalf("seed published: %v", err)
	}

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/pages/live-page", nil))
	c.Params = gin.Params{{Key: "slug", Value: "live-page"}}
	h.PublicPage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "script") || strings.Contains(body, "evil") {
		t.Fatalf("published content not sanitized: %s", body)
	}
	if !strings.Contains(body, "welcome") {
		t.Fatalf("content missing: %s", body)
	}

	w = httptest.NewRecorder()
	c = testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/pages/draft-page", nil))
	c.Params = gin.Params{{Key: "slug", Value: "draft-page"}}
	h.PublicPage(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("draft page must look missing, got %d", w.Code)
	}
}

func TestPublicPageIncrementsViews(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()
	p, err := store.Create(ctx, pagestore.PageInput{Title: "Counted", Status: "published"})
	if err != nil {
		t.Fatalf("seed page: %v", err)
	}

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/pages/counted", nil))
	c.Params = gin.Params{{Key: "slug", Value: "counted"}}
	h.PublicPage(c)

	got, _ := store.Get(ctx, p.ID)
	if got.Views != 1 {
		t.Fatalf("views = %d", got.Views)
	}
}

func TestPublicMenuFilters(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()

	store.Create(ctx, pagestore.PageInput{Title: "Hidden", Status: "published", InMenu: false})
	store.Create(ctx, pagestore.PageInput{Title: "Draft Entry", Status: "draft", InMenu: true})
	store.Create(ctx, pagestore.PageInput{Title: "Visible", Status: "published", InMenu: true})

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/menu", nil))
	h.PublicMenu(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var entries []menuEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode menu: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "visible" {
		t.Fatalf("unexpected menu: %+v", entries)
	}
}

func TestPublicHome(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/home", nil))
	h.PublicHome(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without homepage, got %d", w.Code)
	}

	store.Create(ctx, pagestore.PageInput{Title: "Home", Status: "published", IsHomepage: true})

	w = httptest.NewRecorder()
	c = testContext(w, httptest.NewRequest(http.MethodGet, "/v1/public/home", nil))
	h.PublicHome(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestBlockDefaultsRequiresType(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/pages/block-defaults", nil))
	h.BlockDefaults(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c = testContext(w, httptest.NewRequest(http.MethodGet, "/v1/pages/block-defaults?type=hero&title=Deneme", nil))
	h.BlockDefaults(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var b page.Block
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode block: %v", err)
	}
	if b.Type != page.TypeHero || b.Data["heading"] != "Deneme" {
		t.Fatalf("unexpected block: %+v", b)
	}
}

func TestGetTemplate(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c := testContext(w, httptest.NewRequest(http.MethodGet, "/v1/pages/templates/iletisim-sayfa", nil))
	c.Params = gin.Params{{Key: "name", Value: "iletisim-sayfa"}}
	h.GetTemplate(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c = testContext(w, httptest.NewRequest(http.MethodGet, "/v1/pages/templates/missing", nil))
	c.Params = gin.Params{{Key: "name", Value: "missing"}}
	h.GetTemplate(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
