package pagestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursecms/internal/page"
)

type memBlob struct {
	data []byte
}

func (b *memBlob) Read(_ context.Context) ([]byte, error)      { return b.data, nil }
func (b *memBlob) Write(_ context.Context, data []byte) error { b.data = data; return nil }

func newTestStore() (*Store, *memBlob) {
	blob := &memBlob{}
	s := NewStore(blob, nil)
	tick := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return s, blob
}

func TestCreateAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	p, err := s.Create(ctx, PageInput{Title: "Hakkinda Sayfasi", Status: "draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("id = %d", p.ID)
	}
	if p.Slug != "hakkinda-sayfasi" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Author != "Site Admin" {
		t.Errorf("author = %q", p.Author)
	}
	if p.Views != 0 {
		t.Errorf("views = %d", p.Views)
	}
	if p.CreatedAt != p.UpdatedAt {
		t.Errorf("timestamps differ: %s vs %s", p.CreatedAt, p.UpdatedAt)
	}
	if _, err := time.Parse(time.RFC3339, p.CreatedAt); err != nil {
		t.Errorf("createdAt not RFC3339: %q", p.CreatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	if _, err := s.Create(ctx, PageInput{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title: %v", err)
	}
	if _, err := s.Create(ctx, PageInput{Title: "!!!"}); !errors.Is(err, ErrSlugRequired) {
		t.Errorf("unslugifiable title: %v", err)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	if _, err := s.Create(ctx, PageInput{Title: "About"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, PageInput{Title: "Other", Slug: "about"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("duplicate slug: %v", err)
	}
}

func TestCreateIDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	a, _ := s.Create(ctx, PageInput{Title: "One"})
	b, _ := s.Create(ctx, PageInput{Title: "Two"})
	c, _ := s.Create(ctx, PageInput{Title: "Three"})
	if a.ID != 1 || b.ID != 2 || c.ID != 3 {
		t.Fatalf("ids = %d %d %d", a.ID, b.ID, c.ID)
	}

	// deleting the newest must not free its id for reuse
	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	d, _ := s.Create(ctx, PageInput{Title: "Four"})
	if d.ID != 3 {
		t.Fatalf("id after delete = %d", d.ID)
	}
}

func TestCreatePrependsNewest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	s.Create(ctx, PageInput{Title: "First"})
	s.Create(ctx, PageInput{Title: "Second"})

	pages, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != 2 || pages[0].Title != "Second" {
		t.Fatalf("order wrong: %+v", pages)
	}
}

func TestCreateBlocksWinOverContent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	blocks := []page.Block{{ID: "b1", Type: page.TypeText, Data: map[string]any{"html": "<p>from blocks</p>"}}}
	p, err := s.Create(ctx, PageInput{Title: "Mixed", Content: "<p>freehand</p>", Blocks: blocks})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Content == "<p>freehand</p>" {
		t.Fatal("blocks should override freehand content")
	}
	if len(p.Blocks) != 1 {
		t.Fatalf("blocks not stored: %+v", p.Blocks)
	}
}

func TestUpdatePreservesIdentityFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	created, _ := s.Create(ctx, PageInput{Title: "Original"})
	updated, err := s.Update(ctx, created.ID, PageInput{Title: "Renamed", Slug: "renamed", Status: "published"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("createdAt changed")
	}
	if updated.Author != created.Author {
		t.Errorf("author changed")
	}
	if updated.UpdatedAt == created.UpdatedAt {
		t.Errorf("updatedAt not refreshed")
	}
	if updated.Status != "published" {
		t.Errorf("status = %q", updated.Status)
	}
}

func TestUpdateRejectsSlugOfOtherPage(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	s.Create(ctx, PageInput{Title: "About"})
	second, _ := s.Create(ctx, PageInput{Title: "Contact"})

	if _, err := s.Update(ctx, second.ID, PageInput{Title: "Contact", Slug: "about"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected slug conflict, got %v", err)
	}
	// keeping its own slug is fine
	if _, err := s.Update(ctx, second.ID, PageInput{Title: "Contact v2", Slug: "contact"}); err != nil {
		t.Fatalf("self slug rejected: %v", err)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	if _, err := s.Update(ctx, 99, PageInput{Title: "X"}); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	p, _ := s.Create(ctx, PageInput{Title: "Doomed"})
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("still found: %v", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestFindBySlugNormalizes(t *testing.T) {
	ctx := context.Background()
	s, blob := newTestStore()

	s.Create(ctx, PageInput{Title: "About"})
	if _, err := s.FindBySlug(ctx, "/about"); err != nil {
		t.Fatalf("leading slash in query: %v", err)
	}

	// legacy records may carry a leading slash in the stored slug
	blob.data = []byte(`[{"id":9,"title":"Legacy","slug":"/legacy","status":"published","content":"","author":"Site Admin","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z","views":0,"isHomepage":false,"in_menu":true}]`)
	if _, err := s.FindBySlug(ctx, "legacy"); err != nil {
		t.Fatalf("legacy slug: %v", err)
	}
}

func TestCorruptBlobTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	s, blob := newTestStore()
	blob.data = []byte(`{not json`)

	pages, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected empty list, got %d", len(pages))
	}
	// a create over a corrupt blob starts the store fresh
	if _, err := s.Create(ctx, PageInput{Title: "Fresh"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestSetPreviewImage(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	p, _ := s.Create(ctx, PageInput{Title: "Shot"})
	if err := s.SetPreviewImage(ctx, p.ID, "https://cdn.example.com/p.jpg"); err != nil {
		t.Fatalf("set preview: %v", err)
	}
	got, _ := s.Get(ctx, p.ID)
	if got.PreviewImageURL != "https://cdn.example.com/p.jpg" {
		t.Fatalf("url = %q", got.PreviewImageURL)
	}
	if got.UpdatedAt != p.UpdatedAt {
		t.Fatalf("preview update must not touch updatedAt")
	}
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	p, _ := s.Create(ctx, PageInput{Title: "Counted"})
	for i := 0; i < 3; i++ {
		if err := s.IncrementViews(ctx, p.ID); err != nil {
			t.Fatalf("incr: %v", err)
		}
	}
	got, _ := s.Get(ctx, p.ID)
	if got.Views != 3 {
		t.Fatalf("views = %d", got.Views)
	}
	if err := s.IncrementViews(ctx, 404); err != nil {
		t.Fatalf("missing page should be silent: %v", err)
	}
}
