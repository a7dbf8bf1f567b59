// Package pagestore 把全部页面作为单个 JSON 数组保存在一个 KV blob 里。
// 读改写是整体替换，没有记录级锁：两个管理端同时保存时后写者覆盖前者。
// 站点页面数量很小（几十个量级），这个取舍是可接受的。
package pagestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coursecms/internal/page"
)

var (
	ErrTitleRequired = errors.New("pagestore: title is required")
	ErrSlugRequired  = errors.New("pagestore: a valid slug is required")
	ErrSlugTaken     = errors.New("pagestore: slug is already in use")
	ErrPageNotFound  = errors.New("pagestore: page not found")
)

// Blob 是页面数组的底层存储。Read 在键不存在时返回 (nil, nil)。
type Blob interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store 提供页面的增删改查。所有时间戳都是 UTC 的 RFC3339 格式。
type Store struct {
	blob   Blob
	logger *slog.Logger

	now func() time.Time
}

func NewStore(blob Blob, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		blob:   blob,
		logger: logger,
		now:    time.Now,
	}
}

// PageInput 是创建和更新共用的写入载荷。
type PageInput struct {
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	Status     string       `json:"status"`
	Content    string       `json:"content"`
	Blocks     []page.Block `json:"blocks"`
	IsHomepage bool         `json:"isHomepage"`
	InMenu     bool         `json:"in_menu"`
	PageType   string       `json:"page_type"`
}

// List 返回全部页面，新创建的排在前面。
// blob 缺失或内容损坏时返回空列表，不返回错误：损坏的存储
// 不应让管理端整个瘫痪，只记一条告警。
func (s *Store) List(ctx context.Context) ([]page.Page, error) {
	raw, err := s.blob.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pages blob: %w", err)
	}
	if len(raw) == 0 {
		return []page.Page{}, nil
	}
	var pages []page.Page
	if err := json.Unmarshal(raw, &pages); err != nil {
		s.logger.Warn("pages blob is corrupt, treating as empty", "error", err)
		return []page.Page{}, nil
	}
	return pages, nil
}

// Get 按 ID 查找页面。
func (s *Store) Get(ctx context.Context, id int) (page.Page, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return page.Page{}, err
	}
	for _, p := range pages {
		if p.ID == id {
			return p, nil
		}
	}
	return page.Page{}, ErrPageNotFound
}

// FindBySlug 按规范化后的 slug 查找页面。存量数据里的 slug 可能带
// 前导斜杠，比较前两侧都做规范化。
func (s *Store) FindBySlug(ctx context.Context, slug string) (page.Page, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return page.Page{}, err
	}
	want := page.NormalizeSlug(slug)
	for _, p := range pages {
		if page.NormalizeSlug(p.Slug) == want {
			return p, nil
		}
	}
	return page.Page{}, ErrPageNotFound
}

// Create 新建页面并返回完整记录。
//   - slug 为空时由标题派生；
//   - ID 取当前最大 ID 加一，空库从 1 开始；
//   - 块非空时 content 由块渲染覆盖，同时保存块本身；
//   - 新页面插在列表最前。
func (s *Store) Create(ctx context.Context, in PageInput) (page.Page, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return page.Page{}, ErrTitleRequired
	}
	slugSource := in.Slug
	if slugSource == "" {
		slugSource = in.Title
	}
	finalSlug := page.Slugify(slugSource)
	if finalSlug == "" || finalSlug == "/" {
		return page.Page{}, ErrSlugRequired
	}
	finalSlug = page.NormalizeSlug(finalSlug)

	pages, err := s.List(ctx)
	if err != nil {
		return page.Page{}, err
	}
	for _, p := range pages {
		if page.NormalizeSlug(p.Slug) == finalSlug {
			return page.Page{}, ErrSlugTaken
		}
	}

	nextID := 1
	for _, p := range pages {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	now := s.now().UTC().Format(time.RFC3339)
	content := in.Content
	if len(in.Blocks) > 0 {
		content = page.RenderBlocks(in.Blocks)
	}
	status := in.Status
	if status == "" {
		status = page.StatusDraft
	}

	created := page.Page{
		ID:         nextID,
		Title:      title,
		Slug:       finalSlug,
		Status:     status,
		Content:    content,
		Author:     "Site Admin",
		CreatedAt:  now,
		UpdatedAt:  now,
		Views:      0,
		IsHomepage: in.IsHomepage,
		InMenu:     in.InMenu,
		PageType:   normalizePageType(in.PageType),
	}
	if len(in.Blocks) > 0 {
		created.Blocks = in.Blocks
	}

	next := append([]page.Page{created}, pages...)
	if err := s.write(ctx, next); err != nil {
		return page.Page{}, err
	}
	s.logger.Info("page created", "id", created.ID, "slug", created.Slug, "status", created.Status)
	return created, nil
}

// Update 重写一条已有页面。ID、createdAt、author、views 保持不变，
// updatedAt 刷新。新块序列为空时保留旧块，content 用传入值。
func (s *Store) Update(ctx context.Context, id int, in PageInput) (page.Page, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return page.Page{}, ErrTitleRequired
	}
	slugSource := in.Slug
	if slugSource == "" {
		slugSource = in.Title
	}
	finalSlug := page.NormalizeSlug(page.Slugify(slugSource))
	if finalSlug == "" {
		return page.Page{}, ErrSlugRequired
	}

	pages, err := s.List(ctx)
	if err != nil {
		return page.Page{}, err
	}

	idx := -1
	for i, p := range pages {
		if p.ID == id {
			idx = i
			continue
		}
		if page.NormalizeSlug(p.Slug) == finalSlug {
			return page.Page{}, ErrSlugTaken
		}
	}
	if idx < 0 {
		return page.Page{}, ErrPageNotFound
	}

	updated := pages[idx]
	updated.Title = title
	updated.Slug = finalSlug
	if in.Status != "" {
		updated.Status = in.Status
	}
	if len(in.Blocks) > 0 {
		updated.Blocks = in.Blocks
		updated.Content = page.RenderBlocks(in.Blocks)
	} else {
		updated.Content = in.Content
	}
	updated.IsHomepage = in.IsHomepage
	updated.InMenu = in.InMenu
	updated.PageType = normalizePageType(in.PageType)
	updated.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	pages[idx] = updated
	if err := s.write(ctx, pages); err != nil {
		return page.Page{}, err
	}
	s.logger.Info("page updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// Delete 按 ID 删除页面。
func (s *Store) Delete(ctx context.Context, id int) error {
	pages, err := s.List(ctx)
	if err != nil {
		return err
	}
	next := pages[:0]
	found := false
	for _, p := range pages {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return ErrPageNotFound
	}
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.logger.Info("page deleted", "id", id)
	return nil
}

// SetPreviewImage 只更新预览截图地址，不动 updatedAt：截图是后台
// 任务产物，不算作者编辑。
func (s *Store) SetPreviewImage(ctx context.Context, id int, url string) error {
	pages, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range pages {
		if pages[i].ID == id {
			pages[i].PreviewImageURL = url
			return s.write(ctx, pages)
		}
	}
	return ErrPageNotFound
}

// IncrementViews 给页面浏览数加一。页面不存在时静默忽略，
// 计数丢失不值得让公开页报错。
func (s *Store) IncrementViews(ctx context.Context, id int) error {
	pages, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range pages {
		if pages[i].ID == id {
			pages[i].Views++
			return s.write(ctx, pages)
		}
	}
	return nil
}

func (s *Store) write(ctx context.Context, pages []page.Page) error {
	raw, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("marshal pages: %w", err)
	}
	if err := s.blob.Write(ctx, raw); err != nil {
		return fmt.Errorf("write pages blob: %w", err)
	}
	return nil
}

// pageType 的 "none" 等价于未设置，落库时归一为空串。
func normalizePageType(t string) string {
	if t == "none" {
		return ""
	}
	return t
}
