package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"coursecms/internal/api/middleware"
	"coursecms/internal/page"
	"coursecms/internal/pagestore"
	"coursecms/internal/tasks"
)

// taskEnqueuer 抽象 asynq 客户端，便于测试注入。
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// previewCleaner 负责清理已删除页面遗留的预览对象。
type previewCleaner interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// PageHandler 处理页面的增删改查、预览与快照入队。
type PageHandler struct {
	store                   *pagestore.Store
	enqueuer                taskEnqueuer
	previews                previewCleaner
	redis                   redis.UniversalClient
	logger                  *slog.Logger
	policy                  *bluemonday.Policy
	previewRateLimitPerHour int
}

// NewPageHandler 构造页面处理器。
func NewPageHandler(
	store *pagestore.Store,
	enqueuer taskEnqueuer,
	previews previewCleaner,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	previewRateLimitPerHour int,
) *PageHandler {
	if previewRateLimitPerHour <= 0 {
		previewRateLimitPerHour = 60
	}
	return &PageHandler{
		store:                   store,
		enqueuer:                enqueuer,
		previews:                previews,
		redis:                   redisClient,
		logger:                  logger,
		policy:                  page.ServePolicy(),
		previewRateLimitPerHour: previewRateLimitPerHour,
	}
}

type pageRequest struct {
	Title      string       `json:"title" binding:"required"`
	Slug       string       `json:"slug"`
	Status     string       `json:"status" binding:"omitempty,oneof=draft published private"`
	Content    string       `json:"content"`
	Blocks     []page.Block `json:"blocks"`
	IsHomepage bool         `json:"isHomepage"`
	InMenu     bool         `json:"in_menu"`
	PageType   string       `json:"page_type"`
}

func (r pageRequest) toInput() pagestore.PageInput {
	return pagestore.PageInput{
		Title:      r.Title,
		Slug:       r.Slug,
		Status:     r.Status,
		Content:    r.Content,
		Blocks:     r.Blocks,
		IsHomepage: r.IsHomepage,
		InMenu:     r.InMenu,
		PageType:   r.PageType,
	}
}

// ListPages 返回全部页面（含草稿与私有页），供后台列表使用。
func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.store.List(c.Request.Context())
	if err != nil {
		h.loggerFromContext(c).Error("list pages failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, pages)
}

// GetPage 按 ID 返回单个页面。
func (h *PageHandler) GetPage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}
	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePage 新建页面。
func (h *PageHandler) CreatePage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	p, err := h.store.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdatePage 更新已有页面。
func (h *PageHandler) UpdatePage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	p, err := h.store.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePage 删除页面，并尽力清理对象存储里的预览截图。
func (h *PageHandler) DeletePage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, id); err != nil {
		h.respondStoreError(c, err)
		return
	}
	if h.previews != nil {
		prefix := fmt.Sprintf("page-previews/%d/", id)
		if err := h.previews.DeletePrefix(ctx, prefix); err != nil {
			h.loggerFromContext(c).Warn("cleanup page previews failed",
				slog.Int("page_id", id),
				slog.Any("error", err),
			)
		}
	}
	c.Status(http.StatusNoContent)
}

type previewRequest struct {
	Content string       `json:"content"`
	Blocks  []page.Block `json:"blocks"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

// PreviewPage 渲染未保存的编辑器状态并返回净化后的 HTML。
// 每个用户每小时有调用上限，预览会拉起完整的渲染与正则净化。
func (h *PageHandler) PreviewPage(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	rateKey := "rate:preview:" + strconv.FormatUint(uint64(userID), 10) + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > int64(h.previewRateLimitPerHour) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	html := req.Content
	if len(req.Blocks) > 0 {
		html = page.RenderBlocks(req.Blocks)
	}
	c.JSON(http.StatusOK, previewResponse{HTML: page.Sanitize(html)})
}

// BlockDefaults 按类型返回一个带默认数据的新块，供编辑器插入。
func (h *PageHandler) BlockDefaults(c *gin.Context) {
	blockType := c.Query("type")
	if blockType == "" {
		BadRequest(c, "type query parameter is required")
		return
	}
	c.JSON(http.StatusOK, page.NewBlock(blockType, c.Query("title")))
}

// ListTemplates 返回可用的页面模板名。
func (h *PageHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": page.TemplateNames()})
}

type templateResponse struct {
	Blocks  []page.Block `json:"blocks"`
	Content string       `json:"content,omitempty"`
}

// GetTemplate 返回指定模板的块序列或自由 HTML。
func (h *PageHandler) GetTemplate(c *gin.Context) {
	name := c.Param("name")
	blocks, content := page.ApplyTemplate(name, c.Query("title"))
	if blocks == nil && content == "" {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, templateResponse{Blocks: blocks, Content: content})
}

type snapshotResponse struct {
	PageID        int    `json:"page_id"`
	CorrelationID string `json:"correlation_id"`
}

// SnapshotPage 为页面入队一个预览截图任务，立即返回 202。
// 任务完成后通过 WebSocket 推送结果。
func (h *PageHandler) SnapshotPage(c *gin.Context) {
	id, ok := pageIDParam(c)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Int("page_id", id))

	if _, err := h.store.Get(ctx, id); err != nil {
		h.respondStoreError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPageSnapshotTask(id, userID, correlationID)
	if err != nil {
		logger.Error("build snapshot task failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if _, err := h.enqueuer.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("enqueue snapshot task failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("snapshot task enqueued", slog.String("correlation_id", correlationID))
	c.JSON(http.StatusAccepted, snapshotResponse{PageID: id, CorrelationID: correlationID})
}

type publicPageResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	PageType  string `json:"page_type,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// PublicPage 对外提供已发布页面。草稿与私有页一律按不存在处理，
// 不暴露状态差异。正文经正则净化与白名单策略双重过滤。
func (h *PageHandler) PublicPage(c *gin.Context) {
	slug := page.NormalizeSlug(c.Param("slug"))
	if slug == "" {
		NotFound(c, "page not found")
		return
	}

	ctx := c.Request.Context()
	p, err := h.store.FindBySlug(ctx, slug)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	if !p.IsPublished() {
		NotFound(c, "page not found")
		return
	}

	if err := h.store.IncrementViews(ctx, p.ID); err != nil {
		h.loggerFromContext(c).Warn("increment views failed",
			slog.Int("page_id", p.ID),
			slog.Any("error", err),
		)
	}

	c.JSON(http.StatusOK, h.toPublicResponse(p))
}

// PublicHome 返回被标记为首页的已发布页面。
func (h *PageHandler) PublicHome(c *gin.Context) {
	pages, err := h.store.List(c.Request.Context())
	if err != nil {
		h.loggerFromContext(c).Error("list pages failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	for _, p := range pages {
		if p.IsHomepage && p.IsPublished() {
			c.JSON(http.StatusOK, h.toPublicResponse(p))
			return
		}
	}
	NotFound(c, "homepage not configured")
}

type menuEntry struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PublicMenu 返回导航菜单项：已发布且勾选了菜单可见的页面。
func (h *PageHandler) PublicMenu(c *gin.Context) {
	pages, err := h.store.List(c.Request.Context())
	if err != nil {
		h.loggerFromContext(c).Error("list pages failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	entries := make([]menuEntry, 0, len(pages))
	for _, p := range pages {
		if p.InMenu && p.IsPublished() {
			entries = append(entries, menuEntry{Title: p.Title, Slug: page.NormalizeSlug(p.Slug)})
		}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *PageHandler) toPublicResponse(p page.Page) publicPageResponse {
	return publicPageResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      page.NormalizeSlug(p.Slug),
		Content:   h.policy.Sanitize(page.Sanitize(p.Content)),
		PageType:  p.PageType,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *PageHandler) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pagestore.ErrTitleRequired), errors.Is(err, pagestore.ErrSlugRequired):
		BadRequest(c, err.Error())
	case errors.Is(err, pagestore.ErrSlugTaken):
		Conflict(c, err.Error())
	case errors.Is(err, pagestore.ErrPageNotFound):
		NotFound(c, "page not found")
	default:
		h.loggerFromContext(c).Error("page store operation failed", slog.Any("error", err))
		Internal(c, "internal error")
	}
}

func (h *PageHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func pageIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		BadRequest(c, "invalid page id")
		return 0, false
	}
	return id, true
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
