package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"coursecms/internal/errcode"
	"coursecms/internal/pagestore"
	"coursecms/internal/snapshot"
	"coursecms/internal/storage"
	"coursecms/internal/tasks"
)

// SnapshotTaskHandler 负责消费页面快照任务：渲染页面、截图、
// 上传对象存储并把预签名地址写回页面记录。
type SnapshotTaskHandler struct {
	store       *pagestore.Store
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
	presignTTL  time.Duration
	capture     snapshot.Options
}

// NewSnapshotTaskHandler 创建任务处理器。
func NewSnapshotTaskHandler(
	store *pagestore.Store,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	presignTTL time.Duration,
	capture snapshot.Options,
) *SnapshotTaskHandler {
	if presignTTL <= 0 {
		presignTTL = 7 * 24 * time.Hour
	}
	return &SnapshotTaskHandler{
		store:       store,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
		presignTTL:  presignTTL,
		capture:     capture,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *SnapshotTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PageSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("page_id", payload.PageID),
	)
	log.Info("Starting page snapshot task...")

	p, err := h.store.Get(ctx, payload.PageID)
	if err != nil {
		if errors.Is(err, pagestore.ErrPageNotFound) {
			log.Warn("page not found, skipping task")
			return nil
		}
		log.Error("load page failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := PageSnapshotNotifyMessage{
			Status:        "error",
			PageID:        p.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishSnapshotNotify(ctx, payload.RequestedBy, notify); err != nil {
			log.Error("publish snapshot error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := BuildPageDocument(p)
	if err != nil {
		log.Error("build page document failed", slog.Any("error", err))
		return err
	}

	imageBytes, err := snapshot.CaptureJPEG(doc, h.capture)
	if err != nil {
		log.Error("capture page screenshot failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("page-previews/%d/%s.jpg", p.ID, uuid.NewString())
	reader := bytes.NewReader(imageBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, reader, int64(len(imageBytes)), "image/jpeg"); err != nil {
		log.Error("upload preview image failed", slog.Any("error", err))
		return err
	}

	presignedURL, err := h.storage.GeneratePresignedURL(ctx, objectName, h.presignTTL)
	if err != nil {
		log.Error("generate preview presigned url failed", slog.Any("error", err))
		return err
	}

	if err := h.store.SetPreviewImage(ctx, p.ID, presignedURL); err != nil {
		log.Error("store preview url failed", slog.Any("error", err))
		return err
	}

	notify := PageSnapshotNotifyMessage{
		Status:        "completed",
		PageID:        p.ID,
		CorrelationID: payload.CorrelationID,
		PreviewURL:    presignedURL,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishSnapshotNotify(ctx, payload.RequestedBy, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Page snapshot task completed successfully.")
	return nil
}

func (h *SnapshotTaskHandler) publishSnapshotNotify(ctx context.Context, userID uint, notify PageSnapshotNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
