package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePageSnapshot = "page:snapshot"
)

// PageSnapshotPayload 描述生成页面预览截图所需的最小信息。
// RequestedBy 用于完成后通过 WebSocket 通知发起人。
type PageSnapshotPayload struct {
	PageID        int    `json:"page_id"`
	RequestedBy   uint   `json:"requested_by"`
	CorrelationID string `json:"correlation_id"`
}

// NewPageSnapshotTask 构造一个新的页面快照任务。
func NewPageSnapshotTask(pageID int, requestedBy uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PageSnapshotPayload{
		PageID:        pageID,
		RequestedBy:   requestedBy,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePageSnapshot, payload), nil
}
