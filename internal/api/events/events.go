// Package events cung cấp event bus nội bộ cho các sự kiện nghiệp vụ.
// Bus chạy đồng bộ: handler được gọi ngay trong goroutine phát sự kiện,
// có recover để một handler panic không làm sập luồng nghiệp vụ.
package events

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// TaskCompletedEvent phát ra khi một nhiệm vụ chuyển sang trạng thái hoàn thành.
// Engine đánh giá nhóm nhiệm vụ lắng nghe sự kiện này.
type TaskCompletedEvent struct {
	TaskID      primitive.ObjectID // ID nhiệm vụ vừa hoàn thành
	TaskGroupID primitive.ObjectID // ID nhóm (zero nếu nhiệm vụ không thuộc nhóm nào)
	CompletedAt int64              // Thời điểm hoàn thành (UnixMilli)
}

// TaskCompletedHandler xử lý sự kiện hoàn thành nhiệm vụ
type TaskCompletedHandler func(ctx context.Context, event TaskCompletedEvent)

var (
	mu                    sync.RWMutex
	taskCompletedHandlers []TaskCompletedHandler
)

// OnTaskCompleted đăng ký handler cho sự kiện hoàn thành nhiệm vụ.
// Gọi lúc khởi động, trước khi các worker chạy.
func OnTaskCompleted(handler TaskCompletedHandler) {
	mu.Lock()
	defer mu.Unlock()
	taskCompletedHandlers = append(taskCompletedHandlers, handler)
}

// EmitTaskCompleted phát sự kiện tới tất cả handler đã đăng ký.
// Sự kiện chỉ được phát khi transition thực sự xảy ra (không phát lại
// khi thao tác idempotent không đổi trạng thái).
func EmitTaskCompleted(ctx context.Context, event TaskCompletedEvent) {
	mu.RLock()
	handlers := make([]TaskCompletedHandler, len(taskCompletedHandlers))
	copy(handlers, taskCompletedHandlers)
	mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.GetAppLogger().Errorf("🔥 [EVENT_PANIC] Handler TaskCompleted panic: %v", r)
				}
			}()
			handler(ctx, event)
		}()
	}
}

// ResetHandlers xóa toàn bộ handler đã đăng ký (dùng trong test)
func ResetHandlers() {
	mu.Lock()
	defer mu.Unlock()
	taskCompletedHandlers = nil
}
