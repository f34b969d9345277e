package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestEmitTaskCompleted kiểm tra bus phát sự kiện tới tất cả handler theo thứ tự đăng ký
func TestEmitTaskCompleted(t *testing.T) {
	ResetHandlers()
	defer ResetHandlers()

	var received []TaskCompletedEvent
	OnTaskCompleted(func(ctx context.Context, event TaskCompletedEvent) {
		received = append(received, event)
	})
	OnTaskCompleted(func(ctx context.Context, event TaskCompletedEvent) {
		received = append(received, event)
	})

	event := TaskCompletedEvent{
		TaskID:      primitive.NewObjectID(),
		TaskGroupID: primitive.NewObjectID(),
		CompletedAt: 1709280000000,
	}
	EmitTaskCompleted(context.Background(), event)

	assert.Len(t, received, 2, "Cả hai handler đều phải nhận được sự kiện")
	assert.Equal(t, event.TaskID, received[0].TaskID, "Handler phải nhận đúng TaskID")
	assert.Equal(t, event.CompletedAt, received[1].CompletedAt, "Handler phải nhận đúng thời điểm hoàn thành")
}

// TestEmitTaskCompletedHandlerPanic kiểm tra một handler panic không chặn các handler còn lại
func TestEmitTaskCompletedHandlerPanic(t *testing.T) {
	ResetHandlers()
	defer ResetHandlers()

	called := false
	OnTaskCompleted(func(ctx context.Context, event TaskCompletedEvent) {
		panic("handler lỗi")
	})
	OnTaskCompleted(func(ctx context.Context, event TaskCompletedEvent) {
		called = true
	})

	assert.NotPanics(t, func() {
		EmitTaskCompleted(context.Background(), TaskCompletedEvent{TaskID: primitive.NewObjectID()})
	}, "Panic trong handler phải được recover, không lan ra ngoài")
	assert.True(t, called, "Handler sau handler bị panic vẫn phải được gọi")
}

// TestEmitTaskCompletedNoHandlers kiểm tra phát sự kiện khi chưa có handler nào đăng ký
func TestEmitTaskCompletedNoHandlers(t *testing.T) {
	ResetHandlers()

	assert.NotPanics(t, func() {
		EmitTaskCompleted(context.Background(), TaskCompletedEvent{})
	}, "Phát sự kiện khi không có handler phải an toàn")
}
