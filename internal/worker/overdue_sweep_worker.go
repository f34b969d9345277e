package worker

import (
	"context"
	"time"

	collectionsvc "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// OverdueSweepWorker worker quét quá hạn: định kỳ đánh dấu OVERDUE các nhiệm vụ
// PENDING/RETURNED đã vượt mốc hạn của chúng.
type OverdueSweepWorker struct {
	taskService *collectionsvc.TaskService
	interval    time.Duration // Khoảng thời gian giữa các lần quét
}

// NewOverdueSweepWorker tạo mới OverdueSweepWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 10 phút)
func NewOverdueSweepWorker(interval time.Duration) (*OverdueSweepWorker, error) {
	taskService, err := collectionsvc.NewTaskService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 10 * time.Minute
	}
	return &OverdueSweepWorker{
		taskService: taskService,
		interval:    interval,
	}, nil
}

// Start chạy worker trong vòng lặp cho tới khi ctx bị hủy.
func (w *OverdueSweepWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏰ [OVERDUE_SWEEP] Starting Overdue Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [OVERDUE_SWEEP] Overdue Sweep Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏰ [OVERDUE_SWEEP] Panic khi quét quá hạn, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				if _, err := w.taskService.SweepOverdue(ctx, time.Now()); err != nil {
					log.WithError(err).Error("⏰ [OVERDUE_SWEEP] Lỗi quét nhiệm vụ quá hạn")
				}
			}()
		}
	}
}
