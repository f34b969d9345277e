package worker

import (
	"context"
	"sync/atomic"
	"time"

	collectionsvc "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// Trạng thái tick của worker phân phối
const (
	tickIdle    int32 = 0
	tickRunning int32 = 1
)

// DistributionWorker worker phân phối nhiệm vụ: mỗi interval quét các mẫu đang
// hoạt động và đưa từng mẫu qua các kỳ đến hạn (backfill có giới hạn).
// Token trạng thái IDLE/RUNNING (CAS nguyên tử) đảm bảo không có hai tick chạy
// chồng nhau: tick đến khi tick trước còn chạy sẽ bị bỏ, không xếp hàng.
type DistributionWorker struct {
	distributionService *collectionsvc.TaskDistributionService
	interval            time.Duration // Khoảng thời gian giữa các tick
	state               int32         // tickIdle | tickRunning
}

// NewDistributionWorker tạo mới DistributionWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các tick (mặc định: 5 phút)
func NewDistributionWorker(interval time.Duration) (*DistributionWorker, error) {
	distributionService, err := collectionsvc.NewTaskDistributionService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 5 * time.Minute
	}
	return &DistributionWorker{
		distributionService: distributionService,
		interval:            interval,
		state:               tickIdle,
	}, nil
}

// Start chạy worker trong vòng lặp cho tới khi ctx bị hủy.
func (w *DistributionWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📋 [TASK_DISTRIBUTE] Starting Distribution Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📋 [TASK_DISTRIBUTE] Distribution Worker stopped")
			return
		case <-ticker.C:
			w.runTick(ctx)
		}
	}
}

// runTick thực hiện một tick dưới token đơn luồng. Token luôn được nhả kể cả
// khi tick panic — một tick hỏng không được phép khóa chết scheduler.
func (w *DistributionWorker) runTick(ctx context.Context) {
	log := logger.GetAppLogger()

	if !atomic.CompareAndSwapInt32(&w.state, tickIdle, tickRunning) {
		log.Warn("📋 [TASK_DISTRIBUTE] Tick trước chưa xong, bỏ qua tick này")
		return
	}
	defer atomic.StoreInt32(&w.state, tickIdle)

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("📋 [TASK_DISTRIBUTE] Panic trong tick, sẽ tiếp tục ở tick sau")
			}
		}()

		if err := w.distributionService.ProcessTick(ctx, time.Now()); err != nil {
			log.WithError(err).Error("📋 [TASK_DISTRIBUTE] Lỗi xử lý tick phân phối")
		}
	}()
}
