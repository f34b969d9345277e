// Package collectionsvc - các service nghiệp vụ phân phối và theo dõi nhiệm vụ thu thập.
package collectionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// TaskHistoryService là cấu trúc chứa các phương thức ghi lịch sử nhiệm vụ
type TaskHistoryService struct {
	*basesvc.BaseServiceMongoImpl[models.TaskHistory]
}

// NewTaskHistoryService tạo mới TaskHistoryService
func NewTaskHistoryService() (*TaskHistoryService, error) {
	historyCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TaskHistory)
	if !exist {
		return nil, fmt.Errorf("failed to get task_history collection: %v", common.ErrNotFound)
	}

	return &TaskHistoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TaskHistory](historyCollection),
	}, nil
}

// Record ghi một bản ghi lịch sử. Lỗi ghi audit chỉ log, không chặn nghiệp vụ.
func (s *TaskHistoryService) Record(ctx context.Context, entry models.TaskHistory) {
	if _, err := s.InsertOne(ctx, entry); err != nil {
		logger.GetAuditLogger().WithError(err).Errorf(
			"📜 [TASK_HISTORY] Không ghi được lịch sử %s cho nhiệm vụ %s",
			entry.Action, entry.TaskID.Hex())
	}
}

// RecordBatch ghi nhiều bản ghi lịch sử trong một lần insert
func (s *TaskHistoryService) RecordBatch(ctx context.Context, entries []models.TaskHistory) {
	if len(entries) == 0 {
		return
	}
	if _, err := s.InsertMany(ctx, entries); err != nil {
		logger.GetAuditLogger().WithError(err).Errorf(
			"📜 [TASK_HISTORY] Không ghi được lô %d bản ghi lịch sử", len(entries))
	}
}

// FindByTaskId liệt kê lịch sử của một nhiệm vụ, mới nhất trước
func (s *TaskHistoryService) FindByTaskId(ctx context.Context, taskID primitive.ObjectID) ([]models.TaskHistory, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"taskId": taskID}, opts)
}
