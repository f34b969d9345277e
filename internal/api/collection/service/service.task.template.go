// Package collectionsvc - service mẫu nhiệm vụ (TaskTemplate).
package collectionsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// TaskTemplateService là cấu trúc chứa các phương thức liên quan đến mẫu nhiệm vụ
type TaskTemplateService struct {
	*basesvc.BaseServiceMongoImpl[models.TaskTemplate]
}

// NewTaskTemplateService tạo mới TaskTemplateService
func NewTaskTemplateService() (*TaskTemplateService, error) {
	templateCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TaskTemplates)
	if !exist {
		return nil, fmt.Errorf("failed to get task_templates collection: %v", common.ErrNotFound)
	}

	return &TaskTemplateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TaskTemplate](templateCollection),
	}, nil
}

// FindActiveInWindow tải các mẫu đang hoạt động và nằm trong cửa sổ hiệu lực
// [activeFrom, activeUntil ?? +∞) tại thời điểm now, sắp xếp nextRunAt tăng dần
// để trong một tick các mẫu được xử lý đúng thứ tự đến hạn.
func (s *TaskTemplateService) FindActiveInWindow(ctx context.Context, now time.Time) ([]models.TaskTemplate, error) {
	nowMs := now.UnixMilli()
	filter := bson.M{
		"isActive": true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"cycle.activeFrom": bson.M{"$exists": false}},
				{"cycle.activeFrom": nil},
				{"cycle.activeFrom": bson.M{"$lte": nowMs}},
			}},
			{"$or": []bson.M{
				{"cycle.activeUntil": bson.M{"$exists": false}},
				{"cycle.activeUntil": nil},
				{"cycle.activeUntil": bson.M{"$gt": nowMs}},
			}},
		},
	}

	opts := mongoopts.Find().SetSort(bson.D{{Key: "nextRunAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// UpdateScheduleState ghi lại trạng thái lập lịch sau một lần xử lý:
// lastRunAt/nextRunAt/isActive. nextRunAt nil sẽ bị gỡ khỏi document
// (không còn lần chạy nào — mẫu ONE_TIME đã bắn hoặc hết cửa sổ hiệu lực).
func (s *TaskTemplateService) UpdateScheduleState(ctx context.Context, id primitive.ObjectID, lastRunAt *int64, nextRunAt *int64, isActive bool) error {
	set := bson.M{
		"isActive":  isActive,
		"updatedAt": time.Now().UnixMilli(),
	}
	if lastRunAt != nil {
		set["lastRunAt"] = *lastRunAt
	}

	update := bson.M{"$set": set}
	if nextRunAt != nil {
		set["nextRunAt"] = *nextRunAt
	} else {
		update["$unset"] = bson.M{"nextRunAt": ""}
	}

	_, err := s.Collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
