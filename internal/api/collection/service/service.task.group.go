// Package collectionsvc - service nhóm nhiệm vụ (TaskGroup).
package collectionsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// TaskGroupService là cấu trúc chứa các phương thức liên quan đến nhóm nhiệm vụ
type TaskGroupService struct {
	*basesvc.BaseServiceMongoImpl[models.TaskGroup]
}

// NewTaskGroupService tạo mới TaskGroupService
func NewTaskGroupService() (*TaskGroupService, error) {
	groupCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TaskGroups)
	if !exist {
		return nil, fmt.Errorf("failed to get task_groups collection: %v", common.ErrNotFound)
	}

	return &TaskGroupService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TaskGroup](groupCollection),
	}, nil
}

// groupPeriodUpsert dựng filter và update cho find-or-create nhóm theo kỳ.
// Filter chỉ theo (templateId, periodKey) — không theo status — để mọi lần
// sinh lại trong cùng kỳ (tick lặp, cán bộ mới giữa kỳ) đều gắn vào đúng một
// nhóm thay vì tạo nhóm mới. Update chỉ có $setOnInsert: nhóm đã tồn tại
// (kể cả đã đóng) không bị sửa.
func groupPeriodUpsert(templateID, ruleID primitive.ObjectID, periodKey string, nowMs int64) (bson.M, bson.M) {
	filter := bson.M{
		"templateId": templateID,
		"periodKey":  periodKey,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"templateId": templateID,
			"ruleId":     ruleID,
			"periodKey":  periodKey,
			"status":     models.TaskGroupStatusOpen,
			"createdAt":  nowMs,
			"updatedAt":  nowMs,
		},
	}
	return filter, update
}

// FindOrCreateByPeriod trả về nhóm của (templateId, periodKey), tạo mới OPEN
// nếu kỳ này chưa có nhóm. Index group_period_unique đảm bảo mỗi kỳ của một
// mẫu chỉ có đúng một nhóm kể cả khi kích hoạt thủ công chạy song song với tick.
func (s *TaskGroupService) FindOrCreateByPeriod(ctx context.Context, templateID, ruleID primitive.ObjectID, periodKey string) (models.TaskGroup, error) {
	filter, update := groupPeriodUpsert(templateID, ruleID, periodKey, time.Now().UnixMilli())
	opts := mongoopts.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(mongoopts.After)

	var group models.TaskGroup
	if err := s.Collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&group); err != nil {
		return models.TaskGroup{}, common.ConvertMongoError(err)
	}
	return group, nil
}

// CloseIfOpen đóng nhóm nếu đang OPEN; trả về true khi transition thực sự
// xảy ra. Nhóm đã COMPLETED (do một lần cascade khác đóng trước) là no-op —
// hai lần đóng gần như đồng thời thì lần thứ hai vô hại.
func (s *TaskGroupService) CloseIfOpen(ctx context.Context, groupID primitive.ObjectID, closedAt time.Time) (bool, error) {
	now := time.Now().UnixMilli()
	result, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": groupID, "status": models.TaskGroupStatusOpen},
		bson.M{"$set": bson.M{
			"status":      models.TaskGroupStatusCompleted,
			"completedAt": closedAt.UnixMilli(),
			"updatedAt":   now,
		}},
	)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.ModifiedCount > 0, nil
}
