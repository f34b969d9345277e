// Package collectionsvc - service nhiệm vụ (Task): luồng duyệt nộp và quét quá hạn.
package collectionsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/api/events"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// TaskService là cấu trúc chứa các phương thức liên quan đến nhiệm vụ thu thập
type TaskService struct {
	*basesvc.BaseServiceMongoImpl[models.Task]
	historyService *TaskHistoryService
}

// NewTaskService tạo mới TaskService
func NewTaskService() (*TaskService, error) {
	taskCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tasks)
	if !exist {
		return nil, fmt.Errorf("failed to get tasks collection: %v", common.ErrNotFound)
	}

	historyService, err := NewTaskHistoryService()
	if err != nil {
		return nil, err
	}

	return &TaskService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Task](taskCollection),
		historyService:       historyService,
	}, nil
}

// transitionHistory dựng bản ghi lịch sử cho một lần chuyển trạng thái thành
// công: cạnh chuyển (FromStatus → ToStatus) lấy từ document trước và sau update.
func transitionHistory(previous, updated models.Task, action string, actorID primitive.ObjectID, note string) models.TaskHistory {
	return models.TaskHistory{
		TaskID:      updated.ID,
		TaskGroupID: updated.TaskGroupID,
		Action:      action,
		FromStatus:  previous.Status,
		ToStatus:    updated.Status,
		ActorID:     actorID,
		Note:        note,
	}
}

// transition chuyển trạng thái nhiệm vụ một cách nguyên tử: chỉ thành công khi
// trạng thái hiện tại nằm trong fromStatuses. Nhiệm vụ không tồn tại trả về
// ErrNotFound; sai trạng thái nguồn trả về lỗi nêu rõ trạng thái hiện tại.
func (s *TaskService) transition(ctx context.Context, taskID primitive.ObjectID, fromStatuses []string, set bson.M, action string, actorID primitive.ObjectID, note string) (models.Task, error) {
	// Đọc trước để lịch sử ghi được trạng thái nguồn của cạnh chuyển
	current, err := s.FindOneById(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	set["updatedAt"] = time.Now().UnixMilli()

	opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	var updated models.Task
	err = s.Collection().FindOneAndUpdate(ctx,
		bson.M{"_id": taskID, "status": bson.M{"$in": fromStatuses}},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)

	if err == nil {
		s.historyService.Record(ctx, transitionHistory(current, updated, action, actorID, note))
		return updated, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, common.ConvertMongoError(err)
	}

	// Không khớp filter: trạng thái hiện tại không nằm trong fromStatuses
	return models.Task{}, common.NewError(
		common.ErrCodeBusinessState,
		fmt.Sprintf("Không thể thực hiện %s: nhiệm vụ đang ở trạng thái %s", action, current.Status),
		common.StatusConflict,
		nil,
	)
}

// Submit nộp kết quả nhiệm vụ: PENDING/RETURNED/OVERDUE → SUBMITTED
func (s *TaskService) Submit(ctx context.Context, taskID primitive.ObjectID, actorID primitive.ObjectID) (models.Task, error) {
	now := time.Now().UnixMilli()
	return s.transition(ctx, taskID,
		[]string{models.TaskStatusPending, models.TaskStatusReturned, models.TaskStatusOverdue},
		bson.M{"status": models.TaskStatusSubmitted, "submittedAt": now},
		models.HistoryActionSubmit, actorID, "")
}

// Return trả lại nhiệm vụ yêu cầu làm lại: SUBMITTED → RETURNED
func (s *TaskService) Return(ctx context.Context, taskID primitive.ObjectID, actorID primitive.ObjectID, note string) (models.Task, error) {
	return s.transition(ctx, taskID,
		[]string{models.TaskStatusSubmitted},
		bson.M{"status": models.TaskStatusReturned},
		models.HistoryActionReturn, actorID, note)
}

// Approve duyệt đạt nhiệm vụ đã nộp: SUBMITTED → COMPLETED.
// Phát sự kiện TaskCompleted cho engine đánh giá nhóm sau khi transition thành công.
func (s *TaskService) Approve(ctx context.Context, taskID primitive.ObjectID, actorID primitive.ObjectID) (models.Task, error) {
	return s.completeTransition(ctx, taskID,
		[]string{models.TaskStatusSubmitted},
		models.HistoryActionApprove, actorID, "")
}

// Complete hoàn thành trực tiếp không qua vòng duyệt
func (s *TaskService) Complete(ctx context.Context, taskID primitive.ObjectID, actorID primitive.ObjectID) (models.Task, error) {
	return s.completeTransition(ctx, taskID,
		[]string{models.TaskStatusPending, models.TaskStatusSubmitted, models.TaskStatusReturned, models.TaskStatusOverdue},
		models.HistoryActionComplete, actorID, "")
}

// completeTransition chuyển nhiệm vụ sang COMPLETED, đóng dấu isLate một lần
// tại thời điểm hoàn thành so với dueAt (rơi về deadline) — không tính lại
// về sau kể cả khi hạn bị sửa. Chỉ phát sự kiện trên cạnh transition thật.
func (s *TaskService) completeTransition(ctx context.Context, taskID primitive.ObjectID, fromStatuses []string, action string, actorID primitive.ObjectID, note string) (models.Task, error) {
	task, err := s.FindOneById(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	now := time.Now().UnixMilli()
	basis := task.DueBasis()
	isLate := basis > 0 && now > basis

	updated, err := s.transition(ctx, taskID, fromStatuses,
		bson.M{"status": models.TaskStatusCompleted, "completedAt": now, "isLate": isLate},
		action, actorID, note)
	if err != nil {
		return models.Task{}, err
	}

	events.EmitTaskCompleted(ctx, events.TaskCompletedEvent{
		TaskID:      updated.ID,
		TaskGroupID: updated.TaskGroupID,
		CompletedAt: now,
	})

	return updated, nil
}

// SweepOverdue đánh dấu OVERDUE các nhiệm vụ PENDING/RETURNED đã quá mốc hạn
// (dueAt, rơi về deadline khi dueAt trống). Trả về số nhiệm vụ bị đánh dấu.
func (s *TaskService) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	nowMs := now.UnixMilli()
	filter := bson.M{
		"status": bson.M{"$in": []string{models.TaskStatusPending, models.TaskStatusReturned}},
		"$or": []bson.M{
			{"dueAt": bson.M{"$exists": true, "$ne": nil, "$lt": nowMs}},
			{
				"dueAt":    bson.M{"$exists": false},
				"deadline": bson.M{"$exists": true, "$ne": nil, "$lt": nowMs},
			},
		},
	}

	// Lấy danh sách bị ảnh hưởng trước để ghi lịch sử theo từng nhiệm vụ
	overdueTasks, err := s.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}
	if len(overdueTasks) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, 0, len(overdueTasks))
	for _, t := range overdueTasks {
		ids = append(ids, t.ID)
	}

	modified, err := s.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "status": bson.M{"$in": []string{models.TaskStatusPending, models.TaskStatusReturned}}},
		bson.M{"status": models.TaskStatusOverdue},
	)
	if err != nil {
		return 0, err
	}

	entries := make([]models.TaskHistory, 0, len(overdueTasks))
	for _, t := range overdueTasks {
		entries = append(entries, models.TaskHistory{
			TaskID:      t.ID,
			TaskGroupID: t.TaskGroupID,
			Action:      models.HistoryActionOverdue,
			FromStatus:  t.Status,
			ToStatus:    models.TaskStatusOverdue,
		})
	}
	s.historyService.RecordBatch(ctx, entries)

	logger.GetAppLogger().Infof("⏰ [OVERDUE_SWEEP] Đánh dấu quá hạn %d nhiệm vụ", modified)
	return modified, nil
}
