// Package collectionsvc - engine đánh giá hoàn thành nhóm nhiệm vụ: lắng nghe
// sự kiện TaskCompleted và quyết định đóng nhóm / cưỡng bức hoàn thành phần còn lại
// theo chính sách của quy tắc.
package collectionsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/api/events"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// GroupDecision là quyết định của engine cho trạng thái hiện tại của một nhóm
type GroupDecision struct {
	CloseGroup     bool // Đóng nhóm
	ForceRemainder bool // Cưỡng bức hoàn thành các nhiệm vụ còn lại
}

// DecideGroupCompletion quyết định theo chính sách hoàn thành (thuần túy):
// EACH không cascade; ANY_ONE đóng khi có ≥1 hoàn thành; QUORUM đóng khi đủ
// ngưỡng và cưỡng bức phần còn lại; ALL chỉ đóng khi tất cả tự hoàn thành
// (không còn gì để cưỡng bức). Chính sách lạ được coi như EACH.
func DecideGroupCompletion(policy string, quorum QuorumPolicy, total, completed int) GroupDecision {
	if total <= 0 {
		return GroupDecision{}
	}

	switch policy {
	case models.CompletionPolicyAnyOne:
		if completed >= 1 {
			return GroupDecision{CloseGroup: true, ForceRemainder: completed < total}
		}
	case models.CompletionPolicyQuorum:
		if completed >= quorum.Required(total) {
			return GroupDecision{CloseGroup: true, ForceRemainder: completed < total}
		}
	case models.CompletionPolicyAll:
		if completed >= total {
			return GroupDecision{CloseGroup: true}
		}
	}

	return GroupDecision{}
}

// GroupCompletionService là engine cascade hoàn thành nhóm
type GroupCompletionService struct {
	taskService    *TaskService
	groupService   *TaskGroupService
	ruleService    *TaskRuleService
	historyService *TaskHistoryService
}

// NewGroupCompletionService tạo mới GroupCompletionService
func NewGroupCompletionService() (*GroupCompletionService, error) {
	taskService, err := NewTaskService()
	if err != nil {
		return nil, err
	}
	groupService, err := NewTaskGroupService()
	if err != nil {
		return nil, err
	}
	ruleService, err := NewTaskRuleService()
	if err != nil {
		return nil, err
	}
	historyService, err := NewTaskHistoryService()
	if err != nil {
		return nil, err
	}

	return &GroupCompletionService{
		taskService:    taskService,
		groupService:   groupService,
		ruleService:    ruleService,
		historyService: historyService,
	}, nil
}

// RegisterEventHandlers đăng ký engine vào bus sự kiện TaskCompleted.
// Gọi một lần lúc khởi động.
func (s *GroupCompletionService) RegisterEventHandlers() {
	events.OnTaskCompleted(func(ctx context.Context, event events.TaskCompletedEvent) {
		if err := s.HandleTaskCompleted(ctx, event); err != nil {
			logger.GetAppLogger().WithError(err).Errorf(
				"✅ [GROUP_COMPLETION] Lỗi đánh giá nhóm %s", event.TaskGroupID.Hex())
		}
	})
}

// HandleTaskCompleted đánh giá lại nhóm khi một nhiệm vụ thành viên vừa hoàn
// thành. Mỗi lần gọi đọc lại trạng thái nhóm hiện tại nên cascade idempotent:
// hai thành viên hoàn thành gần đồng thời có thể cùng quyết định đóng nhóm,
// lần đóng thứ hai là no-op.
func (s *GroupCompletionService) HandleTaskCompleted(ctx context.Context, event events.TaskCompletedEvent) error {
	if event.TaskGroupID.IsZero() {
		return nil
	}

	group, err := s.groupService.FindOneById(ctx, event.TaskGroupID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if group.Status == models.TaskGroupStatusCompleted {
		return nil
	}

	policy := models.CompletionPolicyEach
	var quorum QuorumPolicy
	if !group.RuleID.IsZero() {
		// Nhóm đang bay giữ nguyên quy tắc tham chiếu kể cả khi quy tắc đã
		// bị tắt về sau; chỉ thiếu hẳn quy tắc mới rơi về EACH.
		rule, err := s.ruleService.FindOneById(ctx, group.RuleID)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				return err
			}
		} else {
			policy = rule.CompletionPolicy
			quorum = ParseQuorumPolicy(rule.DuePolicy)
		}
	}

	siblings, err := s.taskService.Find(ctx, bson.M{"taskGroupId": group.ID}, nil)
	if err != nil {
		return err
	}

	completed := 0
	for _, t := range siblings {
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}

	decision := DecideGroupCompletion(policy, quorum, len(siblings), completed)
	if !decision.CloseGroup {
		return nil
	}

	now := time.Now()
	if decision.ForceRemainder {
		for _, sibling := range siblings {
			if sibling.Status == models.TaskStatusCompleted {
				continue
			}
			if err := s.forceComplete(ctx, sibling, group, policy, now); err != nil {
				return err
			}
		}
	}

	closed, err := s.groupService.CloseIfOpen(ctx, group.ID, now)
	if err != nil {
		return err
	}
	if closed {
		logger.GetAppLogger().Infof(
			"✅ [GROUP_COMPLETION] Đóng nhóm %s theo chính sách %s (%d/%d hoàn thành)",
			group.ID.Hex(), policy, completed, len(siblings))
	}

	return nil
}

// forceComplete cưỡng bức hoàn thành một nhiệm vụ thành viên khi nhóm đóng.
// Cập nhật có điều kiện trên trạng thái hiện tại nên chạy lại vô hại; isLate
// đóng dấu theo mốc hạn của chính nhiệm vụ đó tại thời điểm cascade. Không
// phát lại sự kiện TaskCompleted — cascade không được tự kích hoạt chính nó.
func (s *GroupCompletionService) forceComplete(ctx context.Context, task models.Task, group models.TaskGroup, policy string, now time.Time) error {
	nowMs := now.UnixMilli()
	basis := task.DueBasis()
	isLate := basis > 0 && nowMs > basis

	result, err := s.taskService.Collection().UpdateOne(ctx,
		bson.M{"_id": task.ID, "status": bson.M{"$ne": models.TaskStatusCompleted}},
		bson.M{"$set": bson.M{
			"status":      models.TaskStatusCompleted,
			"completedAt": nowMs,
			"isLate":      isLate,
			"updatedAt":   nowMs,
		}},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.ModifiedCount == 0 {
		return nil
	}

	s.historyService.Record(ctx, models.TaskHistory{
		TaskID:      task.ID,
		TaskGroupID: group.ID,
		Action:      models.HistoryActionAutoComplete,
		FromStatus:  task.Status,
		ToStatus:    models.TaskStatusCompleted,
		Note:        fmt.Sprintf("Hệ thống hoàn thành theo chính sách %s của nhóm %s", policy, group.ID.Hex()),
	})

	return nil
}
