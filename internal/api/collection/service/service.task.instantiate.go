// Package collectionsvc - sinh nhiệm vụ (instantiation) từ mẫu cho một kỳ cụ thể.
package collectionsvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ccnuzw/CTBMS-sub006/internal/api/collection/cycle"
	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// specFromModel chuyển CycleSpec lưu trữ (UnixMilli) sang dạng thuần của gói cycle
func specFromModel(m models.CycleSpec) cycle.Spec {
	spec := cycle.Spec{
		CycleType:          m.CycleType,
		RunAtMinute:        m.RunAtMinute,
		DueAtMinute:        m.DueAtMinute,
		RunDayOfWeek:       m.RunDayOfWeek,
		DueDayOfWeek:       m.DueDayOfWeek,
		RunDayOfMonth:      m.RunDayOfMonth,
		DueDayOfMonth:      m.DueDayOfMonth,
		DeadlineOffset:     m.DeadlineOffset,
		MaxBackfillPeriods: m.MaxBackfillPeriods,
	}
	if m.ActiveFrom != nil {
		t := time.UnixMilli(*m.ActiveFrom)
		spec.ActiveFrom = &t
	}
	if m.ActiveUntil != nil {
		t := time.UnixMilli(*m.ActiveUntil)
		spec.ActiveUntil = &t
	}
	return spec
}

// InstantiateInput là tham số cho một lần sinh nhiệm vụ
type InstantiateInput struct {
	Template            *models.TaskTemplate
	Anchor              time.Time            // Mốc neo tính kỳ (nextRunAt đến hạn, hoặc now với kích hoạt thủ công)
	DueOverride         *time.Time           // Ghi đè hạn nộp (thao tác thủ công)
	OverrideAssigneeIDs []primitive.ObjectID // Chỉ định đích danh, cắt ngang mọi phân giải khác
}

// InstantiateResult là kết quả một lần sinh nhiệm vụ
type InstantiateResult struct {
	CreatedCount int64                // Số nhiệm vụ thực sự được ghi (trùng kỳ bị bỏ qua)
	AssigneeIDs  []primitive.ObjectID // Các cán bộ đã phân giải được
	PointCount   int                  // Số điểm thu thập khớp cấu hình (chế độ theo điểm)
	PeriodKey    string               // Khóa kỳ đã sinh
}

// Instantiate sinh nhiệm vụ cho một kỳ: tính kỳ theo mốc neo, phân giải đích,
// dựng bản ghi với snapshot đơn vị/phòng ban của cán bộ tại thời điểm sinh,
// rồi ghi một lần theo lô với cơ chế bỏ qua bản trùng. Đích rỗng hoặc quy tắc
// không còn hiệu lực là kết quả zero hợp lệ, không phải lỗi — một mẫu cấu hình
// sai không được phép chặn scheduler.
func (s *TaskDistributionService) Instantiate(ctx context.Context, input InstantiateInput) (InstantiateResult, error) {
	tmpl := input.Template
	spec := specFromModel(tmpl.Cycle)
	period := cycle.Calculate(spec, input.Anchor, input.DueOverride)

	result := InstantiateResult{PeriodKey: period.Key}

	targets, pointCount, err := s.assignService.Resolve(ctx, tmpl, input.OverrideAssigneeIDs)
	if err != nil {
		return result, err
	}
	result.PointCount = pointCount
	if len(targets) == 0 {
		return result, nil
	}

	// Quy tắc hoàn thành: mỗi kỳ của mẫu dùng đúng một nhóm — tìm nhóm sẵn có
	// của (templateId, periodKey), chỉ tạo mới khi kỳ này chưa có. Tick lặp
	// trong cùng kỳ hay cán bộ bổ sung giữa kỳ đều gắn vào nhóm đó, không
	// sinh nhóm rỗng.
	var ruleID, groupID primitive.ObjectID
	if !tmpl.RuleID.IsZero() {
		rule, err := s.ruleService.FindActiveById(ctx, tmpl.RuleID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				logger.GetAppLogger().Warnf(
					"📋 [TASK_DISTRIBUTE] Mẫu %s gắn quy tắc %s không còn hiệu lực, bỏ qua lần sinh",
					tmpl.ID.Hex(), tmpl.RuleID.Hex())
				return result, nil
			}
			return result, err
		}
		ruleID = rule.ID

		group, err := s.groupService.FindOrCreateByPeriod(ctx, tmpl.ID, rule.ID, period.Key)
		if err != nil {
			return result, err
		}
		groupID = group.ID
	}

	dueAt := period.DueAt.UnixMilli()
	tasks := make([]models.Task, 0, len(targets))
	seenAssignees := make(map[primitive.ObjectID]struct{}, len(targets))

	for _, target := range targets {
		tasks = append(tasks, models.Task{
			Name:           tmpl.Name,
			Description:    tmpl.Description,
			TemplateID:     tmpl.ID,
			PeriodKey:      period.Key,
			AssigneeID:     target.UserID,
			PointID:        target.PointID,
			CommodityID:    target.CommodityID,
			OrganizationID: target.OrganizationID,
			DepartmentID:   target.DepartmentID,
			RuleID:         ruleID,
			TaskGroupID:    groupID,
			Status:         models.TaskStatusPending,
			PeriodStart:    period.Start.UnixMilli(),
			PeriodEnd:      period.End.UnixMilli(),
			DueAt:          &dueAt,
		})
		if _, ok := seenAssignees[target.UserID]; !ok {
			seenAssignees[target.UserID] = struct{}{}
			result.AssigneeIDs = append(result.AssigneeIDs, target.UserID)
		}
	}

	created, err := s.taskService.InsertManySkipDuplicates(ctx, tasks)
	if err != nil {
		return result, err
	}
	result.CreatedCount = created

	logger.GetAppLogger().Infof(
		"📋 [TASK_DISTRIBUTE] Mẫu %s kỳ %s: %d đích, tạo mới %d nhiệm vụ",
		tmpl.ID.Hex(), period.Key, len(targets), created)

	return result, nil
}
