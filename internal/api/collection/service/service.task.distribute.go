// Package collectionsvc - phân phối nhiệm vụ theo tick: nhánh theo điểm,
// nhánh theo quy tắc, và vòng backfill có giới hạn cho các kỳ bị bỏ lỡ.
package collectionsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ccnuzw/CTBMS-sub006/internal/api/collection/cycle"
	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// TaskDistributionService điều phối toàn bộ luồng phân phối nhiệm vụ từ mẫu
type TaskDistributionService struct {
	templateService *TaskTemplateService
	taskService     *TaskService
	groupService    *TaskGroupService
	ruleService     *TaskRuleService
	assignService   *TaskAssignService
}

// NewTaskDistributionService tạo mới TaskDistributionService
func NewTaskDistributionService() (*TaskDistributionService, error) {
	templateService, err := NewTaskTemplateService()
	if err != nil {
		return nil, err
	}
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
	assignService, err := NewTaskAssignService()
	if err != nil {
		return nil, err
	}

	return &TaskDistributionService{
		templateService: templateService,
		taskService:     taskService,
		groupService:    groupService,
		ruleService:     ruleService,
		assignService:   assignService,
	}, nil
}

// PlanBackfill lập kế hoạch backfill thuần túy: từ nextRun đã lưu và "now",
// trả về các mốc cần sinh nhiệm vụ (tối đa max(1, maxBackfillPeriods) mốc),
// nextRun mới sau khi xử lý, và cờ tắt mẫu (chu kỳ ONE_TIME bắn xong thì tắt).
// Mốc kế tiếp được gieo một giây sau mốc vừa xử lý để không tính lại đúng
// thời điểm đó; vượt activeUntil thì nextRun mới là nil.
func PlanBackfill(spec cycle.Spec, nextRun time.Time, now time.Time) (runs []time.Time, next *time.Time, deactivate bool) {
	maxRuns := spec.MaxBackfillPeriods
	if maxRuns < 1 {
		maxRuns = 1
	}

	current := nextRun
	for len(runs) < maxRuns && !current.After(now) {
		runs = append(runs, current)

		if spec.CycleType == cycle.TypeOneTime {
			return runs, nil, true
		}

		advanced := cycle.Next(spec, current.Add(time.Second))
		if advanced == nil {
			return runs, nil, false
		}
		if spec.ActiveUntil != nil && advanced.After(*spec.ActiveUntil) {
			return runs, nil, false
		}
		current = *advanced
	}

	// current là mốc còn lại: hoặc đã vượt now (đuổi kịp), hoặc vẫn ≤ now
	// (còn backlog nhưng đã chạm trần backfill của tick này)
	return runs, &current, false
}

// ProcessTick xử lý một tick của scheduler: tải các mẫu đang hoạt động trong
// cửa sổ hiệu lực theo thứ tự nextRunAt tăng dần và xử lý tuần tự từng mẫu.
// Lỗi của một mẫu được bắt và log, không làm gãy các mẫu còn lại.
func (s *TaskDistributionService) ProcessTick(ctx context.Context, now time.Time) error {
	templates, err := s.templateService.FindActiveInWindow(ctx, now)
	if err != nil {
		return err
	}

	for i := range templates {
		tmpl := &templates[i]
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.GetAppLogger().Errorf(
						"🔥 [TASK_DISTRIBUTE] Panic khi xử lý mẫu %s: %v", tmpl.ID.Hex(), r)
				}
			}()
			if err := s.processTemplate(ctx, tmpl, now); err != nil {
				logger.GetAppLogger().WithError(err).Errorf(
					"📋 [TASK_DISTRIBUTE] Lỗi xử lý mẫu %s", tmpl.ID.Hex())
			}
		}()
	}

	return nil
}

// processTemplate phân nhánh xử lý một mẫu trong tick:
// theo điểm mặc định → sinh một lần, bỏ qua toán chu kỳ;
// gắn quy tắc → sinh một lần mỗi tick (đích theo quy tắc đổi động, nextRunAt không dùng);
// còn lại → vòng backfill.
func (s *TaskDistributionService) processTemplate(ctx context.Context, tmpl *models.TaskTemplate, now time.Time) error {
	if tmpl.ScheduleMode == models.ScheduleModePointDefault {
		_, err := s.Instantiate(ctx, InstantiateInput{Template: tmpl, Anchor: now})
		if err != nil {
			return err
		}
		lastRun := now.UnixMilli()
		return s.templateService.UpdateScheduleState(ctx, tmpl.ID, &lastRun, tmpl.NextRunAt, tmpl.IsActive)
	}

	if !tmpl.RuleID.IsZero() {
		_, err := s.Instantiate(ctx, InstantiateInput{Template: tmpl, Anchor: now})
		if err != nil {
			return err
		}
		lastRun := now.UnixMilli()
		return s.templateService.UpdateScheduleState(ctx, tmpl.ID, &lastRun, tmpl.NextRunAt, tmpl.IsActive)
	}

	return s.runBackfill(ctx, tmpl, now)
}

// runBackfill đưa một mẫu qua các kỳ bị bỏ lỡ với giới hạn maxBackfillPeriods,
// rồi ghi lại lastRunAt/nextRunAt/isActive trong một lần cập nhật.
func (s *TaskDistributionService) runBackfill(ctx context.Context, tmpl *models.TaskTemplate, now time.Time) error {
	spec := specFromModel(tmpl.Cycle)

	// nextRunAt chưa có: tính lần đầu và lưu lại. Kết quả của Next luôn ở
	// tương lai nên tick này dừng tại đây.
	if tmpl.NextRunAt == nil {
		next := cycle.Next(spec, now)
		var nextMs *int64
		if next != nil {
			ms := next.UnixMilli()
			nextMs = &ms
		}
		return s.templateService.UpdateScheduleState(ctx, tmpl.ID, tmpl.LastRunAt, nextMs, tmpl.IsActive)
	}

	storedNext := time.UnixMilli(*tmpl.NextRunAt)
	if storedNext.After(now) {
		return nil
	}

	runs, next, deactivate := PlanBackfill(spec, storedNext, now)

	var lastRunMs *int64
	for _, runAt := range runs {
		if _, err := s.Instantiate(ctx, InstantiateInput{Template: tmpl, Anchor: runAt}); err != nil {
			return err
		}
		ms := runAt.UnixMilli()
		lastRunMs = &ms
	}

	var nextMs *int64
	if next != nil {
		ms := next.UnixMilli()
		nextMs = &ms
	}
	if lastRunMs == nil {
		lastRunMs = tmpl.LastRunAt
	}

	return s.templateService.UpdateScheduleState(ctx, tmpl.ID, lastRunMs, nextMs, tmpl.IsActive && !deactivate)
}

// ExecuteNow kích hoạt một mẫu ngay lập tức (thao tác thủ công), bỏ qua vòng
// backfill. overrideAssigneeIDs khác rỗng sẽ thay toàn bộ phân giải của mẫu;
// dueOverride thay hạn nộp tính toán. Mẫu không tồn tại trả về ErrNotFound.
func (s *TaskDistributionService) ExecuteNow(ctx context.Context, templateID primitive.ObjectID, overrideAssigneeIDs []primitive.ObjectID, dueOverride *time.Time) (InstantiateResult, string, error) {
	tmpl, err := s.templateService.FindOneById(ctx, templateID)
	if err != nil {
		return InstantiateResult{}, "", err
	}

	now := time.Now()
	result, err := s.Instantiate(ctx, InstantiateInput{
		Template:            &tmpl,
		Anchor:              now,
		DueOverride:         dueOverride,
		OverrideAssigneeIDs: overrideAssigneeIDs,
	})
	if err != nil {
		return result, "", err
	}

	lastRun := now.UnixMilli()
	if err := s.templateService.UpdateScheduleState(ctx, tmpl.ID, &lastRun, tmpl.NextRunAt, tmpl.IsActive); err != nil {
		return result, "", err
	}

	message := fmt.Sprintf("Đã tạo %d nhiệm vụ cho kỳ %s (%d cán bộ)",
		result.CreatedCount, result.PeriodKey, len(result.AssigneeIDs))
	if result.PointCount > 0 {
		message = fmt.Sprintf("%s trên %d điểm thu thập", message, result.PointCount)
	}
	return result, message, nil
}
