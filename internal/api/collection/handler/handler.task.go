// Package collectionhdl - handler HTTP cho hai mặt phục vụ của domain collection:
// kích hoạt mẫu thủ công và luồng nộp/duyệt nhiệm vụ.
package collectionhdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/ccnuzw/CTBMS-sub006/internal/api/base/handler"
	"github.com/ccnuzw/CTBMS-sub006/internal/api/collection/dto"
	collectionsvc "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// TaskHandler là handler cho các thao tác nhiệm vụ phục vụ qua HTTP
type TaskHandler struct {
	distributionService *collectionsvc.TaskDistributionService
	taskService         *collectionsvc.TaskService
}

// NewTaskHandler tạo mới TaskHandler
func NewTaskHandler() (*TaskHandler, error) {
	distributionService, err := collectionsvc.NewTaskDistributionService()
	if err != nil {
		return nil, err
	}
	taskService, err := collectionsvc.NewTaskService()
	if err != nil {
		return nil, err
	}

	return &TaskHandler{
		distributionService: distributionService,
		taskService:         taskService,
	}, nil
}

// parseObjectID đọc một ObjectID từ chuỗi hex, lỗi trả về dạng validation
func parseObjectID(value string, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("%s không phải ObjectID hợp lệ: %s", field, value),
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// bindAndValidate parse body JSON và validate theo struct tag
func bindAndValidate(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Body(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// HandleExecuteTemplate kích hoạt một mẫu ngay lập tức, bỏ qua vòng backfill.
// POST /task-templates/:id/execute
func (h *TaskHandler) HandleExecuteTemplate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		templateID, err := parseObjectID(c.Params("id"), "templateId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.ExecuteTemplateInput
		if len(c.Body()) > 0 {
			if err := bindAndValidate(c, &input); err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
		}

		overrideIDs := make([]primitive.ObjectID, 0, len(input.AssigneeIDs))
		for _, raw := range input.AssigneeIDs {
			id, err := parseObjectID(raw, "assigneeIds")
			if err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
			overrideIDs = append(overrideIDs, id)
		}

		var dueOverride *time.Time
		if input.DueAt != nil {
			t := time.UnixMilli(*input.DueAt)
			dueOverride = &t
		}

		result, message, err := h.distributionService.ExecuteNow(c.Context(), templateID, overrideIDs, dueOverride)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, fiber.Map{
			"message":      message,
			"createdCount": result.CreatedCount,
			"periodKey":    result.PeriodKey,
			"assigneeIds":  hexIds(result.AssigneeIDs),
			"pointCount":   result.PointCount,
		}, nil)
	})
}

// HandleSubmitTask nộp kết quả nhiệm vụ.
// POST /tasks/:id/submit
func (h *TaskHandler) HandleSubmitTask(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		taskID, err := parseObjectID(c.Params("id"), "taskId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.SubmitTaskInput
		if err := bindAndValidate(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		actorID, err := parseObjectID(input.ActorID, "actorId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		task, err := h.taskService.Submit(c.Context(), taskID, actorID)
		return basehdl.HandleResponse(c, task, err)
	})
}

// HandleReviewTask duyệt hoặc trả lại nhiệm vụ đã nộp. Duyệt đạt chuyển nhiệm vụ
// sang hoàn thành và kéo theo đánh giá nhóm của nó.
// POST /tasks/:id/review
func (h *TaskHandler) HandleReviewTask(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		taskID, err := parseObjectID(c.Params("id"), "taskId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.ReviewTaskInput
		if err := bindAndValidate(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		actorID, err := parseObjectID(input.ActorID, "actorId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		if input.Approved {
			task, err := h.taskService.Approve(c.Context(), taskID, actorID)
			return basehdl.HandleResponse(c, task, err)
		}
		task, err := h.taskService.Return(c.Context(), taskID, actorID, input.Note)
		return basehdl.HandleResponse(c, task, err)
	})
}

// HandleCompleteTask hoàn thành nhiệm vụ trực tiếp không qua vòng duyệt.
// POST /tasks/:id/complete
func (h *TaskHandler) HandleCompleteTask(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		taskID, err := parseObjectID(c.Params("id"), "taskId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var input dto.CompleteTaskInput
		if err := bindAndValidate(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		actorID, err := parseObjectID(input.ActorID, "actorId")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		task, err := h.taskService.Complete(c.Context(), taskID, actorID)
		return basehdl.HandleResponse(c, task, err)
	})
}

// hexIds chuyển danh sách ObjectID sang hex cho response
func hexIds(ids []primitive.ObjectID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.Hex())
	}
	return result
}
