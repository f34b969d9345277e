// Package router đăng ký các route thuộc domain collection: kích hoạt mẫu thủ công
// và luồng nộp/duyệt/hoàn thành nhiệm vụ.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	collectionhdl "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/handler"
)

// Register đăng ký tất cả route collection lên v1.
func Register(v1 fiber.Router) error {
	taskHandler, err := collectionhdl.NewTaskHandler()
	if err != nil {
		return fmt.Errorf("create task handler: %w", err)
	}

	v1.Post("/task-templates/:id/execute", taskHandler.HandleExecuteTemplate)
	v1.Post("/tasks/:id/submit", taskHandler.HandleSubmitTask)
	v1.Post("/tasks/:id/review", taskHandler.HandleReviewTask)
	v1.Post("/tasks/:id/complete", taskHandler.HandleCompleteTask)

	return nil
}
