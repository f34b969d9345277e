package main

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	collectionrouter "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/router"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "CTBMS Collection Scheduler",
		ServerHeader:  "CTBMS Collection Scheduler",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       1 * 1024 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusNotFound, fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// Middleware chung: recover bắt panic, requestid gắn ID truy vết, CORS theo cấu hình
	app.Use(recover.New())
	app.Use(requestid.New())

	origins := []string{"*"}
	if global.ServerConfig.CORS_Origins != "" {
		origins = strings.Split(global.ServerConfig.CORS_Origins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Đăng ký các route nghiệp vụ
	v1 := app.Group("/api/v1")
	if err := collectionrouter.Register(v1); err != nil {
		logger.GetAppLogger().Fatalf("Failed to register collection routes: %v", err)
	}

	return app
}
