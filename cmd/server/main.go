package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	collectionsvc "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
	"github.com/ccnuzw/CTBMS-sub006/internal/logger"
	"github.com/ccnuzw/CTBMS-sub006/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// startWorkers khởi động các background worker: phân phối nhiệm vụ và quét quá hạn
func startWorkers(ctx context.Context) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	tickInterval := time.Duration(cfg.SchedulerTickMs) * time.Millisecond
	distributionWorker, err := worker.NewDistributionWorker(tickInterval)
	if err != nil {
		log.WithError(err).Fatal("Failed to create distribution worker")
	}
	go distributionWorker.Start(ctx)

	sweepInterval := time.Duration(cfg.OverdueSweepMs) * time.Millisecond
	sweepWorker, err := worker.NewOverdueSweepWorker(sweepInterval)
	if err != nil {
		log.WithError(err).Fatal("Failed to create overdue sweep worker")
	}
	go sweepWorker.Start(ctx)
}

// registerCompletionEngine đăng ký engine đánh giá nhóm vào bus sự kiện TaskCompleted
func registerCompletionEngine() {
	completionService, err := collectionsvc.NewGroupCompletionService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Fatal("Failed to create group completion service")
	}
	completionService.RegisterEventHandlers()
	logger.GetAppLogger().Info("✅ [GROUP_COMPLETION] Engine registered on TaskCompleted events")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := ":" + cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper function để resolve đường dẫn từ thư mục gốc dự án
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Đăng ký engine đánh giá nhóm trước khi có bất kỳ transition nào
	registerCompletionEngine()

	// Khởi động các background worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx)

	// Chạy Fiber server trên main thread
	main_thread()
}
