package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ccnuzw/CTBMS-sub006/config"
	collectionmodels "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	dirmodels "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	"github.com/ccnuzw/CTBMS-sub006/internal/database"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Danh mục tổ chức (tiền tố auth_/intel_)
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Departments = "auth_departments"
	global.MongoDB_ColNames.Organizations = "auth_organizations"

	// Domain thu thập thông tin (tiền tố intel_)
	global.MongoDB_ColNames.CollectionPoints = "intel_collection_points"
	global.MongoDB_ColNames.PointAllocations = "intel_point_allocations"
	global.MongoDB_ColNames.Commodities = "intel_commodities"
	global.MongoDB_ColNames.TaskTemplates = "intel_task_templates"
	global.MongoDB_ColNames.Tasks = "intel_tasks"
	global.MongoDB_ColNames.TaskGroups = "intel_task_groups"
	global.MongoDB_ColNames.TaskRules = "intel_task_rules"
	global.MongoDB_ColNames.TaskHistory = "intel_task_history"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (đăng ký custom validators: minute_of_day, day_of_week, day_of_month)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), dirmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Departments), dirmodels.Department{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Organizations), dirmodels.Organization{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CollectionPoints), dirmodels.CollectionPoint{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.PointAllocations), dirmodels.PointAllocation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Commodities), dirmodels.Commodity{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TaskTemplates), collectionmodels.TaskTemplate{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Tasks), collectionmodels.Task{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TaskGroups), collectionmodels.TaskGroup{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TaskRules), collectionmodels.TaskRule{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TaskHistory), collectionmodels.TaskHistory{})
}
