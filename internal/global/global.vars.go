package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ccnuzw/CTBMS-sub006/config"
	"github.com/ccnuzw/CTBMS-sub006/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	// Directory Collections (danh bạ người dùng / tổ chức)
	Users            string // Tên collection cho người dùng
	Departments      string // Tên collection cho phòng ban
	Organizations    string // Tên collection cho tổ chức
	CollectionPoints string // Tên collection cho điểm thu thập
	PointAllocations string // Tên collection cho phân công người dùng vào điểm thu thập
	Commodities      string // Tên collection cho mặt hàng

	// Intelligence Collection Task Collections (phân phối nhiệm vụ thu thập)
	TaskTemplates string // Tên collection cho mẫu nhiệm vụ định kỳ
	Tasks         string // Tên collection cho nhiệm vụ
	TaskGroups    string // Tên collection cho nhóm nhiệm vụ (một đợt phân phối)
	TaskRules     string // Tên collection cho quy tắc hoàn thành nhóm
	TaskHistory   string // Tên collection cho lịch sử nhiệm vụ (audit)
}

// Các biến toàn cục
var Validate *validator.Validate                  // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                 // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration            // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{}   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
