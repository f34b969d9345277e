package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại điểm thu thập
const (
	PointTypeMarket    = "MARKET"    // Chợ
	PointTypeBorder    = "BORDER"    // Cửa khẩu
	PointTypeWarehouse = "WAREHOUSE" // Kho bãi
	PointTypePort      = "PORT"      // Cảng
)

// CollectionPoint định nghĩa mô hình điểm thu thập thông tin.
// CommodityIDs là danh sách mặt hàng theo dõi tại điểm; khi không có phân công
// mặt hàng cụ thể, nhiệm vụ theo điểm sẽ phủ toàn bộ danh sách này.
type CollectionPoint struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Code         string               `json:"code,omitempty" bson:"code,omitempty" index:"unique,sparse"`
	PointType    string               `json:"pointType" bson:"pointType" index:"single"`
	Address      string               `json:"address,omitempty" bson:"address,omitempty"`
	CommodityIDs []primitive.ObjectID `json:"commodityIds" bson:"commodityIds"`
	IsActive     bool                 `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}
