package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointAllocation định nghĩa phân công cán bộ phụ trách một điểm thu thập.
// CommodityID rỗng nghĩa là cán bộ phụ trách mọi mặt hàng của điểm.
type PointAllocation struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PointID     primitive.ObjectID `json:"pointId" bson:"pointId" index:"single;compound:point_user_allocation"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId" index:"single;compound:point_user_allocation"`
	CommodityID primitive.ObjectID `json:"commodityId,omitempty" bson:"commodityId,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
