package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commodity định nghĩa mô hình mặt hàng theo dõi giá
type Commodity struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Code      string             `json:"code,omitempty" bson:"code,omitempty" index:"unique,sparse"`
	Unit      string             `json:"unit,omitempty" bson:"unit,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
