package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization định nghĩa mô hình đơn vị (cấp trên của phòng ban)
type Organization struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Code      string             `json:"code,omitempty" bson:"code,omitempty" index:"unique,sparse"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
