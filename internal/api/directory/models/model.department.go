package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department định nghĩa mô hình phòng ban thuộc một đơn vị
type Department struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Code           string             `json:"code,omitempty" bson:"code,omitempty" index:"unique,sparse"`
	OrganizationID primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty" index:"single"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
