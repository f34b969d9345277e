// Package models - các model danh mục tổ chức (directory) dùng cho phân công nhiệm vụ.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình cán bộ thu thập.
// OrganizationID/DepartmentID là nguồn để denormalize vào nhiệm vụ lúc sinh —
// nhiệm vụ giữ snapshot, không đọc lại từ đây sau khi đã tạo.
type User struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	OrganizationID primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty" index:"single"`
	DepartmentID   primitive.ObjectID `json:"departmentId,omitempty" bson:"departmentId,omitempty" index:"single"`
	IsActive       bool               `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
