package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các chính sách hoàn thành nhóm
const (
	CompletionPolicyEach   = "EACH"    // Từng nhiệm vụ độc lập, không cascade
	CompletionPolicyAnyOne = "ANY_ONE" // Một nhiệm vụ xong là đóng cả nhóm
	CompletionPolicyQuorum = "QUORUM"  // Đủ số lượng/tỷ lệ thì đóng nhóm
	CompletionPolicyAll    = "ALL"     // Tất cả xong mới đóng nhóm
)

// TaskRule định nghĩa quy tắc hoàn thành gắn với mẫu nhiệm vụ.
// DuePolicy là payload động có thể mang quorumCount (số nguyên) hoặc
// quorumRatio (số thực 0..1); được parse một lần tại biên chính sách
// thành dạng có kiểu, logic phía sau không đụng vào dữ liệu thô.
type TaskRule struct {
	ID               primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string                 `json:"name" bson:"name"`
	CompletionPolicy string                 `json:"completionPolicy" bson:"completionPolicy" validate:"required,oneof=EACH ANY_ONE QUORUM ALL"`
	DuePolicy        map[string]interface{} `json:"duePolicy,omitempty" bson:"duePolicy,omitempty"`
	IsActive         bool                   `json:"isActive" bson:"isActive"`
	CreatedAt        int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64                  `json:"updatedAt" bson:"updatedAt"`
}
