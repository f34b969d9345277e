package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của nhóm nhiệm vụ
const (
	TaskGroupStatusOpen      = "OPEN"      // Đang mở
	TaskGroupStatusCompleted = "COMPLETED" // Đã đóng
)

// TaskGroup là định danh lô cho toàn bộ nhiệm vụ sinh ra trong một kỳ
// của một mẫu có gắn quy tắc. Mỗi (templateId, periodKey) chỉ có đúng một
// nhóm — index group_period_unique cùng upsert FindOrCreateByPeriod đảm bảo
// các lần sinh lại trong kỳ gắn vào nhóm sẵn có. Đóng bởi engine đánh giá
// nhóm, ngoài ra không bị sửa đổi.
type TaskGroup struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TemplateID  primitive.ObjectID `json:"templateId" bson:"templateId" index:"single;compound:group_period_unique"`
	RuleID      primitive.ObjectID `json:"ruleId,omitempty" bson:"ruleId,omitempty"`
	PeriodKey   string             `json:"periodKey" bson:"periodKey" index:"compound:group_period_unique"`
	Status      string             `json:"status" bson:"status" index:"single"`
	CompletedAt *int64             `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
