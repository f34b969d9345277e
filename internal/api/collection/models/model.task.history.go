package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các hành động ghi vào lịch sử nhiệm vụ
const (
	HistoryActionCreate       = "CREATE"        // Nhiệm vụ được sinh ra
	HistoryActionSubmit       = "SUBMIT"        // Cán bộ nộp kết quả
	HistoryActionApprove      = "APPROVE"       // Duyệt đạt
	HistoryActionReturn       = "RETURN"        // Trả lại yêu cầu làm lại
	HistoryActionComplete     = "COMPLETE"      // Hoàn thành trực tiếp
	HistoryActionAutoComplete = "AUTO_COMPLETE" // Hệ thống cưỡng bức hoàn thành theo chính sách nhóm
	HistoryActionOverdue      = "OVERDUE"       // Quét quá hạn đánh dấu
)

// TaskHistory là bản ghi audit cho mỗi lần chuyển trạng thái nhiệm vụ.
type TaskHistory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TaskID      primitive.ObjectID `json:"taskId" bson:"taskId" index:"single"`
	TaskGroupID primitive.ObjectID `json:"taskGroupId,omitempty" bson:"taskGroupId,omitempty"`
	Action      string             `json:"action" bson:"action" index:"single"`
	FromStatus  string             `json:"fromStatus,omitempty" bson:"fromStatus,omitempty"`
	ToStatus    string             `json:"toStatus,omitempty" bson:"toStatus,omitempty"`
	ActorID     primitive.ObjectID `json:"actorId,omitempty" bson:"actorId,omitempty"`
	Note        string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
