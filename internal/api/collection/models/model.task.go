package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của nhiệm vụ
const (
	TaskStatusPending   = "PENDING"   // Chờ thực hiện
	TaskStatusSubmitted = "SUBMITTED" // Đã nộp, chờ duyệt
	TaskStatusReturned  = "RETURNED"  // Bị trả lại, cần nộp lại
	TaskStatusCompleted = "COMPLETED" // Hoàn thành
	TaskStatusOverdue   = "OVERDUE"   // Quá hạn (chưa nộp)
)

// Task định nghĩa một nhiệm vụ thu thập cụ thể sinh ra từ mẫu.
// OrganizationID/DepartmentID là snapshot tại thời điểm sinh nhiệm vụ,
// không đọc lại từ hồ sơ cán bộ về sau. PointID/CommodityID giữ zero
// ObjectID khi không áp dụng để index chống trùng hoạt động nhất quán.
//
// Compound index task_dedup_unique (templateId, periodKey, assigneeId,
// pointId, commodityId) là cơ chế idempotency duy nhất khi phân phối:
// kích hoạt trùng kỳ sẽ bị bỏ qua ở tầng ghi, không cần lock mẫu.
type Task struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	TemplateID     primitive.ObjectID `json:"templateId" bson:"templateId" index:"single;compound:task_dedup_unique"`
	PeriodKey      string             `json:"periodKey" bson:"periodKey" index:"compound:task_dedup_unique"`
	AssigneeID     primitive.ObjectID `json:"assigneeId" bson:"assigneeId" index:"single;compound:task_dedup_unique"`
	PointID        primitive.ObjectID `json:"pointId,omitempty" bson:"pointId" index:"compound:task_dedup_unique"`
	CommodityID    primitive.ObjectID `json:"commodityId,omitempty" bson:"commodityId" index:"compound:task_dedup_unique"`
	OrganizationID primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty"`
	DepartmentID   primitive.ObjectID `json:"departmentId,omitempty" bson:"departmentId,omitempty"`
	RuleID         primitive.ObjectID `json:"ruleId,omitempty" bson:"ruleId,omitempty"`
	TaskGroupID    primitive.ObjectID `json:"taskGroupId,omitempty" bson:"taskGroupId,omitempty" index:"single"`
	Status         string             `json:"status" bson:"status" index:"single"`
	PeriodStart    int64              `json:"periodStart" bson:"periodStart"`
	PeriodEnd      int64              `json:"periodEnd" bson:"periodEnd"`
	DueAt          *int64             `json:"dueAt,omitempty" bson:"dueAt,omitempty" index:"single"`
	Deadline       *int64             `json:"deadline,omitempty" bson:"deadline,omitempty"` // Hạn chót tường minh (đường cũ)
	IsLate         bool               `json:"isLate" bson:"isLate"`
	SubmittedAt    *int64             `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	CompletedAt    *int64             `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// DueBasis trả về mốc tính trễ hạn: dueAt, rơi về deadline nếu dueAt trống.
// Trả về 0 khi nhiệm vụ không có mốc hạn nào (không bao giờ bị coi là trễ).
func (t *Task) DueBasis() int64 {
	if t.DueAt != nil {
		return *t.DueAt
	}
	if t.Deadline != nil {
		return *t.Deadline
	}
	return 0
}
