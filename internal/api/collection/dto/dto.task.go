// Package dto - cấu trúc request cho các thao tác phục vụ qua HTTP của domain collection.
package dto

// ExecuteTemplateInput là body của thao tác kích hoạt mẫu ngay lập tức.
// AssigneeIDs khác rỗng sẽ thay toàn bộ phân giải người nhận của mẫu;
// DueAt (UnixMilli) ghi đè hạn nộp tính toán.
type ExecuteTemplateInput struct {
	AssigneeIDs []string `json:"assigneeIds,omitempty" validate:"omitempty,dive,len=24"`
	DueAt       *int64   `json:"dueAt,omitempty"`
}

// SubmitTaskInput là body của thao tác nộp kết quả nhiệm vụ
type SubmitTaskInput struct {
	ActorID string `json:"actorId" validate:"required,len=24"`
}

// ReviewTaskInput là body của thao tác duyệt/trả lại nhiệm vụ.
// Approved=true duyệt đạt (nhiệm vụ hoàn thành), false trả lại kèm Note.
type ReviewTaskInput struct {
	ActorID  string `json:"actorId" validate:"required,len=24"`
	Approved bool   `json:"approved"`
	Note     string `json:"note,omitempty"`
}

// CompleteTaskInput là body của thao tác hoàn thành trực tiếp
type CompleteTaskInput struct {
	ActorID string `json:"actorId" validate:"required,len=24"`
}
