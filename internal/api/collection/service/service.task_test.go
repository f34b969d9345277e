package collectionsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
)

// Lịch sử của một lần chuyển trạng thái phải ghi đủ cạnh chuyển:
// FromStatus từ document trước update, ToStatus từ document sau update.
func TestTransitionHistory_RecordsEdge(t *testing.T) {
	taskID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()
	actorID := primitive.NewObjectID()

	previous := models.Task{ID: taskID, TaskGroupID: groupID, Status: models.TaskStatusPending}
	updated := models.Task{ID: taskID, TaskGroupID: groupID, Status: models.TaskStatusSubmitted}

	entry := transitionHistory(previous, updated, models.HistoryActionSubmit, actorID, "nộp lần đầu")

	if entry.FromStatus != models.TaskStatusPending {
		t.Errorf("FromStatus = %q, muốn %q", entry.FromStatus, models.TaskStatusPending)
	}
	if entry.ToStatus != models.TaskStatusSubmitted {
		t.Errorf("ToStatus = %q, muốn %q", entry.ToStatus, models.TaskStatusSubmitted)
	}
	if entry.TaskID != taskID || entry.TaskGroupID != groupID {
		t.Error("bản ghi lịch sử phải giữ TaskID và TaskGroupID của nhiệm vụ")
	}
	if entry.Action != models.HistoryActionSubmit {
		t.Errorf("Action = %q, muốn %q", entry.Action, models.HistoryActionSubmit)
	}
	if entry.ActorID != actorID || entry.Note != "nộp lần đầu" {
		t.Error("bản ghi lịch sử phải giữ người thao tác và ghi chú")
	}
}

// Cạnh trả lại sau nộp: SUBMITTED → RETURNED kèm ghi chú của người duyệt.
func TestTransitionHistory_ReturnEdge(t *testing.T) {
	previous := models.Task{ID: primitive.NewObjectID(), Status: models.TaskStatusSubmitted}
	updated := previous
	updated.Status = models.TaskStatusReturned

	entry := transitionHistory(previous, updated, models.HistoryActionReturn, primitive.NewObjectID(), "thiếu số liệu chợ biên")

	if entry.FromStatus != models.TaskStatusSubmitted || entry.ToStatus != models.TaskStatusReturned {
		t.Errorf("cạnh chuyển = %q → %q, muốn SUBMITTED → RETURNED", entry.FromStatus, entry.ToStatus)
	}
	if entry.Note != "thiếu số liệu chợ biên" {
		t.Errorf("Note = %q, ghi chú trả lại phải được giữ nguyên", entry.Note)
	}
}
