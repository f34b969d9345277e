package collectionsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
)

// Filter của find-or-create chỉ theo (templateId, periodKey): tick lặp trong
// cùng kỳ phải tìm lại đúng nhóm sẵn có, không phụ thuộc trạng thái nhóm.
func TestGroupPeriodUpsert_FilterKeyedByTemplateAndPeriod(t *testing.T) {
	templateID := primitive.NewObjectID()
	ruleID := primitive.NewObjectID()

	filter, _ := groupPeriodUpsert(templateID, ruleID, "2024-W10", 1709280000000)

	if len(filter) != 2 {
		t.Fatalf("filter có %d điều kiện, muốn đúng 2 (templateId, periodKey)", len(filter))
	}
	if filter["templateId"] != templateID {
		t.Errorf("filter templateId = %v, muốn %v", filter["templateId"], templateID)
	}
	if filter["periodKey"] != "2024-W10" {
		t.Errorf("filter periodKey = %v, muốn 2024-W10", filter["periodKey"])
	}
	if _, ok := filter["status"]; ok {
		t.Error("filter không được lọc theo status — nhóm đã đóng của kỳ vẫn phải được tìm lại")
	}
}

// Update chỉ có $setOnInsert: lần sinh lại trong kỳ không được sửa nhóm sẵn có
// và không được tạo nhóm rỗng thứ hai.
func TestGroupPeriodUpsert_OnlySetOnInsert(t *testing.T) {
	templateID := primitive.NewObjectID()
	ruleID := primitive.NewObjectID()

	_, update := groupPeriodUpsert(templateID, ruleID, "2024-03-01", 1709280000000)

	if len(update) != 1 {
		t.Fatalf("update có %d toán tử, muốn chỉ $setOnInsert", len(update))
	}
	if _, ok := update["$set"]; ok {
		t.Error("update không được chứa $set — nhóm đã tồn tại phải giữ nguyên")
	}

	onInsert, ok := update["$setOnInsert"].(bson.M)
	if !ok {
		t.Fatal("update thiếu $setOnInsert")
	}
	if onInsert["status"] != models.TaskGroupStatusOpen {
		t.Errorf("nhóm mới phải ở trạng thái %s, được %v", models.TaskGroupStatusOpen, onInsert["status"])
	}
	if onInsert["ruleId"] != ruleID {
		t.Errorf("nhóm mới phải giữ ruleId %v, được %v", ruleID, onInsert["ruleId"])
	}
	if onInsert["createdAt"] != int64(1709280000000) {
		t.Errorf("createdAt = %v, muốn 1709280000000", onInsert["createdAt"])
	}
}
