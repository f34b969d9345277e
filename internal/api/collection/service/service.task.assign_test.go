// Package collectionsvc - Test loại trùng đích và triển khai phân công điểm.
package collectionsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	dirmodels "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
)

func TestDedupTargets_KeepsFirstOccurrenceOrder(t *testing.T) {
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	targets := []ResolvedTarget{
		{UserID: u1},
		{UserID: u2},
		{UserID: u1}, // trùng
		{UserID: u2}, // trùng
	}

	result := DedupTargets(targets)
	if len(result) != 2 {
		t.Fatalf("muốn 2 đích sau loại trùng, được %d", len(result))
	}
	if result[0].UserID != u1 || result[1].UserID != u2 {
		t.Errorf("thứ tự xuất hiện đầu tiên phải được giữ nguyên")
	}
}

func TestDedupTargets_TripleIsTheKey(t *testing.T) {
	user := primitive.NewObjectID()
	point := primitive.NewObjectID()
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()

	// Cùng cán bộ cùng điểm nhưng khác mặt hàng là hai đích khác nhau
	targets := []ResolvedTarget{
		{UserID: user, PointID: point, CommodityID: c1},
		{UserID: user, PointID: point, CommodityID: c2},
		{UserID: user, PointID: point, CommodityID: c1},
	}

	if got := len(DedupTargets(targets)); got != 2 {
		t.Errorf("muốn 2 đích (khóa là bộ ba cán bộ/điểm/mặt hàng), được %d", got)
	}
}

func TestExpandAllocations_UnscopedExpandsAllCommodities(t *testing.T) {
	user := primitive.NewObjectID()
	point := primitive.NewObjectID()
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()

	allocations := []dirmodels.PointAllocation{
		{PointID: point, UserID: user}, // không ghi mặt hàng cụ thể
	}
	pointsByID := map[primitive.ObjectID]dirmodels.CollectionPoint{
		point: {ID: point, CommodityIDs: []primitive.ObjectID{c1, c2}},
	}
	usersByID := map[primitive.ObjectID]dirmodels.User{
		user: {ID: user},
	}

	targets := ExpandAllocations(allocations, pointsByID, usersByID)
	if len(targets) != 2 {
		t.Fatalf("phân công không giới hạn phải nở ra mọi mặt hàng của điểm, được %d đích", len(targets))
	}
	if targets[0].CommodityID != c1 || targets[1].CommodityID != c2 {
		t.Errorf("mặt hàng phải theo đúng danh sách của điểm")
	}
}

func TestExpandAllocations_PointWithoutCommodities(t *testing.T) {
	user := primitive.NewObjectID()
	point := primitive.NewObjectID()

	allocations := []dirmodels.PointAllocation{{PointID: point, UserID: user}}
	pointsByID := map[primitive.ObjectID]dirmodels.CollectionPoint{point: {ID: point}}
	usersByID := map[primitive.ObjectID]dirmodels.User{user: {ID: user}}

	targets := ExpandAllocations(allocations, pointsByID, usersByID)
	if len(targets) != 1 {
		t.Fatalf("điểm không liệt kê mặt hàng phải cho một đích không giới hạn, được %d", len(targets))
	}
	if !targets[0].CommodityID.IsZero() {
		t.Errorf("đích không giới hạn phải giữ CommodityID zero")
	}
}

func TestExpandAllocations_ScopedIsExactlyOne(t *testing.T) {
	user := primitive.NewObjectID()
	point := primitive.NewObjectID()
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()

	allocations := []dirmodels.PointAllocation{
		{PointID: point, UserID: user, CommodityID: c2},
	}
	pointsByID := map[primitive.ObjectID]dirmodels.CollectionPoint{
		point: {ID: point, CommodityIDs: []primitive.ObjectID{c1, c2}},
	}
	usersByID := map[primitive.ObjectID]dirmodels.User{user: {ID: user}}

	targets := ExpandAllocations(allocations, pointsByID, usersByID)
	if len(targets) != 1 || targets[0].CommodityID != c2 {
		t.Errorf("phân công có mặt hàng cụ thể phải nở ra đúng một đích với mặt hàng đó")
	}
}

func TestExpandAllocations_SkipsInactiveUserAndUnknownPoint(t *testing.T) {
	activeUser := primitive.NewObjectID()
	goneUser := primitive.NewObjectID()
	point := primitive.NewObjectID()

	allocations := []dirmodels.PointAllocation{
		{PointID: point, UserID: goneUser},                  // cán bộ không còn trong map (đã nghỉ)
		{PointID: primitive.NewObjectID(), UserID: activeUser}, // điểm không khớp
		{PointID: point, UserID: activeUser},
	}
	pointsByID := map[primitive.ObjectID]dirmodels.CollectionPoint{point: {ID: point}}
	usersByID := map[primitive.ObjectID]dirmodels.User{activeUser: {ID: activeUser}}

	targets := ExpandAllocations(allocations, pointsByID, usersByID)
	if len(targets) != 1 || targets[0].UserID != activeUser {
		t.Errorf("chỉ phân công hợp lệ được giữ lại, được %d đích", len(targets))
	}
}

func TestExpandAllocations_CarriesUserSnapshot(t *testing.T) {
	user := primitive.NewObjectID()
	point := primitive.NewObjectID()
	org := primitive.NewObjectID()
	dept := primitive.NewObjectID()

	allocations := []dirmodels.PointAllocation{{PointID: point, UserID: user}}
	pointsByID := map[primitive.ObjectID]dirmodels.CollectionPoint{point: {ID: point}}
	usersByID := map[primitive.ObjectID]dirmodels.User{
		user: {ID: user, OrganizationID: org, DepartmentID: dept},
	}

	targets := ExpandAllocations(allocations, pointsByID, usersByID)
	if len(targets) != 1 {
		t.Fatalf("muốn 1 đích, được %d", len(targets))
	}
	if targets[0].OrganizationID != org || targets[0].DepartmentID != dept {
		t.Errorf("đích phải mang snapshot đơn vị/phòng ban của cán bộ")
	}
}
