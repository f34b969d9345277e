// Package collectionsvc - phân giải người nhận nhiệm vụ từ cấu hình phân công của mẫu.
package collectionsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	dirmodels "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	directorysvc "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/service"
)

// ResolvedTarget là một đích nhận nhiệm vụ đã phân giải.
// PointID/CommodityID giữ zero ObjectID khi không áp dụng.
// OrganizationID/DepartmentID là snapshot từ hồ sơ cán bộ tại thời điểm phân giải.
type ResolvedTarget struct {
	UserID         primitive.ObjectID
	PointID        primitive.ObjectID
	CommodityID    primitive.ObjectID
	OrganizationID primitive.ObjectID
	DepartmentID   primitive.ObjectID
}

// key định danh duy nhất một đích theo bộ ba (cán bộ, điểm, mặt hàng)
func (t ResolvedTarget) key() string {
	return t.UserID.Hex() + ":" + t.PointID.Hex() + ":" + t.CommodityID.Hex()
}

// DedupTargets loại trùng theo bộ ba (cán bộ, điểm, mặt hàng), giữ nguyên thứ tự
// xuất hiện đầu tiên.
func DedupTargets(targets []ResolvedTarget) []ResolvedTarget {
	seen := make(map[string]struct{}, len(targets))
	result := make([]ResolvedTarget, 0, len(targets))
	for _, t := range targets {
		k := t.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, t)
	}
	return result
}

// userTarget dựng đích từ hồ sơ cán bộ (không gắn điểm/mặt hàng)
func userTarget(u dirmodels.User) ResolvedTarget {
	return ResolvedTarget{
		UserID:         u.ID,
		OrganizationID: u.OrganizationID,
		DepartmentID:   u.DepartmentID,
	}
}

// ExpandAllocations triển khai các phân công điểm thành đích nhận nhiệm vụ.
// Phân công không ghi mặt hàng cụ thể nở ra mọi mặt hàng điểm theo dõi
// (hoặc một đích không giới hạn nếu điểm không liệt kê mặt hàng nào);
// phân công có mặt hàng cụ thể nở ra đúng một đích. Phân công trỏ tới
// cán bộ không còn hoạt động bị bỏ qua.
func ExpandAllocations(
	allocations []dirmodels.PointAllocation,
	pointsByID map[primitive.ObjectID]dirmodels.CollectionPoint,
	usersByID map[primitive.ObjectID]dirmodels.User,
) []ResolvedTarget {
	var targets []ResolvedTarget

	for _, alloc := range allocations {
		user, ok := usersByID[alloc.UserID]
		if !ok {
			continue
		}
		point, ok := pointsByID[alloc.PointID]
		if !ok {
			continue
		}

		base := ResolvedTarget{
			UserID:         user.ID,
			PointID:        point.ID,
			OrganizationID: user.OrganizationID,
			DepartmentID:   user.DepartmentID,
		}

		if !alloc.CommodityID.IsZero() {
			base.CommodityID = alloc.CommodityID
			targets = append(targets, base)
			continue
		}

		if len(point.CommodityIDs) == 0 {
			targets = append(targets, base)
			continue
		}

		for _, commodityID := range point.CommodityIDs {
			t := base
			t.CommodityID = commodityID
			targets = append(targets, t)
		}
	}

	return targets
}

// TaskAssignService phân giải cấu hình phân công của mẫu thành danh sách đích cụ thể
type TaskAssignService struct {
	userService       *directorysvc.UserService
	pointService      *directorysvc.CollectionPointService
	allocationService *directorysvc.PointAllocationService
}

// NewTaskAssignService tạo mới TaskAssignService
func NewTaskAssignService() (*TaskAssignService, error) {
	userService, err := directorysvc.NewUserService()
	if err != nil {
		return nil, err
	}
	pointService, err := directorysvc.NewCollectionPointService()
	if err != nil {
		return nil, err
	}
	allocationService, err := directorysvc.NewPointAllocationService()
	if err != nil {
		return nil, err
	}

	return &TaskAssignService{
		userService:       userService,
		pointService:      pointService,
		allocationService: allocationService,
	}, nil
}

// Resolve phân giải mẫu thành danh sách đích đã loại trùng, theo thứ tự:
// (1) danh sách chỉ định tĩnh, (2) theo phòng ban, (3) theo đơn vị,
// (4) toàn bộ cán bộ hoạt động, (5) phân công điểm thu thập.
// Danh sách override (kích hoạt thủ công) cắt ngang mọi phân giải khác.
// Giá trị thứ hai là số điểm thu thập khớp cấu hình (chỉ có nghĩa ở chế độ theo điểm).
// Kết quả rỗng là đầu ra hợp lệ (không sinh nhiệm vụ nào), không phải lỗi.
func (s *TaskAssignService) Resolve(ctx context.Context, tmpl *models.TaskTemplate, overrideAssigneeIDs []primitive.ObjectID) ([]ResolvedTarget, int, error) {
	if len(overrideAssigneeIDs) > 0 {
		targets, err := s.resolveUserIds(ctx, overrideAssigneeIDs)
		if err != nil {
			return nil, 0, err
		}
		return DedupTargets(targets), 0, nil
	}

	var targets []ResolvedTarget
	pointCount := 0

	if len(tmpl.AssigneeIDs) > 0 {
		staticTargets, err := s.resolveUserIds(ctx, tmpl.AssigneeIDs)
		if err != nil {
			return nil, 0, err
		}
		targets = append(targets, staticTargets...)
	}

	switch tmpl.AssignMode {
	case models.AssignModeByDepartment:
		users, err := s.userService.FindActiveByDepartmentIds(ctx, tmpl.DepartmentIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range users {
			targets = append(targets, userTarget(u))
		}

	case models.AssignModeByOrganization:
		users, err := s.userService.FindActiveByOrganizationIds(ctx, tmpl.OrganizationIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range users {
			targets = append(targets, userTarget(u))
		}

	case models.AssignModeAllActive:
		users, err := s.userService.FindAllActive(ctx)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range users {
			targets = append(targets, userTarget(u))
		}

	case models.AssignModeCollectionPoint:
		pointTargets, count, err := s.ResolvePointTargets(ctx, tmpl)
		if err != nil {
			return nil, 0, err
		}
		pointCount = count
		targets = append(targets, pointTargets...)
	}

	return DedupTargets(targets), pointCount, nil
}

// ResolvePointTargets phân giải đích theo phân công điểm thu thập, trả kèm số
// điểm khớp cấu hình (pointCount). Điểm lấy theo danh sách ID tĩnh nếu có,
// ngược lại theo loại điểm (chế độ theo lô loại điểm).
func (s *TaskAssignService) ResolvePointTargets(ctx context.Context, tmpl *models.TaskTemplate) ([]ResolvedTarget, int, error) {
	var points []dirmodels.CollectionPoint
	var err error

	if len(tmpl.PointIDs) > 0 {
		points, err = s.pointService.FindActiveByIds(ctx, tmpl.PointIDs)
	} else {
		points, err = s.pointService.FindActiveByPointTypes(ctx, tmpl.TargetPointTypes)
	}
	if err != nil {
		return nil, 0, err
	}
	if len(points) == 0 {
		return nil, 0, nil
	}

	pointIDs := make([]primitive.ObjectID, 0, len(points))
	pointsByID := make(map[primitive.ObjectID]dirmodels.CollectionPoint, len(points))
	for _, p := range points {
		pointIDs = append(pointIDs, p.ID)
		pointsByID[p.ID] = p
	}

	allocations, err := s.allocationService.FindActiveByPointIds(ctx, pointIDs)
	if err != nil {
		return nil, 0, err
	}
	if len(allocations) == 0 {
		return nil, len(points), nil
	}

	userIDs := make([]primitive.ObjectID, 0, len(allocations))
	for _, a := range allocations {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.userService.FindActiveByIds(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}
	usersByID := make(map[primitive.ObjectID]dirmodels.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	return ExpandAllocations(allocations, pointsByID, usersByID), len(points), nil
}

// resolveUserIds tra cứu danh sách cán bộ hoạt động theo ID, giữ thứ tự đầu vào
func (s *TaskAssignService) resolveUserIds(ctx context.Context, ids []primitive.ObjectID) ([]ResolvedTarget, error) {
	users, err := s.userService.FindActiveByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[primitive.ObjectID]dirmodels.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	targets := make([]ResolvedTarget, 0, len(ids))
	for _, id := range ids {
		if u, ok := usersByID[id]; ok {
			targets = append(targets, userTarget(u))
		}
	}
	return targets, nil
}
