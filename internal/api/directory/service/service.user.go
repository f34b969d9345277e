// Package directorysvc - các service danh mục tổ chức phục vụ phân giải người nhận nhiệm vụ.
package directorysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// UserService là cấu trúc chứa các phương thức liên quan đến cán bộ thu thập
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// FindActiveByIds tìm các cán bộ đang hoạt động theo danh sách ID.
// Cán bộ đã nghỉ sẽ bị loại — dùng khi lọc danh sách chỉ định thủ công.
func (s *UserService) FindActiveByIds(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "isActive": true}, nil)
}

// FindActiveByDepartmentIds tìm các cán bộ đang hoạt động thuộc danh sách phòng ban
func (s *UserService) FindActiveByDepartmentIds(ctx context.Context, departmentIds []primitive.ObjectID) ([]models.User, error) {
	if len(departmentIds) == 0 {
		return []models.User{}, nil
	}
	return s.Find(ctx, bson.M{"departmentId": bson.M{"$in": departmentIds}, "isActive": true}, nil)
}

// FindActiveByOrganizationIds tìm các cán bộ đang hoạt động thuộc danh sách đơn vị
func (s *UserService) FindActiveByOrganizationIds(ctx context.Context, organizationIds []primitive.ObjectID) ([]models.User, error) {
	if len(organizationIds) == 0 {
		return []models.User{}, nil
	}
	return s.Find(ctx, bson.M{"organizationId": bson.M{"$in": organizationIds}, "isActive": true}, nil)
}

// FindAllActive tìm toàn bộ cán bộ đang hoạt động trong hệ thống
func (s *UserService) FindAllActive(ctx context.Context) ([]models.User, error) {
	return s.Find(ctx, bson.M{"isActive": true}, nil)
}
