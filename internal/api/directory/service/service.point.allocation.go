// Package directorysvc - service phân công điểm thu thập (PointAllocation).
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

// PointAllocationService là cấu trúc chứa các phương thức liên quan đến phân công điểm
type PointAllocationService struct {
	*basesvc.BaseServiceMongoImpl[models.PointAllocation]
}

// NewPointAllocationService tạo mới PointAllocationService
func NewPointAllocationService() (*PointAllocationService, error) {
	allocCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PointAllocations)
	if !exist {
		return nil, fmt.Errorf("failed to get point_allocations collection: %v", common.ErrNotFound)
	}

	return &PointAllocationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PointAllocation](allocCollection),
	}, nil
}

// FindActiveByPointIds tìm các phân công đang hiệu lực của danh sách điểm
func (s *PointAllocationService) FindActiveByPointIds(ctx context.Context, pointIds []primitive.ObjectID) ([]models.PointAllocation, error) {
	if len(pointIds) == 0 {
		return []models.PointAllocation{}, nil
	}
	return s.Find(ctx, bson.M{"pointId": bson.M{"$in": pointIds}, "isActive": true}, nil)
}
