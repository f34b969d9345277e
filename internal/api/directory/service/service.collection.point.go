// Package directorysvc - service điểm thu thập (CollectionPoint).
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

// CollectionPointService là cấu trúc chứa các phương thức liên quan đến điểm thu thập
type CollectionPointService struct {
	*basesvc.BaseServiceMongoImpl[models.CollectionPoint]
}

// NewCollectionPointService tạo mới CollectionPointService
func NewCollectionPointService() (*CollectionPointService, error) {
	pointCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CollectionPoints)
	if !exist {
		return nil, fmt.Errorf("failed to get collection_points collection: %v", common.ErrNotFound)
	}

	return &CollectionPointService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CollectionPoint](pointCollection),
	}, nil
}

// FindActiveByIds tìm các điểm đang hoạt động theo danh sách ID
func (s *CollectionPointService) FindActiveByIds(ctx context.Context, ids []primitive.ObjectID) ([]models.CollectionPoint, error) {
	if len(ids) == 0 {
		return []models.CollectionPoint{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "isActive": true}, nil)
}

// FindActiveByPointTypes tìm các điểm đang hoạt động theo loại điểm.
// Danh sách loại rỗng nghĩa là lấy mọi loại.
func (s *CollectionPointService) FindActiveByPointTypes(ctx context.Context, pointTypes []string) ([]models.CollectionPoint, error) {
	filter := bson.M{"isActive": true}
	if len(pointTypes) > 0 {
		filter["pointType"] = bson.M{"$in": pointTypes}
	}
	return s.Find(ctx, filter, nil)
}
