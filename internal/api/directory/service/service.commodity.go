// Package directorysvc - service mặt hàng (Commodity).
package directorysvc

import (
	"fmt"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// CommodityService là cấu trúc chứa các phương thức liên quan đến mặt hàng
type CommodityService struct {
	*basesvc.BaseServiceMongoImpl[models.Commodity]
}

// NewCommodityService tạo mới CommodityService
func NewCommodityService() (*CommodityService, error) {
	commodityCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Commodities)
	if !exist {
		return nil, fmt.Errorf("failed to get commodities collection: %v", common.ErrNotFound)
	}

	return &CommodityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Commodity](commodityCollection),
	}, nil
}
