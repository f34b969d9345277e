// Package directorysvc - service đơn vị (Organization).
package directorysvc

import (
	"fmt"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// OrganizationService là cấu trúc chứa các phương thức liên quan đến đơn vị
type OrganizationService struct {
	*basesvc.BaseServiceMongoImpl[models.Organization]
}

// NewOrganizationService tạo mới OrganizationService
func NewOrganizationService() (*OrganizationService, error) {
	orgCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Organizations)
	if !exist {
		return nil, fmt.Errorf("failed to get organizations collection: %v", common.ErrNotFound)
	}

	return &OrganizationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Organization](orgCollection),
	}, nil
}
