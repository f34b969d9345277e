// Package directorysvc - service phòng ban (Department).
package directorysvc

import (
	"fmt"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/directory/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// DepartmentService là cấu trúc chứa các phương thức liên quan đến phòng ban
type DepartmentService struct {
	*basesvc.BaseServiceMongoImpl[models.Department]
}

// NewDepartmentService tạo mới DepartmentService
func NewDepartmentService() (*DepartmentService, error) {
	deptCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Departments)
	if !exist {
		return nil, fmt.Errorf("failed to get departments collection: %v", common.ErrNotFound)
	}

	return &DepartmentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Department](deptCollection),
	}, nil
}
