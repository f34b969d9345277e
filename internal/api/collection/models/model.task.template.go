// Package models - các model thuộc domain thu thập thông tin (collection):
// mẫu nhiệm vụ, nhiệm vụ, nhóm nhiệm vụ, quy tắc và lịch sử.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại chu kỳ của mẫu nhiệm vụ
const (
	CycleTypeDaily   = "DAILY"    // Hàng ngày
	CycleTypeWeekly  = "WEEKLY"   // Hàng tuần (Thứ Hai..Chủ Nhật)
	CycleTypeMonthly = "MONTHLY"  // Hàng tháng
	CycleTypeOneTime = "ONE_TIME" // Một lần
)

// Các chế độ phân công người nhận
const (
	AssignModeManual          = "MANUAL"              // Chỉ định đích danh
	AssignModeByDepartment    = "BY_DEPARTMENT"       // Theo phòng ban
	AssignModeByOrganization  = "BY_ORGANIZATION"     // Theo đơn vị
	AssignModeAllActive       = "ALL_ACTIVE"          // Toàn bộ cán bộ đang hoạt động
	AssignModeCollectionPoint = "BY_COLLECTION_POINT" // Theo phân công điểm thu thập
)

// Các chế độ lập lịch
const (
	ScheduleModeTemplate     = "TEMPLATE"      // Theo chu kỳ của mẫu (backfill)
	ScheduleModePointDefault = "POINT_DEFAULT" // Theo điểm, bỏ qua toán chu kỳ
)

// CycleSpec mô tả chu kỳ lặp của một mẫu nhiệm vụ.
// Các giá trị phút được chuẩn hóa vào [0, 1439]; ngày trong tháng vượt quá
// ngày cuối tháng sẽ được kẹp về ngày cuối tháng khi tính toán.
type CycleSpec struct {
	CycleType          string `json:"cycleType" bson:"cycleType" validate:"required,oneof=DAILY WEEKLY MONTHLY ONE_TIME"`
	RunAtMinute        int    `json:"runAtMinute" bson:"runAtMinute" validate:"minute_of_day"`
	DueAtMinute        int    `json:"dueAtMinute" bson:"dueAtMinute" validate:"minute_of_day"`
	RunDayOfWeek       int    `json:"runDayOfWeek,omitempty" bson:"runDayOfWeek,omitempty" validate:"day_of_week"`
	DueDayOfWeek       int    `json:"dueDayOfWeek,omitempty" bson:"dueDayOfWeek,omitempty" validate:"day_of_week"`
	RunDayOfMonth      int    `json:"runDayOfMonth,omitempty" bson:"runDayOfMonth,omitempty" validate:"day_of_month"`
	DueDayOfMonth      int    `json:"dueDayOfMonth,omitempty" bson:"dueDayOfMonth,omitempty" validate:"day_of_month"`
	DeadlineOffset     int    `json:"deadlineOffset,omitempty" bson:"deadlineOffset,omitempty"` // Số giờ sau mốc (đường cũ)
	ActiveFrom         *int64 `json:"activeFrom,omitempty" bson:"activeFrom,omitempty"`         // UnixMilli, nullable
	ActiveUntil        *int64 `json:"activeUntil,omitempty" bson:"activeUntil,omitempty"`       // UnixMilli, nullable
	MaxBackfillPeriods int    `json:"maxBackfillPeriods,omitempty" bson:"maxBackfillPeriods,omitempty"`
}

// TaskTemplate định nghĩa mẫu nhiệm vụ thu thập định kỳ.
// LastRunAt/NextRunAt chỉ được worker phân phối cập nhật; mẫu ONE_TIME tự
// tắt (isActive=false, nextRunAt=nil) sau khi đã kích hoạt một lần.
type TaskTemplate struct {
	ID               primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string               `json:"name" bson:"name" validate:"required"`
	Description      string               `json:"description,omitempty" bson:"description,omitempty"`
	Cycle            CycleSpec            `json:"cycle" bson:"cycle"`
	AssignMode       string               `json:"assignMode" bson:"assignMode" validate:"required,oneof=MANUAL BY_DEPARTMENT BY_ORGANIZATION ALL_ACTIVE BY_COLLECTION_POINT"`
	ScheduleMode     string               `json:"scheduleMode,omitempty" bson:"scheduleMode,omitempty" validate:"omitempty,oneof=TEMPLATE POINT_DEFAULT"`
	AssigneeIDs      []primitive.ObjectID `json:"assigneeIds,omitempty" bson:"assigneeIds,omitempty"`
	DepartmentIDs    []primitive.ObjectID `json:"departmentIds,omitempty" bson:"departmentIds,omitempty"`
	OrganizationIDs  []primitive.ObjectID `json:"organizationIds,omitempty" bson:"organizationIds,omitempty"`
	PointIDs         []primitive.ObjectID `json:"pointIds,omitempty" bson:"pointIds,omitempty"`
	TargetPointTypes []string             `json:"targetPointTypes,omitempty" bson:"targetPointTypes,omitempty"`
	RuleID           primitive.ObjectID   `json:"ruleId,omitempty" bson:"ruleId,omitempty"`
	LastRunAt        *int64               `json:"lastRunAt,omitempty" bson:"lastRunAt,omitempty"`
	NextRunAt        *int64               `json:"nextRunAt,omitempty" bson:"nextRunAt,omitempty" index:"single"`
	IsActive         bool                 `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt        int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64                `json:"updatedAt" bson:"updatedAt"`
}
