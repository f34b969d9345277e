package global

import (
	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Đăng ký các custom validator cho domain nhiệm vụ định kỳ
	_ = Validate.RegisterValidation("minute_of_day", validateMinuteOfDay)
	_ = Validate.RegisterValidation("day_of_week", validateDayOfWeek)
	_ = Validate.RegisterValidation("day_of_month", validateDayOfMonth)
}

// validateMinuteOfDay kiểm tra phút trong ngày thuộc [0, 1439]
func validateMinuteOfDay(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 1439
}

// validateDayOfWeek kiểm tra thứ trong tuần thuộc [0, 7] (0 = không đặt, 1=Thứ Hai .. 7=Chủ Nhật)
func validateDayOfWeek(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 7
}

// validateDayOfMonth kiểm tra ngày trong tháng thuộc [0, 31] (0 = ngày cuối tháng)
func validateDayOfMonth(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= 31
}
