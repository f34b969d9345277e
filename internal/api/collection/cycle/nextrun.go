package cycle

import (
	"time"
)

// Next tính thời điểm kích hoạt kế tiếp sau "now", hoặc nil nếu không còn
// lần chạy nào. Kết quả luôn lớn hơn hẳn now (không bao giờ trả về quá khứ
// hay đúng thời điểm hiện tại). Mốc tính hiệu dụng = max(now, activeFrom).
func Next(spec Spec, now time.Time) *time.Time {
	base := now
	if spec.ActiveFrom != nil && spec.ActiveFrom.After(base) {
		base = *spec.ActiveFrom
	}

	runMinute := clampMinute(spec.RunAtMinute)

	switch spec.CycleType {
	case TypeDaily:
		candidate := atMinute(base, runMinute)
		if !candidate.After(base) {
			candidate = atMinute(base.AddDate(0, 0, 1), runMinute)
		}
		return &candidate

	case TypeWeekly:
		runDay := clampRange(spec.RunDayOfWeek, 1, 7, 1)
		monday := mondayOf(base)
		candidate := atMinute(monday.AddDate(0, 0, runDay-1), runMinute)
		if !candidate.After(base) {
			// Tính lại từ Thứ Hai của tuần kế tiếp, không cộng thô 7 ngày
			// lên candidate, để giữ đúng thứ qua ranh giới tháng/năm.
			nextMonday := monday.AddDate(0, 0, 7)
			candidate = atMinute(nextMonday.AddDate(0, 0, runDay-1), runMinute)
		}
		return &candidate

	case TypeMonthly:
		runDay := clampRange(spec.RunDayOfMonth, 1, 31, 1)
		firstDay := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		day := dayOfMonthClamped(base, runDay)
		candidate := atMinute(firstDay.AddDate(0, 0, day-1), runMinute)
		if !candidate.After(base) {
			// Ngày cuối tháng khác nhau giữa các tháng nên phải kẹp lại
			// theo tháng kế tiếp thay vì cộng 30 ngày.
			nextFirst := firstDay.AddDate(0, 1, 0)
			nextDay := dayOfMonthClamped(nextFirst, runDay)
			candidate = atMinute(nextFirst.AddDate(0, 0, nextDay-1), runMinute)
		}
		return &candidate

	default: // ONE_TIME và các loại không nhận diện được
		if spec.ActiveFrom == nil {
			// Không có activeFrom thì mẫu chỉ kích hoạt thủ công
			return nil
		}
		candidate := atMinute(*spec.ActiveFrom, runMinute)
		if candidate.After(base) {
			return &candidate
		}
		// Đã qua thời điểm bắn một lần — không còn lần chạy nào
		return nil
	}
}
