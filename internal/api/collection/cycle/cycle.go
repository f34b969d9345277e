// Package cycle chứa toán lịch thuần cho chu kỳ nhiệm vụ: tính kỳ (period),
// hạn nộp (dueAt) và thời điểm kích hoạt kế tiếp (next run). Không trạng thái,
// không I/O — mọi đầu vào lệch chuẩn đều được kẹp về giá trị hợp lệ thay vì lỗi.
package cycle

import (
	"time"
)

// Các loại chu kỳ
const (
	TypeDaily   = "DAILY"
	TypeWeekly  = "WEEKLY"
	TypeMonthly = "MONTHLY"
	TypeOneTime = "ONE_TIME"
)

// Spec là bản mô tả chu kỳ đã tách khỏi tầng lưu trữ.
// Quy ước ngày trong tuần: 1=Thứ Hai .. 7=Chủ Nhật.
// DueDayOfMonth = 0 nghĩa là ngày cuối tháng.
type Spec struct {
	CycleType          string
	RunAtMinute        int // Phút trong ngày kích hoạt, 0..1439
	DueAtMinute        int // Phút trong ngày đến hạn, 0..1439
	RunDayOfWeek       int
	DueDayOfWeek       int
	RunDayOfMonth      int
	DueDayOfMonth      int
	DeadlineOffset     int // Số giờ sau mốc (đường cũ, chỉ ONE_TIME dùng)
	ActiveFrom         *time.Time
	ActiveUntil        *time.Time
	MaxBackfillPeriods int
}

// Period là kết quả tính kỳ cho một mốc neo (anchor).
type Period struct {
	Start       time.Time // Đầu kỳ
	End         time.Time // Cuối kỳ
	DueAt       time.Time // Hạn nộp
	Key         string    // Khóa kỳ: YYYY-MM-DD / YYYY-Www / YYYY-MM
	RunAtMinute int       // Phút kích hoạt đã chuẩn hóa
}

// clampMinute chuẩn hóa phút trong ngày vào [0, 1439]
func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > 1439 {
		return 1439
	}
	return m
}

// clampRange kẹp v vào [lo, hi], giá trị ngoài khoảng hoặc bằng 0 dùng def
func clampRange(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// startOfDay trả về 00:00 của ngày chứa t (giữ nguyên location)
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay trả về thời điểm cuối ngày chứa t (độ phân giải mili giây)
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// atMinute trả về thời điểm phút thứ m của ngày chứa t
func atMinute(t time.Time, m int) time.Time {
	return startOfDay(t).Add(time.Duration(clampMinute(m)) * time.Minute)
}

// mondayOf trả về Thứ Hai của tuần chứa t (tuần chạy Thứ Hai..Chủ Nhật)
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -offset)
}

// lastDayOfMonth trả về số ngày của tháng chứa t
func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// dayOfMonthClamped kẹp ngày trong tháng: 0 hoặc vượt ngày cuối → ngày cuối tháng
func dayOfMonthClamped(t time.Time, day int) int {
	last := lastDayOfMonth(t)
	if day <= 0 || day > last {
		return last
	}
	return day
}
