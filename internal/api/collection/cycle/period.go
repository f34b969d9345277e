package cycle

import (
	"fmt"
	"time"
)

// Calculate tính kỳ cho một mốc neo theo chu kỳ của spec.
// dueOverride khác nil sẽ thay thế hạn nộp tính toán vô điều kiện
// (dùng khi thao tác viên ghi đè hạn của một lần phân phối thủ công).
// Loại chu kỳ không nhận diện được rơi về nhánh ONE_TIME.
func Calculate(spec Spec, anchor time.Time, dueOverride *time.Time) Period {
	var p Period
	p.RunAtMinute = clampMinute(spec.RunAtMinute)

	switch spec.CycleType {
	case TypeDaily:
		p.Start = startOfDay(anchor)
		p.End = endOfDay(anchor)
		p.DueAt = atMinute(anchor, spec.DueAtMinute)
		p.Key = anchor.Format("2006-01-02")

	case TypeWeekly:
		monday := mondayOf(anchor)
		p.Start = monday
		p.End = endOfDay(monday.AddDate(0, 0, 6))
		// Ngày đến hạn mặc định là Chủ Nhật (7)
		dueDay := clampRange(spec.DueDayOfWeek, 1, 7, 7)
		p.DueAt = atMinute(monday.AddDate(0, 0, dueDay-1), spec.DueAtMinute)
		year, week := anchor.ISOWeek()
		p.Key = fmt.Sprintf("%04d-W%02d", year, week)

	case TypeMonthly:
		firstDay := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		p.Start = firstDay
		p.End = endOfDay(firstDay.AddDate(0, 0, lastDayOfMonth(anchor)-1))
		dueDay := dayOfMonthClamped(anchor, spec.DueDayOfMonth)
		p.DueAt = atMinute(firstDay.AddDate(0, 0, dueDay-1), spec.DueAtMinute)
		p.Key = anchor.Format("2006-01")

	default: // ONE_TIME và các loại không nhận diện được
		p.Start = startOfDay(anchor)
		p.End = endOfDay(anchor)
		if spec.DeadlineOffset > 0 {
			// Đường cũ: hạn = mốc neo + deadlineOffset giờ
			p.DueAt = anchor.Add(time.Duration(spec.DeadlineOffset) * time.Hour)
		} else {
			p.DueAt = atMinute(anchor, spec.DueAtMinute)
		}
		p.Key = anchor.Format("2006-01-02")
	}

	if dueOverride != nil {
		p.DueAt = *dueOverride
	}

	return p
}

// ParseKey phân giải khóa kỳ về đầu kỳ tương ứng (trong location loc).
// Hỗ trợ ba định dạng: YYYY-MM-DD (ngày), YYYY-Www (tuần ISO, trả về Thứ Hai),
// YYYY-MM (tháng, trả về ngày mùng 1).
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation("2006-01-02", key, loc); err == nil {
		return t, nil
	}

	var year, week int
	if n, err := fmt.Sscanf(key, "%4d-W%2d", &year, &week); err == nil && n == 2 {
		if week < 1 || week > 53 {
			return time.Time{}, fmt.Errorf("tuần ISO không hợp lệ trong khóa kỳ: %s", key)
		}
		// Ngày 4 tháng 1 luôn thuộc tuần ISO số 1
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
		return mondayOf(jan4).AddDate(0, 0, (week-1)*7), nil
	}

	if t, err := time.ParseInLocation("2006-01", key, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("khóa kỳ không hợp lệ: %s", key)
}
