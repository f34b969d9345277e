// Package cycle - Test tính thời điểm kích hoạt kế tiếp.
package cycle

import (
	"testing"
)

func TestNext_Daily_SameDay(t *testing.T) {
	spec := Spec{CycleType: TypeDaily, RunAtMinute: 540}
	now := mustTime(t, "2024-03-01T08:00")

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil cho chu kỳ DAILY")
	}
	if !next.Equal(mustTime(t, "2024-03-01T09:00")) {
		t.Errorf("next = %v, muốn 09:00 cùng ngày", *next)
	}
}

func TestNext_Daily_RollsToTomorrow(t *testing.T) {
	spec := Spec{CycleType: TypeDaily, RunAtMinute: 540}
	now := mustTime(t, "2024-03-01T09:00") // đúng 09:00 — candidate không được bằng now

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	if !next.Equal(mustTime(t, "2024-03-02T09:00")) {
		t.Errorf("next = %v, muốn 09:00 ngày hôm sau", *next)
	}
}

func TestNext_Weekly_RecomputesFromNextMonday(t *testing.T) {
	// runDayOfWeek=1 (Thứ Hai), now = Thứ Hai 09:01 với runAtMinute=540 (09:00)
	// → kết quả phải là Thứ Hai tuần sau 09:00
	spec := Spec{CycleType: TypeWeekly, RunDayOfWeek: 1, RunAtMinute: 540}
	now := mustTime(t, "2024-03-04T09:01") // Thứ Hai

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	if !next.Equal(mustTime(t, "2024-03-11T09:00")) {
		t.Errorf("next = %v, muốn Thứ Hai tuần sau 2024-03-11 09:00", *next)
	}
}

func TestNext_Weekly_LaterThisWeek(t *testing.T) {
	spec := Spec{CycleType: TypeWeekly, RunDayOfWeek: 5, RunAtMinute: 480}
	now := mustTime(t, "2024-03-06T11:30") // Thứ Tư

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	if !next.Equal(mustTime(t, "2024-03-08T08:00")) {
		t.Errorf("next = %v, muốn Thứ Sáu cùng tuần 08:00", *next)
	}
}

func TestNext_Weekly_AcrossYearBoundary(t *testing.T) {
	spec := Spec{CycleType: TypeWeekly, RunDayOfWeek: 1, RunAtMinute: 540}
	now := mustTime(t, "2024-12-31T10:00") // Thứ Ba, tuần chứa 2024-12-30

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	// Thứ Hai tuần kế tiếp là 2025-01-06
	if !next.Equal(mustTime(t, "2025-01-06T09:00")) {
		t.Errorf("next = %v, muốn 2025-01-06 09:00", *next)
	}
}

func TestNext_Monthly_ClampThisMonth(t *testing.T) {
	// runDayOfMonth=31 trong tháng Tư → kẹp về 30
	spec := Spec{CycleType: TypeMonthly, RunDayOfMonth: 31, RunAtMinute: 540}
	now := mustTime(t, "2024-04-15T09:00")

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	if !next.Equal(mustTime(t, "2024-04-30T09:00")) {
		t.Errorf("next = %v, muốn 2024-04-30 09:00 (kẹp về ngày cuối)", *next)
	}
}

func TestNext_Monthly_RecomputesNextMonthClamp(t *testing.T) {
	// Đã qua ngày chạy tháng này → tính lại theo ngày cuối của tháng kế
	spec := Spec{CycleType: TypeMonthly, RunDayOfMonth: 31, RunAtMinute: 540}
	now := mustTime(t, "2024-01-31T10:00")

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	// Tháng Hai 2024 có 29 ngày
	if !next.Equal(mustTime(t, "2024-02-29T09:00")) {
		t.Errorf("next = %v, muốn 2024-02-29 09:00", *next)
	}
}

func TestNext_OneTime(t *testing.T) {
	activeFrom := mustTime(t, "2024-05-01T00:00")

	t.Run("chưa tới activeFrom", func(t *testing.T) {
		spec := Spec{CycleType: TypeOneTime, RunAtMinute: 540, ActiveFrom: &activeFrom}
		now := mustTime(t, "2024-04-01T12:00")

		next := Next(spec, now)
		if next == nil {
			t.Fatal("Next trả về nil khi activeFrom còn ở tương lai")
		}
		if !next.Equal(mustTime(t, "2024-05-01T09:00")) {
			t.Errorf("next = %v, muốn activeFrom tại 09:00", *next)
		}
	})

	t.Run("đã qua thời điểm bắn", func(t *testing.T) {
		spec := Spec{CycleType: TypeOneTime, RunAtMinute: 540, ActiveFrom: &activeFrom}
		now := mustTime(t, "2024-05-01T09:00")

		if next := Next(spec, now); next != nil {
			t.Errorf("next = %v, muốn nil sau khi đã qua thời điểm bắn", *next)
		}
	})

	t.Run("không có activeFrom", func(t *testing.T) {
		spec := Spec{CycleType: TypeOneTime, RunAtMinute: 540}
		now := mustTime(t, "2024-05-01T08:00")

		if next := Next(spec, now); next != nil {
			t.Errorf("next = %v, muốn nil khi không có activeFrom (chỉ kích hoạt thủ công)", *next)
		}
	})
}

func TestNext_ActiveFromShiftsBase(t *testing.T) {
	activeFrom := mustTime(t, "2024-06-01T00:00")
	spec := Spec{CycleType: TypeDaily, RunAtMinute: 540, ActiveFrom: &activeFrom}
	now := mustTime(t, "2024-03-01T08:00")

	next := Next(spec, now)

	if next == nil {
		t.Fatal("Next trả về nil")
	}
	if !next.Equal(mustTime(t, "2024-06-01T09:00")) {
		t.Errorf("next = %v, mốc hiệu dụng phải là max(now, activeFrom)", *next)
	}
}

// Thuộc tính: kết quả luôn lớn hơn hẳn "now" với mọi chu kỳ lặp
func TestNext_StrictlyFutureProperty(t *testing.T) {
	nows := []string{
		"2024-01-01T00:00", "2024-02-29T23:59", "2024-06-15T09:00", "2024-12-31T12:00",
	}
	specs := []Spec{
		{CycleType: TypeDaily, RunAtMinute: 0},
		{CycleType: TypeDaily, RunAtMinute: 1439},
		{CycleType: TypeWeekly, RunDayOfWeek: 1, RunAtMinute: 540},
		{CycleType: TypeWeekly, RunDayOfWeek: 7, RunAtMinute: 0},
		{CycleType: TypeMonthly, RunDayOfMonth: 1, RunAtMinute: 0},
		{CycleType: TypeMonthly, RunDayOfMonth: 31, RunAtMinute: 1439},
	}

	for _, n := range nows {
		now := mustTime(t, n)
		for _, spec := range specs {
			next := Next(spec, now)
			if next == nil {
				t.Errorf("chu kỳ %s tại %s: Next trả về nil", spec.CycleType, n)
				continue
			}
			if !next.After(now) {
				t.Errorf("chu kỳ %s tại %s: next %v không lớn hơn hẳn now", spec.CycleType, n, *next)
			}
		}
	}
}
