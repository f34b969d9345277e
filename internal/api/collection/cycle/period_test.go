// Package cycle - Test toán kỳ: biên kỳ, hạn nộp, khóa kỳ và round-trip ParseKey.
package cycle

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("không parse được thời gian %s: %v", value, err)
	}
	return parsed
}

func TestCalculate_Daily(t *testing.T) {
	// runAtMinute=540 (09:00), dueAtMinute=600 (10:00), neo 2024-03-01 08:00
	spec := Spec{CycleType: TypeDaily, RunAtMinute: 540, DueAtMinute: 600}
	anchor := mustTime(t, "2024-03-01T08:00")

	p := Calculate(spec, anchor, nil)

	if !p.Start.Equal(mustTime(t, "2024-03-01T00:00")) {
		t.Errorf("periodStart = %v, muốn 2024-03-01 00:00", p.Start)
	}
	if !p.DueAt.Equal(mustTime(t, "2024-03-01T10:00")) {
		t.Errorf("dueAt = %v, muốn 2024-03-01 10:00", p.DueAt)
	}
	if p.Key != "2024-03-01" {
		t.Errorf("periodKey = %q, muốn 2024-03-01", p.Key)
	}
	if p.RunAtMinute != 540 {
		t.Errorf("runAtMinute = %d, muốn 540", p.RunAtMinute)
	}
}

func TestCalculate_Weekly(t *testing.T) {
	// dueDayOfWeek=5 (Thứ Sáu), neo Thứ Tư 2024-03-06
	spec := Spec{CycleType: TypeWeekly, DueDayOfWeek: 5, DueAtMinute: 600}
	anchor := mustTime(t, "2024-03-06T11:30")

	p := Calculate(spec, anchor, nil)

	if !p.Start.Equal(mustTime(t, "2024-03-04T00:00")) {
		t.Errorf("periodStart = %v, muốn Thứ Hai 2024-03-04", p.Start)
	}
	if !p.DueAt.Equal(mustTime(t, "2024-03-08T10:00")) {
		t.Errorf("dueAt = %v, muốn Thứ Sáu 2024-03-08 10:00", p.DueAt)
	}
	if p.Key != "2024-W10" {
		t.Errorf("periodKey = %q, muốn 2024-W10", p.Key)
	}
	if p.End.Before(p.DueAt) {
		t.Errorf("periodEnd %v phải >= dueAt %v", p.End, p.DueAt)
	}
}

func TestCalculate_Weekly_DefaultDueSunday(t *testing.T) {
	spec := Spec{CycleType: TypeWeekly}
	anchor := mustTime(t, "2024-03-06T11:30")

	p := Calculate(spec, anchor, nil)

	// dueDayOfWeek vắng mặt → mặc định Chủ Nhật (7)
	if !p.DueAt.Equal(mustTime(t, "2024-03-10T00:00")) {
		t.Errorf("dueAt = %v, muốn Chủ Nhật 2024-03-10 00:00", p.DueAt)
	}
}

func TestCalculate_Monthly_ClampsToLastDay(t *testing.T) {
	// dueDayOfMonth=31 nhưng tháng Tư chỉ có 30 ngày
	spec := Spec{CycleType: TypeMonthly, DueDayOfMonth: 31, DueAtMinute: 720}
	anchor := mustTime(t, "2024-04-15T09:00")

	p := Calculate(spec, anchor, nil)

	if !p.DueAt.Equal(mustTime(t, "2024-04-30T12:00")) {
		t.Errorf("dueAt = %v, muốn kẹp về 2024-04-30 12:00", p.DueAt)
	}
	if !p.Start.Equal(mustTime(t, "2024-04-01T00:00")) {
		t.Errorf("periodStart = %v, muốn 2024-04-01", p.Start)
	}
	if p.Key != "2024-04" {
		t.Errorf("periodKey = %q, muốn 2024-04", p.Key)
	}
}

func TestCalculate_Monthly_ZeroMeansLastDay(t *testing.T) {
	spec := Spec{CycleType: TypeMonthly, DueDayOfMonth: 0}
	anchor := mustTime(t, "2024-02-10T09:00")

	p := Calculate(spec, anchor, nil)

	// 2024 là năm nhuận — tháng Hai có 29 ngày
	if !p.DueAt.Equal(mustTime(t, "2024-02-29T00:00")) {
		t.Errorf("dueAt = %v, muốn ngày cuối tháng 2024-02-29", p.DueAt)
	}
}

func TestCalculate_OneTime_DeadlineOffset(t *testing.T) {
	spec := Spec{CycleType: TypeOneTime, DeadlineOffset: 48, DueAtMinute: 600}
	anchor := mustTime(t, "2024-03-01T08:00")

	p := Calculate(spec, anchor, nil)

	// deadlineOffset có mặt thì thắng dueAtMinute
	if !p.DueAt.Equal(mustTime(t, "2024-03-03T08:00")) {
		t.Errorf("dueAt = %v, muốn neo + 48 giờ = 2024-03-03 08:00", p.DueAt)
	}
}

func TestCalculate_UnknownCycleFallsBackToOneTime(t *testing.T) {
	spec := Spec{CycleType: "QUARTERLY", DueAtMinute: 600}
	anchor := mustTime(t, "2024-03-01T08:00")

	p := Calculate(spec, anchor, nil)

	if p.Key != "2024-03-01" {
		t.Errorf("loại chu kỳ lạ phải rơi về nhánh ONE_TIME, key = %q", p.Key)
	}
	if !p.DueAt.Equal(mustTime(t, "2024-03-01T10:00")) {
		t.Errorf("dueAt = %v, muốn 2024-03-01 10:00", p.DueAt)
	}
}

func TestCalculate_DueOverrideWins(t *testing.T) {
	spec := Spec{CycleType: TypeDaily, DueAtMinute: 600}
	anchor := mustTime(t, "2024-03-01T08:00")
	override := mustTime(t, "2024-03-05T17:00")

	p := Calculate(spec, anchor, &override)

	if !p.DueAt.Equal(override) {
		t.Errorf("dueAt = %v, override phải thay thế vô điều kiện", p.DueAt)
	}
}

func TestCalculate_ClampsMinutes(t *testing.T) {
	spec := Spec{CycleType: TypeDaily, RunAtMinute: -10, DueAtMinute: 5000}
	anchor := mustTime(t, "2024-03-01T08:00")

	p := Calculate(spec, anchor, nil)

	if p.RunAtMinute != 0 {
		t.Errorf("runAtMinute âm phải kẹp về 0, được %d", p.RunAtMinute)
	}
	// 1439 phút = 23:59
	if !p.DueAt.Equal(mustTime(t, "2024-03-01T23:59")) {
		t.Errorf("dueAtMinute vượt trần phải kẹp về 1439, dueAt = %v", p.DueAt)
	}
}

// Thuộc tính periodStart <= dueAt <= periodEnd cho các chu kỳ lịch
func TestCalculate_OrderingProperty(t *testing.T) {
	anchors := []string{
		"2024-01-01T00:00", "2024-02-29T12:00", "2024-06-15T23:59", "2024-12-31T09:30",
	}
	specs := []Spec{
		{CycleType: TypeDaily, DueAtMinute: 0},
		{CycleType: TypeDaily, DueAtMinute: 1439},
		{CycleType: TypeWeekly, DueDayOfWeek: 1},
		{CycleType: TypeWeekly, DueDayOfWeek: 7, DueAtMinute: 1439},
		{CycleType: TypeMonthly, DueDayOfMonth: 1},
		{CycleType: TypeMonthly, DueDayOfMonth: 31, DueAtMinute: 1439},
	}

	for _, a := range anchors {
		anchor := mustTime(t, a)
		for _, spec := range specs {
			p := Calculate(spec, anchor, nil)
			if p.DueAt.Before(p.Start) || p.DueAt.After(p.End) {
				t.Errorf("chu kỳ %s neo %s: dueAt %v nằm ngoài [%v, %v]",
					spec.CycleType, a, p.DueAt, p.Start, p.End)
			}
		}
	}
}

// Khóa kỳ phải round-trip về đúng đầu kỳ
func TestParseKey_RoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		spec   Spec
		anchor string
	}{
		{"daily", Spec{CycleType: TypeDaily}, "2024-03-01T08:00"},
		{"weekly giữa năm", Spec{CycleType: TypeWeekly}, "2024-03-06T11:30"},
		{"weekly giáp ranh năm", Spec{CycleType: TypeWeekly}, "2024-12-31T10:00"},
		{"monthly", Spec{CycleType: TypeMonthly}, "2024-04-15T09:00"},
		{"one_time", Spec{CycleType: TypeOneTime}, "2024-07-04T18:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anchor := mustTime(t, tc.anchor)
			p := Calculate(tc.spec, anchor, nil)

			parsed, err := ParseKey(p.Key, time.Local)
			if err != nil {
				t.Fatalf("ParseKey(%q) lỗi: %v", p.Key, err)
			}
			if !parsed.Equal(p.Start) {
				t.Errorf("ParseKey(%q) = %v, muốn periodStart %v", p.Key, parsed, p.Start)
			}
		})
	}
}

func TestParseKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "abc", "2024-W99", "2024/03/01"} {
		if _, err := ParseKey(key, time.Local); err == nil {
			t.Errorf("ParseKey(%q) phải trả lỗi", key)
		}
	}
}
