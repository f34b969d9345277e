// Package collectionsvc - Test kế hoạch backfill: giới hạn số kỳ, gieo lại mốc kế
// tiếp, tắt mẫu ONE_TIME và cắt theo activeUntil.
package collectionsvc

import (
	"testing"
	"time"

	"github.com/ccnuzw/CTBMS-sub006/internal/api/collection/cycle"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("không parse được thời gian %s: %v", value, err)
	}
	return parsed
}

func TestPlanBackfill_CaughtUp(t *testing.T) {
	spec := cycle.Spec{CycleType: cycle.TypeDaily, RunAtMinute: 540, MaxBackfillPeriods: 5}
	nextRun := mustTime(t, "2024-03-01T09:00")
	now := mustTime(t, "2024-03-01T10:00")

	runs, next, deactivate := PlanBackfill(spec, nextRun, now)

	if len(runs) != 1 {
		t.Fatalf("muốn 1 lần sinh, được %d", len(runs))
	}
	if !runs[0].Equal(nextRun) {
		t.Errorf("mốc sinh phải là nextRun đã lưu, được %v", runs[0])
	}
	if next == nil || !next.Equal(mustTime(t, "2024-03-02T09:00")) {
		t.Errorf("next = %v, muốn 09:00 hôm sau", next)
	}
	if deactivate {
		t.Errorf("chu kỳ DAILY không được tắt mẫu")
	}
}

// Thuộc tính giới hạn backfill: trễ K kỳ với trần N < K thì đúng N lần sinh,
// và mốc kế tiếp vẫn ≤ now (backlog còn lại chờ tick sau)
func TestPlanBackfill_BoundedByMaxPeriods(t *testing.T) {
	spec := cycle.Spec{CycleType: cycle.TypeDaily, RunAtMinute: 540, MaxBackfillPeriods: 3}
	nextRun := mustTime(t, "2024-03-01T09:00")
	now := mustTime(t, "2024-03-10T12:00") // trễ ~9 kỳ

	runs, next, _ := PlanBackfill(spec, nextRun, now)

	if len(runs) != 3 {
		t.Fatalf("trần 3 kỳ phải cho đúng 3 lần sinh, được %d", len(runs))
	}
	for i, expected := range []string{"2024-03-01T09:00", "2024-03-02T09:00", "2024-03-03T09:00"} {
		if !runs[i].Equal(mustTime(t, expected)) {
			t.Errorf("runs[%d] = %v, muốn %s", i, runs[i], expected)
		}
	}
	if next == nil {
		t.Fatal("còn backlog thì next không được nil")
	}
	if next.After(now) {
		t.Errorf("next %v phải còn ≤ now khi backlog chưa xử lý hết", *next)
	}
	if !next.Equal(mustTime(t, "2024-03-04T09:00")) {
		t.Errorf("next = %v, muốn 2024-03-04 09:00", *next)
	}
}

func TestPlanBackfill_DefaultIsOnePeriod(t *testing.T) {
	// maxBackfillPeriods vắng mặt (0) → hiệu lực là 1
	spec := cycle.Spec{CycleType: cycle.TypeDaily, RunAtMinute: 540}
	nextRun := mustTime(t, "2024-03-01T09:00")
	now := mustTime(t, "2024-03-05T12:00")

	runs, _, _ := PlanBackfill(spec, nextRun, now)
	if len(runs) != 1 {
		t.Errorf("mặc định phải là 1 kỳ mỗi tick, được %d", len(runs))
	}
}

func TestPlanBackfill_OneTimeFiresOnceAndDeactivates(t *testing.T) {
	spec := cycle.Spec{CycleType: cycle.TypeOneTime, RunAtMinute: 540, MaxBackfillPeriods: 5}
	nextRun := mustTime(t, "2024-03-01T09:00")
	now := mustTime(t, "2024-03-08T12:00")

	runs, next, deactivate := PlanBackfill(spec, nextRun, now)

	if len(runs) != 1 {
		t.Errorf("ONE_TIME chỉ được bắn một lần, được %d", len(runs))
	}
	if next != nil {
		t.Errorf("ONE_TIME sau khi bắn không còn lần chạy, next = %v", *next)
	}
	if !deactivate {
		t.Errorf("ONE_TIME sau khi bắn phải tắt mẫu")
	}
}

func TestPlanBackfill_StopsAtActiveUntil(t *testing.T) {
	activeUntil := mustTime(t, "2024-03-02T12:00")
	spec := cycle.Spec{
		CycleType:          cycle.TypeDaily,
		RunAtMinute:        540,
		MaxBackfillPeriods: 10,
		ActiveUntil:        &activeUntil,
	}
	nextRun := mustTime(t, "2024-03-01T09:00")
	now := mustTime(t, "2024-03-05T12:00")

	runs, next, deactivate := PlanBackfill(spec, nextRun, now)

	// 01 và 02 nằm trong cửa sổ; mốc 03 vượt activeUntil nên dừng
	if len(runs) != 2 {
		t.Fatalf("muốn 2 lần sinh trong cửa sổ hiệu lực, được %d", len(runs))
	}
	if next != nil {
		t.Errorf("vượt activeUntil thì next phải là nil, được %v", *next)
	}
	if deactivate {
		t.Errorf("hết cửa sổ không tự tắt mẫu, chỉ gỡ nextRunAt")
	}
}

func TestPlanBackfill_FutureNextRunMeansNoRuns(t *testing.T) {
	spec := cycle.Spec{CycleType: cycle.TypeDaily, RunAtMinute: 540, MaxBackfillPeriods: 3}
	nextRun := mustTime(t, "2024-03-10T09:00")
	now := mustTime(t, "2024-03-01T10:00")

	runs, next, _ := PlanBackfill(spec, nextRun, now)

	if len(runs) != 0 {
		t.Errorf("nextRun ở tương lai thì không sinh gì, được %d lần", len(runs))
	}
	if next == nil || !next.Equal(nextRun) {
		t.Errorf("next phải giữ nguyên mốc tương lai, được %v", next)
	}
}

func TestPlanBackfill_WeeklyReseedKeepsAlignment(t *testing.T) {
	// Gieo lại một giây sau mốc vừa xử lý phải ra đúng thứ của tuần kế tiếp
	spec := cycle.Spec{CycleType: cycle.TypeWeekly, RunDayOfWeek: 1, RunAtMinute: 540, MaxBackfillPeriods: 3}
	nextRun := mustTime(t, "2024-03-04T09:00") // Thứ Hai
	now := mustTime(t, "2024-03-20T12:00")

	runs, _, _ := PlanBackfill(spec, nextRun, now)

	expected := []string{"2024-03-04T09:00", "2024-03-11T09:00", "2024-03-18T09:00"}
	if len(runs) != 3 {
		t.Fatalf("muốn 3 lần sinh, được %d", len(runs))
	}
	for i, e := range expected {
		if !runs[i].Equal(mustTime(t, e)) {
			t.Errorf("runs[%d] = %v, muốn Thứ Hai %s", i, runs[i], e)
		}
	}
}
