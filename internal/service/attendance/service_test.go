package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/domain/timecode"
)

type fakeGateway struct {
	mu sync.Mutex

	days    map[string][]attendance.EmployeeDayRecord
	dayErr  error
	markErr error
	bulkErr error

	marked []attendance.MarkRecord
	bulked []attendance.MarkRecord

	// invoked before DayRecords returns, outside the service lock
	onDayRecords func(date string)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{days: make(map[string][]attendance.EmployeeDayRecord)}
}

func (f *fakeGateway) DayRecords(ctx context.Context, date string) ([]attendance.EmployeeDayRecord, error) {
	if f.onDayRecords != nil {
		hook := f.onDayRecords
		f.onDayRecords = nil
		hook(date)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	return f.days[date], nil
}

func (f *fakeGateway) Mark(ctx context.Context, req attendance.MarkRecord) (attendance.EmployeeDayRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return attendance.EmployeeDayRecord{}, f.markErr
	}
	f.marked = append(f.marked, req)

	// echo what a backend would: the submitted fields plus computed minutes
	result := attendance.EmployeeDayRecord{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		Note:       req.Note,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
	}
	if req.CheckIn != nil && req.CheckOut != nil {
		mins := int(req.CheckOut.Sub(*req.CheckIn).Minutes())
		result.WorkedMinutes = &mins
	}
	return result, nil
}

func (f *fakeGateway) BulkMark(ctx context.Context, date time.Time, records []attendance.MarkRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.bulked = append(f.bulked, records...)
	return nil
}

func utcInstant(ymd, hhmm string) *time.Time {
	tc, ok := timecode.Parse(hhmm)
	if !ok {
		panic("bad time in test: " + hhmm)
	}
	instant, err := timecode.CombineUTC(ymd, tc)
	if err != nil {
		panic(err)
	}
	return &instant
}

func newService(gw attendance.Gateway) *ConsoleServiceImpl {
	start, _ := timecode.Parse("09:00")
	return NewConsoleService(
		gw,
		attendance.NewDurationPolicy(nil),
		attendance.LatenessPolicy{OfficialStart: start, GraceMinutes: 5},
	)
}

func findRow(t *testing.T, view attendance.DayViewResponse, employeeID string) attendance.RowResponse {
	t.Helper()
	for _, r := range view.Records {
		if r.EmployeeID == employeeID {
			return r
		}
	}
	t.Fatalf("no row for employee %s", employeeID)
	return attendance.RowResponse{}
}

func TestLoadDay(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{
		{
			EmployeeID: "u1",
			Status:     attendance.StatusPresent,
			CheckIn:    utcInstant("2025-03-14", "09:00"),
			CheckOut:   utcInstant("2025-03-14", "17:30"),
		},
	}
	svc := newService(gw)

	view, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", view.Date)
	require.Len(t, view.Records, 1)

	row := view.Records[0]
	assert.Equal(t, "09:00", row.CheckIn)
	assert.Equal(t, "17:30", row.CheckOut)
	require.NotNil(t, row.DurationMinutes)
	assert.Equal(t, 510, *row.DurationMinutes)
	assert.Equal(t, "08:30", row.Duration)
	assert.False(t, row.HasDraft)
	assert.Equal(t, 510, view.TotalMinutes)
}

func TestLoadDayRejectsBadDate(t *testing.T) {
	svc := newService(newFakeGateway())
	_, err := svc.LoadDay(context.Background(), "14-03-2025")
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)
}

func TestLoadDayFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.dayErr = errors.New("upstream down")
	svc := newService(gw)

	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	assert.ErrorContains(t, err, "failed to load day records")
}

func TestDayViewRequiresLoadedDay(t *testing.T) {
	svc := newService(newFakeGateway())
	_, err := svc.DayView()
	assert.ErrorIs(t, err, attendance.ErrNoDayLoaded)
}

func TestDaySwitchDiscardsStaleResponse(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{
		{EmployeeID: "u1", Status: attendance.StatusPresent},
	}
	gw.days["2025-03-15"] = []attendance.EmployeeDayRecord{
		{EmployeeID: "u2", Status: attendance.StatusAbsent},
	}
	svc := newService(gw)

	// While the first day's fetch is in flight, the user switches days. The
	// first response must be discarded instead of overwriting the new day.
	var innerErr error
	gw.onDayRecords = func(date string) {
		if date == "2025-03-14" {
			_, innerErr = svc.LoadDay(context.Background(), "2025-03-15")
		}
	}

	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	assert.ErrorIs(t, err, attendance.ErrStaleDay)
	require.NoError(t, innerErr)

	view, err := svc.DayView()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", view.Date)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "u2", view.Records[0].EmployeeID)
}

func TestDaySwitchResetsDrafts(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{{EmployeeID: "u1"}}
	gw.days["2025-03-15"] = []attendance.EmployeeDayRecord{{EmployeeID: "u1"}}
	svc := newService(gw)

	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)
	note := "stays on the 14th"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Note: &note})
	require.NoError(t, err)

	view, err := svc.LoadDay(context.Background(), "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 0, view.UnsavedRows)
	assert.Equal(t, "", findRow(t, view, "u1").Note)
}

func TestPatchRowMergesOverPersisted(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{
		{
			EmployeeID: "u1",
			Status:     attendance.StatusPresent,
			Note:       "persisted note",
			CheckIn:    utcInstant("2025-03-14", "09:00"),
		},
	}
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	note := "edited"
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{Note: &note})
	require.NoError(t, err)

	row := findRow(t, view, "u1")
	assert.Equal(t, "edited", row.Note)
	assert.Equal(t, "present", row.Status) // untouched fields pass through
	assert.Equal(t, "09:00", row.CheckIn)
	assert.True(t, row.HasDraft)
	assert.Equal(t, 1, view.UnsavedRows)
}

func TestPatchRowValidation(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{})
	assert.Error(t, err)

	bad := "on_vacation"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &bad})
	assert.Error(t, err)
}

func TestCheckInOnTimeDefaultsToPresent(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	checkIn := "09:05" // inside the grace window
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
	require.NoError(t, err)

	assert.Nil(t, view.PendingPrompt)
	assert.Equal(t, "present", findRow(t, view, "u1").Status)
}

func TestUnparseableCheckInDefaultsToPresent(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	// text that does not parse is never classified late, so the status-less
	// row still defaults to present
	checkIn := "9:5"
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
	require.NoError(t, err)

	assert.Nil(t, view.PendingPrompt)
	row := findRow(t, view, "u1")
	assert.Equal(t, "present", row.Status)
	assert.Nil(t, row.DurationMinutes)
}

func TestCheckInOnTimeKeepsChosenStatus(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{
		{EmployeeID: "u1", Status: attendance.StatusShortLeave},
	}
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	checkIn := "08:30"
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
	require.NoError(t, err)

	// auto-default never overwrites an already-chosen status
	assert.Equal(t, "short_leave", findRow(t, view, "u1").Status)
}

func TestLateCheckInOpensPrompt(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	checkIn := "09:10"
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
	require.NoError(t, err)

	require.NotNil(t, view.PendingPrompt)
	assert.Equal(t, "u1", view.PendingPrompt.EmployeeID)
	assert.Equal(t, "09:10", view.PendingPrompt.CheckIn)
	assert.Equal(t, 10, view.PendingPrompt.LateByMinutes)

	// no status until the human decides
	assert.Equal(t, "", findRow(t, view, "u1").Status)
}

func TestLatePromptDecisions(t *testing.T) {
	cases := []struct {
		decision string
		want     string
	}{
		{"late", "late"},
		{"present", "present"},
	}
	for _, c := range cases {
		t.Run(c.decision, func(t *testing.T) {
			gw := newFakeGateway()
			gw.days["2025-03-14"] = nil
			svc := newService(gw)
			_, err := svc.LoadDay(context.Background(), "2025-03-14")
			require.NoError(t, err)

			checkIn := "09:06"
			_, err = svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
			require.NoError(t, err)

			view, err := svc.ResolveLatePrompt(attendance.LateDecisionRequest{Decision: c.decision})
			require.NoError(t, err)
			assert.Nil(t, view.PendingPrompt)
			assert.Equal(t, c.want, findRow(t, view, "u1").Status)
		})
	}
}

func TestDismissPromptDefaultsToPresent(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	checkIn := "10:00"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &checkIn})
	require.NoError(t, err)

	view, err := svc.DismissLatePrompt()
	require.NoError(t, err)
	assert.Nil(t, view.PendingPrompt)
	assert.Equal(t, "present", findRow(t, view, "u1").Status)
}

func TestLatePromptReplacement(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	first := "09:10"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &first})
	require.NoError(t, err)

	second := "09:30"
	view, err := svc.PatchRow("u2", attendance.RowPatchRequest{CheckIn: &second})
	require.NoError(t, err)

	// one prompt at a time: the newer late check-in replaces the older one
	require.NotNil(t, view.PendingPrompt)
	assert.Equal(t, "u2", view.PendingPrompt.EmployeeID)

	view, err = svc.ResolveLatePrompt(attendance.LateDecisionRequest{Decision: "late"})
	require.NoError(t, err)
	assert.Equal(t, "late", findRow(t, view, "u2").Status)
	assert.Equal(t, "", findRow(t, view, "u1").Status)
}

func TestResolveWithoutPrompt(t *testing.T) {
	svc := newService(newFakeGateway())
	_, err := svc.ResolveLatePrompt(attendance.LateDecisionRequest{Decision: "late"})
	assert.ErrorIs(t, err, attendance.ErrNoPendingPrompt)

	_, err = svc.DismissLatePrompt()
	assert.ErrorIs(t, err, attendance.ErrNoPendingPrompt)
}

func TestMarkOneRequiresStatus(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	_, err = svc.MarkOne(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrDraftHasNoStatus)

	note := "only a note"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Note: &note})
	require.NoError(t, err)
	_, err = svc.MarkOne(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrDraftHasNoStatus)
}

func TestMarkOneSuccessClearsDraft(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	status := "present"
	in, out := "09:00", "17:30"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &status, CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)

	view, err := svc.MarkOne(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, gw.marked, 1)
	payload := gw.marked[0]
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), payload.Date)
	require.NotNil(t, payload.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), *payload.CheckIn)

	row := findRow(t, view, "u1")
	assert.False(t, row.HasDraft)
	require.NotNil(t, row.WorkedMinutes)
	assert.Equal(t, 510, *row.WorkedMinutes)
	assert.Equal(t, 0, view.UnsavedRows)
}

func TestMarkOneOffStatusSuppressesTimes(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	// stray check-in text left over from a prior status choice
	status := "leave"
	stray := "10:00"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &status, CheckIn: &stray})
	require.NoError(t, err)

	view, err := svc.MarkOne(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, gw.marked, 1)
	assert.Nil(t, gw.marked[0].CheckIn)
	assert.Nil(t, gw.marked[0].CheckOut)

	// the stored row shows no time either
	row := findRow(t, view, "u1")
	assert.Equal(t, "", row.CheckIn)
	assert.Equal(t, "leave", row.Status)
}

func TestMarkOneFailureKeepsDraft(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	status := "present"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &status})
	require.NoError(t, err)

	gw.markErr = errors.New("upstream down")
	_, err = svc.MarkOne(context.Background(), "u1")
	require.Error(t, err)

	view, err := svc.DayView()
	require.NoError(t, err)
	row := findRow(t, view, "u1")
	assert.True(t, row.HasDraft)
	assert.Equal(t, "present", row.Status)
}

func TestSaveAllExcludesStatuslessDrafts(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	// u1 has only a note: excluded. u2 has a bare status: included.
	note := "note only"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Note: &note})
	require.NoError(t, err)
	status := "absent"
	_, err = svc.PatchRow("u2", attendance.RowPatchRequest{Status: &status})
	require.NoError(t, err)

	view, err := svc.SaveAll(context.Background())
	require.NoError(t, err)

	require.Len(t, gw.bulked, 1)
	assert.Equal(t, "u2", gw.bulked[0].EmployeeID)
	assert.Equal(t, attendance.StatusAbsent, gw.bulked[0].Status)

	// all drafts clear after the confirming refetch, not just submitted ones
	assert.Equal(t, 0, view.UnsavedRows)
}

func TestSaveAllNothingToSubmit(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	view, err := svc.SaveAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gw.bulked)
	assert.Equal(t, "2025-03-14", view.Date)
}

func TestSaveAllRefetchesForAuthoritativeValues(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	status, in, out := "present", "09:00", "17:00"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &status, CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)

	// the refetch is the source of truth, not the bulk response
	served := 495
	gw.mu.Lock()
	gw.days["2025-03-14"] = []attendance.EmployeeDayRecord{
		{
			EmployeeID:    "u1",
			Status:        attendance.StatusPresent,
			CheckIn:       utcInstant("2025-03-14", "09:00"),
			CheckOut:      utcInstant("2025-03-14", "17:00"),
			WorkedMinutes: &served,
		},
	}
	gw.mu.Unlock()

	view, err := svc.SaveAll(context.Background())
	require.NoError(t, err)

	row := findRow(t, view, "u1")
	require.NotNil(t, row.WorkedMinutes)
	assert.Equal(t, 495, *row.WorkedMinutes)
	require.NotNil(t, row.DurationMinutes)
	assert.Equal(t, 495, *row.DurationMinutes) // server value wins over 480
}

func TestSaveAllFailureKeepsDrafts(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	status := "present"
	_, err = svc.PatchRow("u1", attendance.RowPatchRequest{Status: &status})
	require.NoError(t, err)

	gw.bulkErr = errors.New("batch failed")
	_, err = svc.SaveAll(context.Background())
	require.Error(t, err)

	view, err := svc.DayView()
	require.NoError(t, err)
	assert.Equal(t, 1, view.UnsavedRows)
}

func TestInvalidRangeShownNotSaved(t *testing.T) {
	gw := newFakeGateway()
	gw.days["2025-03-14"] = nil
	svc := newService(gw)
	_, err := svc.LoadDay(context.Background(), "2025-03-14")
	require.NoError(t, err)

	in, out := "17:00", "09:00"
	view, err := svc.PatchRow("u1", attendance.RowPatchRequest{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err)

	row := findRow(t, view, "u1")
	assert.True(t, row.InvalidRange)
	assert.Nil(t, row.DurationMinutes)
	assert.Equal(t, "Invalid", row.Duration)
	assert.Equal(t, 0, view.TotalMinutes)
}
