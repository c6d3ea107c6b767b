package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/domain/timecode"
	"github.com/workpoint-hq/attendance-console/internal/pkg/validator"
)

// ConsoleServiceImpl holds the state for the currently selected day: the
// persisted records fetched from the HR API and the unsaved per-employee
// drafts layered over them. Drafts are keyed by employee only, so switching
// days must reset them or edits would leak onto the wrong day. The generation
// counter discards upstream responses that arrive after a day switch.
type ConsoleServiceImpl struct {
	gateway  attendance.Gateway
	duration attendance.DurationPolicy
	lateness attendance.LatenessPolicy

	mu         sync.Mutex
	date       string
	generation uint64
	persisted  map[string]attendance.DayRecord
	drafts     map[string]attendance.Draft
	prompt     *attendance.LatePrompt
}

func NewConsoleService(
	gateway attendance.Gateway,
	duration attendance.DurationPolicy,
	lateness attendance.LatenessPolicy,
) *ConsoleServiceImpl {
	return &ConsoleServiceImpl{
		gateway:   gateway,
		duration:  duration,
		lateness:  lateness,
		persisted: make(map[string]attendance.DayRecord),
		drafts:    make(map[string]attendance.Draft),
	}
}

var _ attendance.ConsoleService = (*ConsoleServiceImpl)(nil)

// LoadDay implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) LoadDay(ctx context.Context, date string) (attendance.DayViewResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.DayViewResponse{}, attendance.ErrInvalidDate
	}

	s.mu.Lock()
	s.date = date
	s.generation++
	generation := s.generation
	// The previous day's state must not survive the switch, even while the
	// fetch is in flight.
	s.persisted = make(map[string]attendance.DayRecord)
	s.drafts = make(map[string]attendance.Draft)
	s.prompt = nil
	s.mu.Unlock()

	records, err := s.gateway.DayRecords(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return attendance.DayViewResponse{}, attendance.ErrStaleDay
	}
	if err != nil {
		return attendance.DayViewResponse{}, fmt.Errorf("failed to load day records: %w", err)
	}

	s.persisted = make(map[string]attendance.DayRecord, len(records))
	for _, r := range records {
		s.persisted[r.EmployeeID] = s.recordFromUpstream(r, false)
	}
	return s.viewLocked(), nil
}

// DayView implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) DayView() (attendance.DayViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.date == "" {
		return attendance.DayViewResponse{}, attendance.ErrNoDayLoaded
	}
	return s.viewLocked(), nil
}

// PatchRow implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) PatchRow(employeeID string, req attendance.RowPatchRequest) (attendance.DayViewResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayViewResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.date == "" {
		return attendance.DayViewResponse{}, attendance.ErrNoDayLoaded
	}

	s.drafts[employeeID] = s.drafts[employeeID].Apply(req.Draft())

	// A non-empty check-in edit drives the lateness decision. Only parsed
	// text is classified; anything not classified late, unparseable text
	// included, defaults a status-less row to present.
	if req.CheckIn != nil && *req.CheckIn != "" {
		late := false
		if checkIn, ok := timecode.Parse(*req.CheckIn); ok {
			if c := s.lateness.Classify(checkIn); c.IsLate {
				late = true
				// A single prompt at a time: a later late check-in replaces
				// a still-unresolved one.
				s.prompt = &attendance.LatePrompt{
					EmployeeID:    employeeID,
					CheckIn:       *req.CheckIn,
					LateByMinutes: c.LateByMinutes,
				}
			}
		}
		if !late {
			s.defaultToPresentLocked(employeeID)
		}
	}

	return s.viewLocked(), nil
}

// defaultToPresentLocked sets the draft status to present only when neither
// the draft nor the persisted record has a status yet. An already-chosen
// status is never overwritten.
func (s *ConsoleServiceImpl) defaultToPresentLocked(employeeID string) {
	if d := s.drafts[employeeID]; d.Status != nil {
		return
	}
	if s.persisted[employeeID].Status != "" {
		return
	}
	status := attendance.StatusPresent
	draft := s.drafts[employeeID]
	draft.Status = &status
	s.drafts[employeeID] = draft
}

// ResetRow implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) ResetRow(employeeID string) (attendance.DayViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.date == "" {
		return attendance.DayViewResponse{}, attendance.ErrNoDayLoaded
	}
	delete(s.drafts, employeeID)
	return s.viewLocked(), nil
}

// ResolveLatePrompt implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) ResolveLatePrompt(req attendance.LateDecisionRequest) (attendance.DayViewResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayViewResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompt == nil {
		return attendance.DayViewResponse{}, attendance.ErrNoPendingPrompt
	}

	status := attendance.LateDecision(req.Decision).Status()
	draft := s.drafts[s.prompt.EmployeeID]
	draft.Status = &status
	s.drafts[s.prompt.EmployeeID] = draft
	s.prompt = nil

	return s.viewLocked(), nil
}

// DismissLatePrompt implements attendance.ConsoleService. Abandoning the
// prompt is not a third outcome: the status resolves to present.
func (s *ConsoleServiceImpl) DismissLatePrompt() (attendance.DayViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompt == nil {
		return attendance.DayViewResponse{}, attendance.ErrNoPendingPrompt
	}

	status := attendance.StatusPresent
	draft := s.drafts[s.prompt.EmployeeID]
	draft.Status = &status
	s.drafts[s.prompt.EmployeeID] = draft
	s.prompt = nil

	return s.viewLocked(), nil
}

// MarkOne implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) MarkOne(ctx context.Context, employeeID string) (attendance.DayViewResponse, error) {
	s.mu.Lock()
	if s.date == "" {
		s.mu.Unlock()
		return attendance.DayViewResponse{}, attendance.ErrNoDayLoaded
	}
	draft, ok := s.drafts[employeeID]
	if !ok || draft.Status == nil {
		s.mu.Unlock()
		return attendance.DayViewResponse{}, attendance.ErrDraftHasNoStatus
	}
	date := s.date
	generation := s.generation
	merged := attendance.Merge(s.persisted[employeeID], draft)
	s.mu.Unlock()

	payload, err := s.buildMarkRecord(employeeID, date, merged)
	if err != nil {
		return attendance.DayViewResponse{}, err
	}

	result, err := s.gateway.Mark(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return attendance.DayViewResponse{}, attendance.ErrStaleDay
	}
	if err != nil {
		// The draft stays untouched so the user's edits survive the failure.
		return attendance.DayViewResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	s.persisted[employeeID] = s.recordFromUpstream(result, true)
	delete(s.drafts, employeeID)
	return s.viewLocked(), nil
}

// SaveAll implements attendance.ConsoleService.
func (s *ConsoleServiceImpl) SaveAll(ctx context.Context) (attendance.DayViewResponse, error) {
	s.mu.Lock()
	if s.date == "" {
		s.mu.Unlock()
		return attendance.DayViewResponse{}, attendance.ErrNoDayLoaded
	}
	date := s.date
	generation := s.generation

	// Drafts without a status are silently excluded from the batch.
	ids := make([]string, 0, len(s.drafts))
	for id, draft := range s.drafts {
		if draft.Status != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	records := make([]attendance.MarkRecord, 0, len(ids))
	var buildErr error
	for _, id := range ids {
		merged := attendance.Merge(s.persisted[id], s.drafts[id])
		rec, err := s.buildMarkRecord(id, date, merged)
		if err != nil {
			buildErr = err
			break
		}
		records = append(records, rec)
	}
	s.mu.Unlock()

	if buildErr != nil {
		return attendance.DayViewResponse{}, buildErr
	}
	if len(records) == 0 {
		return s.DayView()
	}

	dateUTC, err := timecode.MidnightUTC(date)
	if err != nil {
		return attendance.DayViewResponse{}, err
	}

	if err := s.gateway.BulkMark(ctx, dateUTC, records); err != nil {
		// Whole-batch failure: every draft is kept for retry.
		return attendance.DayViewResponse{}, fmt.Errorf("failed to save attendance batch: %w", err)
	}

	// The bulk response is not trusted for the authoritative worked minutes;
	// refetch the day instead. A refetch failure still clears the drafts --
	// the batch itself succeeded.
	fresh, fetchErr := s.gateway.DayRecords(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return attendance.DayViewResponse{}, attendance.ErrStaleDay
	}
	if fetchErr == nil {
		s.persisted = make(map[string]attendance.DayRecord, len(fresh))
		for _, r := range fresh {
			s.persisted[r.EmployeeID] = s.recordFromUpstream(r, false)
		}
	}
	s.drafts = make(map[string]attendance.Draft)
	return s.viewLocked(), nil
}

// buildMarkRecord converts a merged record into the wire payload. An off
// status forces the clock times to null even when stray text is present in
// the draft; otherwise the HH:MM text is combined with the calendar day in
// UTC, with unparseable text sent as null.
func (s *ConsoleServiceImpl) buildMarkRecord(employeeID, date string, merged attendance.DayRecord) (attendance.MarkRecord, error) {
	dateUTC, err := timecode.MidnightUTC(date)
	if err != nil {
		return attendance.MarkRecord{}, err
	}

	rec := attendance.MarkRecord{
		EmployeeID: employeeID,
		Date:       dateUTC,
		Status:     merged.Status,
		Note:       merged.Note,
	}
	if s.duration.IsOffStatus(merged.Status) {
		return rec, nil
	}
	rec.CheckIn = combineOrNil(date, merged.CheckIn)
	rec.CheckOut = combineOrNil(date, merged.CheckOut)
	return rec, nil
}

func combineOrNil(date, hhmm string) *time.Time {
	tc, ok := timecode.Parse(hhmm)
	if !ok {
		return nil
	}
	instant, err := timecode.CombineUTC(date, tc)
	if err != nil {
		return nil
	}
	return &instant
}

// recordFromUpstream converts an upstream record to the editable HH:MM form,
// reading instants with UTC getters. After a save, off statuses suppress the
// returned times to empty; the plain day fetch shows whatever came back.
func (s *ConsoleServiceImpl) recordFromUpstream(r attendance.EmployeeDayRecord, suppressOff bool) attendance.DayRecord {
	rec := attendance.DayRecord{
		Status:        r.Status,
		Note:          r.Note,
		WorkedMinutes: r.WorkedMinutes,
	}
	if suppressOff && s.duration.IsOffStatus(r.Status) {
		return rec
	}
	if r.CheckIn != nil {
		rec.CheckIn = timecode.FromInstantUTC(*r.CheckIn).String()
	}
	if r.CheckOut != nil {
		rec.CheckOut = timecode.FromInstantUTC(*r.CheckOut).String()
	}
	return rec
}

// viewLocked builds the merged view model. Callers must hold s.mu.
func (s *ConsoleServiceImpl) viewLocked() attendance.DayViewResponse {
	ids := make([]string, 0, len(s.persisted)+len(s.drafts))
	seen := make(map[string]struct{}, len(s.persisted))
	for id := range s.persisted {
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	for id := range s.drafts {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	view := attendance.DayViewResponse{
		Date:    s.date,
		Records: make([]attendance.RowResponse, 0, len(ids)),
	}
	for _, id := range ids {
		row := s.rowLocked(id)
		view.Records = append(view.Records, row)
		if row.HasDraft {
			view.UnsavedRows++
		}
		if row.DurationMinutes != nil {
			view.TotalMinutes += *row.DurationMinutes
		}
	}
	if s.prompt != nil {
		view.PendingPrompt = &attendance.LatePromptResponse{
			EmployeeID:    s.prompt.EmployeeID,
			CheckIn:       s.prompt.CheckIn,
			LateByMinutes: s.prompt.LateByMinutes,
		}
	}
	return view
}

func (s *ConsoleServiceImpl) rowLocked(employeeID string) attendance.RowResponse {
	draft := s.drafts[employeeID]
	merged := attendance.Merge(s.persisted[employeeID], draft)
	duration, invalid := s.duration.EffectiveDuration(merged)

	durationText := "—"
	switch {
	case invalid:
		durationText = "Invalid"
	case duration != nil:
		durationText = timecode.FormatMinutes(*duration)
	}

	return attendance.RowResponse{
		EmployeeID:      employeeID,
		Status:          string(merged.Status),
		Note:            merged.Note,
		CheckIn:         merged.CheckIn,
		CheckOut:        merged.CheckOut,
		WorkedMinutes:   merged.WorkedMinutes,
		DurationMinutes: duration,
		Duration:        durationText,
		InvalidRange:    invalid,
		HasDraft:        draft.HasChanges(),
	}
}
