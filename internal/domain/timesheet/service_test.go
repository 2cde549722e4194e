package timesheet

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	known     map[string]bool
	createFn  func(entry Entry) (Entry, error)
	entries   []Entry
	overallFn func(from, to time.Time) ([]Overall, error)
	lastList  string
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return f.known[id], nil
}

func (f *fakeStore) Create(_ context.Context, entry Entry) (Entry, error) { return f.createFn(entry) }

func (f *fakeStore) List(_ context.Context, employeeID string, _, _ int) ([]Entry, error) {
	f.lastList = employeeID
	return f.entries, nil
}

func (f *fakeStore) Overall(_ context.Context, from, to time.Time) ([]Overall, error) {
	return f.overallFn(from, to)
}

func TestCreateFlagsShortLeave(t *testing.T) {
	var saved []Entry
	store := &fakeStore{known: map[string]bool{"E001": true}, createFn: func(entry Entry) (Entry, error) {
		saved = append(saved, entry)
		entry.ID = "t1"
		return entry, nil
	}}
	svc := NewService(store, 6)

	short, err := svc.Create(context.Background(), NewEntry{EmployeeID: "E001", CheckInTime: "09:00", CheckOutTime: "13:00"})
	require.NoError(t, err)
	assert.True(t, short.IsShortLeave)
	assert.Equal(t, 4.0, short.TotalHours)

	full, err := svc.Create(context.Background(), NewEntry{EmployeeID: "E001", CheckInTime: "09:00", CheckOutTime: "15:00"})
	require.NoError(t, err)
	assert.False(t, full.IsShortLeave)
	assert.Len(t, saved, 2)
}

func TestCreateValidation(t *testing.T) {
	store := &fakeStore{known: map[string]bool{"E001": true}, createFn: func(Entry) (Entry, error) {
		t.Fatal("store.Create must not be called")
		return Entry{}, nil
	}}
	svc := NewService(store, 6)

	_, err := svc.Create(context.Background(), NewEntry{EmployeeID: "E001", CheckInTime: "18:00", CheckOutTime: "09:00"})
	assert.ErrorIs(t, err, ErrCheckOutBefore)

	_, err = svc.Create(context.Background(), NewEntry{EmployeeID: "E404", CheckInTime: "09:00", CheckOutTime: "18:00"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestOverallHoursUsesCurrentWindow(t *testing.T) {
	var gotFrom, gotTo time.Time
	store := &fakeStore{overallFn: func(from, to time.Time) ([]Overall, error) {
		gotFrom, gotTo = from, to
		return []Overall{{EmployeeID: "E001", TotalHours: 12.3333}}, nil
	}}
	svc := NewService(store, 6)
	svc.now = func() time.Time { return time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC) }

	out, err := svc.OverallHours(context.Background(), PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", out.From)
	assert.Equal(t, "2026-03-15", out.To)
	assert.Equal(t, 12.33, out.Employees[0].TotalHours)
	assert.Equal(t, 7*24*time.Hour, gotTo.Sub(gotFrom))

	_, err = svc.OverallHours(context.Background(), "daily")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExportWritesWorkbook(t *testing.T) {
	store := &fakeStore{entries: []Entry{{
		EmployeeID: "E002", EmployeeName: "Sara", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		CheckInTime: "09:00", CheckOutTime: "12:00", TotalHours: 3, IsShortLeave: true,
	}}}
	var buf bytes.Buffer
	require.NoError(t, NewService(store, 6).Export(context.Background(), &buf, "E002"))
	assert.Equal(t, "E002", store.lastList)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := book.GetRows("Timesheets")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"E002", "Sara", "2026-01-05", "09:00", "12:00", "3", "Yes"}, rows[1])
}
