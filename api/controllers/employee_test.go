package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dattendance/attendance-backend/api/middleware"
	"github.com/dattendance/attendance-backend/internal/attendance"
	"github.com/dattendance/attendance-backend/internal/rotas"
	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/pagination"
)

type stubAttendanceSvc struct {
	now      time.Time
	checkIn  *attendance.CheckResult
	checkOut *attendance.CheckResult
	today    *attendance.RecordDTO
	records  *attendance.RecordList
	gotPage  pagination.Params
}

func (s *stubAttendanceSvc) Now() time.Time {
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *stubAttendanceSvc) CheckIn(context.Context, uuid.UUID) (*attendance.CheckResult, error) {
	return s.checkIn, nil
}

func (s *stubAttendanceSvc) CheckOut(context.Context, uuid.UUID) (*attendance.CheckResult, error) {
	return s.checkOut, nil
}

func (s *stubAttendanceSvc) Today(context.Context, uuid.UUID) (*attendance.RecordDTO, error) {
	return s.today, nil
}

func (s *stubAttendanceSvc) MyRecords(_ context.Context, _ uuid.UUID, params pagination.Params) (*attendance.RecordList, error) {
	s.gotPage = params
	return s.records, nil
}

func (s *stubAttendanceSvc) AllRecords(context.Context, pagination.Params, attendance.RecordFilters) (*attendance.RecordList, error) {
	return s.records, nil
}

type stubRotaSvc struct {
	weekly []rotas.RotaDTO
}

func (s stubRotaSvc) ListForEmployee(context.Context, uuid.UUID) ([]rotas.RotaDTO, error) {
	return s.weekly, nil
}

func (s stubRotaSvc) Assign(context.Context, uuid.UUID, rotas.AssignRotaRequest) (*rotas.RotaDTO, error) {
	return nil, nil
}

func (s stubRotaSvc) Remove(context.Context, uuid.UUID) error { return nil }

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestEmployeeCheckInRejectionStays200(t *testing.T) {
	svc := &stubAttendanceSvc{checkIn: &attendance.CheckResult{
		Success: false,
		Message: "Already checked in today",
	}}
	handler := EmployeeCheckIn(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/employee/check-in"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data attendance.CheckResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Success {
		t.Fatal("expected success=false")
	}
	if envelope.Data.Message != "Already checked in today" {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
}

func TestEmployeeCheckInRequiresIdentity(t *testing.T) {
	handler := EmployeeCheckIn(&stubAttendanceSvc{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/employee/check-in", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestEmployeeDashboardPicksTodayRota(t *testing.T) {
	// The dashboard resolves "today" through the service clock, so a fixed
	// Wednesday must surface the Wednesday rota regardless of wall time.
	svc := &stubAttendanceSvc{now: time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)}
	handler := EmployeeDashboard(svc, stubRotaSvc{weekly: []rotas.RotaDTO{
		{DayOfWeek: "Monday", ShiftStart: "09:00", ShiftEnd: "17:00"},
		{DayOfWeek: "Wednesday", ShiftStart: "10:00", ShiftEnd: "18:00"},
	}}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/employee/dashboard"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			TodayRota *rotas.RotaDTO  `json:"today_rota"`
			Rotas     []rotas.RotaDTO `json:"rotas"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Rotas) != 2 {
		t.Fatalf("expected 2 rotas got %d", len(envelope.Data.Rotas))
	}
	if envelope.Data.TodayRota == nil || envelope.Data.TodayRota.DayOfWeek != "Wednesday" {
		t.Fatalf("unexpected today_rota %+v", envelope.Data.TodayRota)
	}
}

func TestEmployeeMyRecordsUsesConfiguredPageSize(t *testing.T) {
	svc := &stubAttendanceSvc{records: &attendance.RecordList{}}
	handler := EmployeeMyRecords(svc, config.AttendanceConfig{RecordsPerPage: 10}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/employee/my-records?page=3"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotPage.Page != 3 || svc.gotPage.PerPage != 10 {
		t.Fatalf("unexpected pagination %+v", svc.gotPage)
	}
}
