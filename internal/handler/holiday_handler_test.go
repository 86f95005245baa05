package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

func newHolidayRouter(dir *fakeDirectory, repo *memAlarmRepo, plan *fakePlanner) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHolidayHandler(dir, repo, plan, nil)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.GET("/holidays/check", h.HandleHolidayCheck)
		v1.GET("/holidays/:year", h.HandleHolidaysForYear)
		v1.PUT("/settings/holiday-country", h.HandleUpdateCountry)
	}
	return r
}

func TestHandleHolidaysForYear(t *testing.T) {
	dir := &fakeDirectory{
		countryCode: "CN",
		byYear: map[int]map[string]string{
			2024: {"2024-01-01": "元旦", "2024-02-10": "春节"},
		},
	}
	router := newHolidayRouter(dir, newMemAlarmRepo(), &fakePlanner{})

	w := performRequest(router, http.MethodGet, "/api/v1/holidays/2024", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /holidays/2024 status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		CountryCode string            `json:"country_code"`
		Year        int               `json:"year"`
		Holidays    map[string]string `json:"holidays"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CountryCode != "CN" || resp.Year != 2024 {
		t.Errorf("response = %+v, want CN/2024", resp)
	}
	if len(resp.Holidays) != 2 {
		t.Errorf("holiday count = %d, want 2", len(resp.Holidays))
	}
	if len(dir.ensuredYears) != 1 || dir.ensuredYears[0] != 2024 {
		t.Errorf("ensured years = %v, want [2024]", dir.ensuredYears)
	}
}

func TestHandleHolidaysForYearSourceFailure(t *testing.T) {
	dir := &fakeDirectory{
		countryCode: "CN",
		ensureErr:   errors.New("upstream down"),
	}
	router := newHolidayRouter(dir, newMemAlarmRepo(), &fakePlanner{})

	w := performRequest(router, http.MethodGet, "/api/v1/holidays/2024", nil)

	if w.Code != http.StatusBadGateway {
		t.Errorf("GET /holidays/2024 status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestHandleHolidaysForYearRejectsBadYear(t *testing.T) {
	router := newHolidayRouter(&fakeDirectory{}, newMemAlarmRepo(), &fakePlanner{})

	w := performRequest(router, http.MethodGet, "/api/v1/holidays/later", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("GET /holidays/later status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleHolidayCheck(t *testing.T) {
	dir := &fakeDirectory{
		countryCode: "CN",
		holidays:    domain.NewHolidaySet("2024-01-01"),
		names:       map[string]string{"2024-01-01": "元旦"},
	}
	router := newHolidayRouter(dir, newMemAlarmRepo(), &fakePlanner{})

	w := performRequest(router, http.MethodGet, "/api/v1/holidays/check?date=2024-01-01", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /holidays/check status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Date      string `json:"date"`
		IsHoliday bool   `json:"is_holiday"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.IsHoliday || resp.Name != "元旦" {
		t.Errorf("check response = %+v, want holiday 元旦", resp)
	}
}

func TestHandleUpdateCountryReschedulesSkipHolidayAlarms(t *testing.T) {
	repo := newMemAlarmRepo()

	skipping := domain.NewAlarm("Work", 7, 0, domain.WeeklyMode(2))
	skipping.SkipHolidays = true
	plain := domain.NewAlarm("Gym", 18, 0, domain.WeeklyMode(3))
	_ = repo.Save(context.Background(), skipping)
	_ = repo.Save(context.Background(), plain)

	dir := &fakeDirectory{countryCode: "CN"}
	plan := &fakePlanner{}
	router := newHolidayRouter(dir, repo, plan)

	w := performRequest(router, http.MethodPut, "/api/v1/settings/holiday-country", map[string]any{
		"country_code": "US",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("PUT holiday-country status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if dir.countryCode != "US" {
		t.Errorf("country code = %s, want US", dir.countryCode)
	}
	if len(plan.rescheduled) != 1 || plan.rescheduled[0] != skipping.ID {
		t.Errorf("rescheduled = %v, want only the holiday-skipping alarm", plan.rescheduled)
	}
}

func TestHandleUpdateCountryRequiresCode(t *testing.T) {
	router := newHolidayRouter(&fakeDirectory{}, newMemAlarmRepo(), &fakePlanner{})

	w := performRequest(router, http.MethodPut, "/api/v1/settings/holiday-country", map[string]any{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("PUT holiday-country status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
