package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/attendance/check-in", h.CheckIn)
	r.POST("/attendance/check-out", h.CheckOut)
	r.GET("/attendance/summary/:driver_id", h.MonthlySummary)
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckInEndpoint(t *testing.T) {
	driverID := uuid.New()

	repo := new(mockRepo)
	repo.On("UpsertCheckIn", mock.Anything, mock.Anything).Return(nil)

	router := setupRouter(newTestService(repo, new(mockFenceSource), defaultPolicy()))

	w := performJSON(router, http.MethodPost, "/attendance/check-in", gin.H{
		"driver_id":  driverID,
		"login_time": time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Record struct {
				DriverID    uuid.UUID `json:"driver_id"`
				Punctuality string    `json:"punctuality"`
			} `json:"record"`
			FenceMatched bool `json:"fence_matched"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, driverID, resp.Data.Record.DriverID)
	assert.Equal(t, string(PunctualityOnTime), resp.Data.Record.Punctuality)
}

func TestCheckInEndpointRejectsMissingFields(t *testing.T) {
	router := setupRouter(newTestService(new(mockRepo), new(mockFenceSource), defaultPolicy()))

	w := performJSON(router, http.MethodPost, "/attendance/check-in", gin.H{
		"driver_id": uuid.New(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckOutEndpointConflict(t *testing.T) {
	rec := existingRecord(uuid.New())
	logout := rec.LoginTime.Add(8 * time.Hour)
	rec.LogoutTime = &logout
	rec.Completion = CompletionLoggedOut

	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

	router := setupRouter(newTestService(repo, new(mockFenceSource), defaultPolicy()))

	w := performJSON(router, http.MethodPost, "/attendance/check-out", gin.H{
		"attendance_record_id": rec.ID,
		"logout_time":          logout.Add(time.Minute),
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMonthlySummaryEndpoint(t *testing.T) {
	driverID := uuid.New()

	repo := new(mockRepo)
	repo.On("ListForMonth", mock.Anything, driverID, time.March, 2025).
		Return([]AttendanceRecord{makeRecord(PunctualityOnTime, CompletionLoggedOut, "")}, nil)

	router := setupRouter(newTestService(repo, new(mockFenceSource), defaultPolicy()))

	w := performJSON(router, http.MethodGet,
		fmt.Sprintf("/attendance/summary/%s?month=3&year=2025", driverID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attendance_score":100`)
}

func TestMonthlySummaryEndpointValidatesMonth(t *testing.T) {
	router := setupRouter(newTestService(new(mockRepo), new(mockFenceSource), defaultPolicy()))

	w := performJSON(router, http.MethodGet,
		fmt.Sprintf("/attendance/summary/%s?month=13&year=2025", uuid.New()), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
