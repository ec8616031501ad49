package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/models"
	appErrors "github.com/psb-properties/property-report-api/pkg/errors"
)

type dashboardServiceStub struct {
	summary *dto.DashboardResponse
	err     error
}

func (s *dashboardServiceStub) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func newDashboardRouter(stub *dashboardServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", NewDashboardHandler(stub).Summary)
	return r
}

func TestDashboardSummary(t *testing.T) {
	stub := &dashboardServiceStub{summary: &dto.DashboardResponse{
		TotalReports: 3,
		LatestReport: &models.Report{ID: "rep-3", WeekEnding: "2025-03-28"},
		MonthCosts: dto.MonthCosts{
			Maintenance: decimal.RequireFromString("150.00"),
			Operational: decimal.RequireFromString("75.50"),
		},
	}}
	router := newDashboardRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.Nil(t, env.Error)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total_reports"])
}

func TestDashboardSummaryError(t *testing.T) {
	stub := &dashboardServiceStub{err: appErrors.ErrInternal}
	router := newDashboardRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrInternal.Code, env.Error.Code)
}
