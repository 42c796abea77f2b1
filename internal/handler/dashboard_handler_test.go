package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/middleware"
	"github.com/vocatech/room-allocation-api/internal/models"
)

type fakeDashboardSrv struct {
	overview dto.DashboardOverviewResponse
	cacheHit bool
	err      error
}

func (f *fakeDashboardSrv) Overview(context.Context) (dto.DashboardOverviewResponse, bool, error) {
	return f.overview, f.cacheHit, f.err
}

func TestDashboardHandlerOverview_ReportsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		overview: dto.DashboardOverviewResponse{Periods: []dto.PeriodOccupancy{
			{Period: models.PeriodMorning, Occupied: 4, Available: 17},
		}},
		cacheHit: true,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	middleware.WithResponseMeta()(c)

	handler.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	periods, ok := envelope.Data["periods"].([]interface{})
	require.True(t, ok)
	require.Len(t, periods, 1)
	first, ok := periods[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "MORNING", first["period"])
	assert.Equal(t, float64(4), first["occupied"])
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestDashboardHandlerOverview_CacheMiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{overview: dto.DashboardOverviewResponse{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	middleware.WithResponseMeta()(c)

	handler.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}
