package leads

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "leadrouting_backend/internal/http"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"
	"leadrouting_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleMountsLeadRoutesOnProtectedGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AppBaseURL:    "https://app.example.com",
		PhoneRegion:   "GY",
		AgencyProfile: config.DefaultAgencyProfile(),
	}
	m := NewModule(cfg, nil, validator.New(), logger.Discard())
	assert.Equal(t, "leads", m.Name())

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: v1, Protected: v1.Group("")})

	body := `{
	  "inquiry": {"customerName": "Amina", "message": "Is this still available?", "inquiryType": "information", "preferredContact": "email"},
	  "property": {"title": "Garden villa", "price": 150000, "priceType": "rent", "location": "Kilimani", "bedrooms": 2, "bathrooms": 1}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/preview", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "GYD 150,000/month")
}
