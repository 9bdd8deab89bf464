package controllerImp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisight/database"
	"agrisight/entities"
	"agrisight/pkg/ai"
	insightRepoImp "agrisight/pkg/insight/repositoryImp"
	"agrisight/pkg/insight/serviceImp"
	"agrisight/pkg/middleware"
	profileRepoImp "agrisight/pkg/profile/repositoryImp"
	"agrisight/pkg/prompt"
	soilRepoImp "agrisight/pkg/soil/repositoryImp"

	"gorm.io/gorm"
)

type server struct {
	e  *echo.Echo
	db *gorm.DB
}

func newServer(t *testing.T, llm ai.Client) server {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "insight.db"))
	require.NoError(t, err)
	ctrl := New(
		serviceImp.NewInsightService(llm, prompt.Options{Temperature: 0.7}, nil),
		insightRepoImp.New(db),
		profileRepoImp.New(db),
		soilRepoImp.New(db),
		nil,
	)
	e := echo.New()
	e.Use(middleware.Identity(""))
	e.POST("/analyze-crop-insights", ctrl.Analyze)
	e.GET("/risk-level", ctrl.RiskLevel)
	e.GET("/insights/history", ctrl.History, middleware.RequireUser())
	return server{e: e, db: db}
}

func (s server) do(method, target, body, uid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.Header.Set(middleware.UserHeader, uid)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_RateLimitedSingleCall(t *testing.T) {
	var hits atomic.Int32
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":"slow down"}`)
	}))
	defer gw.Close()
	llm, err := ai.NewGateway(gw.URL, "key", "google/gemini-2.5-flash", 5*time.Second, nil)
	require.NoError(t, err)

	rec := newServer(t, llm).do(http.MethodPost, "/analyze-crop-insights", `{"query":"Is my soil ready?"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again later."}`, rec.Body.String())
	assert.Equal(t, int32(1), hits.Load())
}

func TestAnalyze_SuccessShapeAndHistory(t *testing.T) {
	s := newServer(t, ai.NewMock("Risk: 72. You should rotate crops.", nil))

	rec := s.do(http.MethodPost, "/analyze-crop-insights", `{"query":"Rotate?","weatherData":{"rainfall":"12"}}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"analysis":"Risk: 72. You should rotate crops.","riskScore":72,"recommendations":["Risk: 72. You should rotate crops."]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/insights/history", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist []entities.InsightRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist, 1)
	assert.Equal(t, 72, hist[0].RiskScore)
	assert.Equal(t, "high", hist[0].RiskLevel)
	assert.Equal(t, "Rotate?", hist[0].Question)
}

func TestAnalyze_FillsContextFromStore(t *testing.T) {
	llm := ai.NewMock("Looks fine.", nil)
	s := newServer(t, llm)
	require.NoError(t, s.db.Create(&entities.FarmerProfile{UserID: "u1", FarmerType: "crop", CurrentCrop: "maize", Location: "Eldoret"}).Error)
	require.NoError(t, soilRepoImp.New(s.db).Create(&entities.SoilRecord{UserID: "u1", PHLevel: 5.9, NitrogenLevel: 22, MoistureLevel: 31}))

	rec := s.do(http.MethodPost, "/analyze-crop-insights", `{"query":"Next crop?","cropData":{"currentCrop":"sorghum"}}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	text := llm.LastPrompt().Text
	assert.Contains(t, text, "Current Crop: sorghum")
	assert.Contains(t, text, "Location: N/A")
	assert.Contains(t, text, "- pH Level: 5.9")
	assert.Contains(t, text, "- Moisture: 31%")
	assert.Contains(t, text, "- Potassium: N/A ppm")

	// unidentified callers get no fill-in
	s.do(http.MethodPost, "/analyze-crop-insights", `{"query":"Next crop?"}`, "")
	assert.Contains(t, llm.LastPrompt().Text, "Current Crop: N/A")
	assert.Contains(t, llm.LastPrompt().Text, "- pH Level: N/A")
}

func TestAnalyze_BadInput(t *testing.T) {
	llm := ai.NewMock("", nil)
	s := newServer(t, llm)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/analyze-crop-insights", `{"query":""}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/analyze-crop-insights", `{"query":"x","soilData":{"ph":"sour"}}`, "").Code)
	assert.Zero(t, llm.Calls())
}

func TestRiskLevel(t *testing.T) {
	s := newServer(t, ai.NewMock("", nil))
	for score, level := range map[string]string{"29": "low", "30": "medium", "69": "medium", "70": "high"} {
		rec := s.do(http.MethodGet, "/risk-level?score="+score, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, level, out["level"], score)
	}
	for _, bad := range []string{"-1", "101", "abc", ""} {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/risk-level?score="+bad, "", "").Code, bad)
	}
}
