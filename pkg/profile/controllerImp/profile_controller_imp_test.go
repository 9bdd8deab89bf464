package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisight/database"
	"agrisight/pkg/middleware"
	"agrisight/pkg/profile/repositoryImp"
	"agrisight/pkg/profile/serviceImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	ctrl := New(serviceImp.NewProfileService(repositoryImp.New(db)), nil)

	e := echo.New()
	e.Use(middleware.Identity(""))
	e.PUT("/profile", ctrl.Put, middleware.RequireUser())
	e.GET("/profile", ctrl.Get, middleware.RequireUser())
	return e
}

func call(e *echo.Echo, method, body, uid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.Header.Set(middleware.UserHeader, uid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProfile_PutGet(t *testing.T) {
	e := newServer(t)

	assert.Equal(t, http.StatusNotFound, call(e, http.MethodGet, "", "u1").Code)

	rec := call(e, http.MethodPut, `{"farmer_type":"livestock","location":"Rift Valley","livestock_count":30}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(e, http.MethodGet, "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "livestock", got["farmer_type"])
	assert.Equal(t, "u1", got["user_id"])
	assert.Equal(t, float64(30), got["livestock_count"])

	// other users see nothing
	assert.Equal(t, http.StatusNotFound, call(e, http.MethodGet, "", "u2").Code)
}

func TestProfile_Rejects(t *testing.T) {
	e := newServer(t)
	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodGet, "", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPut, `{"farmer_type":"fisher"}`, "u1").Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPut, `{"farmer_type":`, "u1").Code)
}
