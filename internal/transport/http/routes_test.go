package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sledgehammer-sudoku/pkg/config"
)

const solvedGrid = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		JWTSecret:      "test-secret-key-that-is-long-enough-ok",
		WhatIfMaxDepth: 2,
	}
	RegisterRoutes(r, cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["version"])
}

func TestDailyHandler(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "GET", "/api/daily", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["solved"])
	assert.NotNil(t, resp["grid"])
	assert.NotEmpty(t, resp["variant"])
	givens, ok := resp["givens"].([]interface{})
	require.True(t, ok, "expected givens array in response")
	assert.Len(t, givens, 81)
}

func TestSolveHandlerByPuzzleString(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/solve", PuzzleRequest{Puzzle: solvedGrid})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["solved"])
	assert.NotEmpty(t, resp["id"])
}

func TestSolveHandlerByMagnitudeAndValues(t *testing.T) {
	router := setupRouter()

	values := make([]int, 81)
	for i, c := range solvedGrid {
		values[i] = int(c - '0')
	}
	// blank two cells sharing row 0 and box 0: neither resolves from its
	// own row alone (both candidates 5 and 3 remain open in that row),
	// so the solver needs the column cascade to pin each one down.
	values[0] = 0
	values[1] = 0

	w := doJSON(t, router, "POST", "/api/solve", PuzzleRequest{Magnitude: 3, Values: values})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["solved"])
}

func TestSolveHandlerRejectsMalformedRequest(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/solve", PuzzleRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveWhatIfHandler(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/solve/whatif", PuzzleRequest{Puzzle: solvedGrid})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["solved"])
}

func TestValidateHandlerAcceptsWellFormedPuzzle(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/validate", PuzzleRequest{Puzzle: solvedGrid})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["valid"])
}

func TestValidateHandlerRejectsDuplicateGivens(t *testing.T) {
	router := setupRouter()

	values := make([]int, 81)
	for i, c := range solvedGrid {
		values[i] = int(c - '0')
	}
	values[1] = values[0] // force a duplicate in row 0

	w := doJSON(t, router, "POST", "/api/validate", PuzzleRequest{Magnitude: 3, Values: values})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["valid"])
	assert.NotEmpty(t, resp["reason"])
}

func TestSessionStartHandlerIssuesVerifiableToken(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/session/start", SessionStartRequest{
		PuzzleRequest: PuzzleRequest{Puzzle: solvedGrid},
		DeviceID:      "device-123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, ok := resp["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	session, err := verifyToken("test-secret-key-that-is-long-enough-ok", token)
	require.NoError(t, err)
	assert.Equal(t, "device-123", session.DeviceID)
	assert.Equal(t, resp["solve_id"], session.SolveID)
}

func TestSessionStartHandlerRequiresDeviceID(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, "POST", "/api/session/start", map[string]string{"puzzle": solvedGrid})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
