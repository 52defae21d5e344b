package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/engine"
	"sledgehammer-sudoku/internal/puzzles"
	"sledgehammer-sudoku/pkg/config"
	"sledgehammer-sudoku/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires the solver core to HTTP, re-pointed at
// engine.Solve instead of the teacher's per-cell human/dp solvers.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.GET("/daily", dailyHandler)
		api.POST("/solve", solveHandler)
		api.POST("/solve/whatif", solveWhatIfHandler)
		api.POST("/validate", validateHandler)
		api.POST("/session/start", sessionStartHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

// PuzzleRequest accepts either an explicit (magnitude, values) pair or
// the teacher's own wire format: a single digit string, '0' for empty,
// generalized here to any side length (internal/puzzles.StringLoader).
type PuzzleRequest struct {
	Magnitude int    `json:"magnitude"`
	Values    []int  `json:"values"`
	Puzzle    string `json:"puzzle"`
}

func (req PuzzleRequest) loader() (puzzles.Loader, error) {
	if req.Puzzle != "" {
		return puzzles.NewStringLoader(req.Puzzle), nil
	}
	if req.Magnitude <= 0 || len(req.Values) == 0 {
		return nil, &core.LoaderError{Reason: "request must set either puzzle, or both magnitude and values"}
	}
	return valuesLoader{m: req.Magnitude, values: req.Values}, nil
}

// valuesLoader adapts an already-parsed (magnitude, values) pair — the
// JSON body case — to the Loader interface so every request path goes
// through the same construction code.
type valuesLoader struct {
	m      int
	values []int
}

func (l valuesLoader) Load() (int, []int, error) {
	return l.m, l.values, nil
}

func buildPuzzle(req PuzzleRequest) (*core.Puzzle, error) {
	ldr, err := req.loader()
	if err != nil {
		return nil, err
	}
	m, values, err := ldr.Load()
	if err != nil {
		return nil, err
	}
	return core.NewPuzzle(m, values)
}

// EventView is the JSON-safe projection of a core.Event.
type EventView struct {
	ID           int         `json:"id"`
	Kind         string      `json:"kind"`
	Description  string      `json:"description"`
	Falsified    []int       `json:"falsified,omitempty"`
	AssertedTrue int         `json:"asserted_true,omitempty"`
	Children     []EventView `json:"children,omitempty"`
}

func viewEvent(e *core.Event) EventView {
	v := EventView{
		ID:           e.ID,
		Kind:         e.Kind.String(),
		Description:  e.Description,
		Falsified:    e.Falsified,
		AssertedTrue: e.AssertedTrue,
	}
	for _, child := range e.Children {
		v.Children = append(v.Children, viewEvent(child))
	}
	return v
}

func solveResponse(result *engine.Result) gin.H {
	return gin.H{
		"id":     result.ID.String(),
		"solved": result.Solved,
		"grid":   result.Puzzle.Grid(),
		"events": viewEvent(result.Root),
	}
}

func runSolve(c *gin.Context, whatIf bool) {
	var req PuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := buildPuzzle(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := engine.Options{
		WhatIf:         whatIf,
		WhatIfMaxDepth: cfg.WhatIfMaxDepth,
	}
	result, err := engine.Solve(p, opts)
	if err != nil {
		log.Printf("ERROR [solve]: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "solve failed"})
		return
	}

	c.JSON(http.StatusOK, solveResponse(result))
}

func solveHandler(c *gin.Context)       { runSolve(c, false) }
func solveWhatIfHandler(c *gin.Context) { runSolve(c, true) }

func validateHandler(c *gin.Context) {
	var req PuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := buildPuzzle(req); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type SessionStartRequest struct {
	PuzzleRequest
	DeviceID string `json:"device_id" binding:"required"`
}

func sessionStartHandler(c *gin.Context) {
	var req SessionStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := buildPuzzle(req.PuzzleRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.Solve(p, engine.Options{})
	if err != nil {
		log.Printf("ERROR [sessionStart]: solve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "solve failed"})
		return
	}

	now := time.Now()
	session := SessionToken{
		DeviceID:  req.DeviceID,
		SolveID:   result.ID.String(),
		StartedAt: now,
		ExpiresAt: now.Add(constants.SessionTokenExpiry),
	}

	token, err := createToken(cfg.JWTSecret, session)
	if err != nil {
		log.Printf("ERROR [sessionStart]: failed to create token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"solve_id":   result.ID.String(),
		"solved":     result.Solved,
		"started_at": now.Format(time.RFC3339),
	})
}

// dailyHandler hands out a deterministic puzzle-of-the-day, picked by
// puzzles.DailyPuzzle and solved through engine.Solve.
func dailyHandler(c *gin.Context) {
	ldr, variant := puzzles.DailyPuzzle(time.Now())
	m, values, err := ldr.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p, err := core.NewPuzzle(m, values)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.Solve(p, engine.Options{})
	if err != nil {
		log.Printf("ERROR [daily]: solve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "solve failed"})
		return
	}

	resp := solveResponse(result)
	resp["variant"] = variant.String()
	resp["givens"] = values
	c.JSON(http.StatusOK, resp)
}
