package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/gin-gonic/gin"
)

type toggleRequest struct {
	Date string `json:"date"`
}

type gratitudeRequest struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

var badRequest = []error{
	wellness.ErrMoodOutOfRange,
	wellness.ErrNegativeScreenTime,
	wellness.ErrScreenTimeExceedsDay,
	wellness.ErrInvalidHours,
	wellness.ErrNegativeCategory,
	wellness.ErrInvalidDate,
	suggest.ErrOutOfDomain,
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tracker.ErrNoEntries):
		status = http.StatusNotFound
	default:
		for _, target := range badRequest {
			if errors.Is(err, target) {
				status = http.StatusBadRequest
				break
			}
		}
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.tr.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) logEntry(c *gin.Context) {
	var in tracker.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := s.tr.LogEntry(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) suggestion(c *gin.Context) {
	sug, latest, err := s.tr.Suggestion()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": sug, "entry": latest})
}

func (s *Server) insight(c *gin.Context) {
	in, err := s.tr.Insight(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (s *Server) habits(c *gin.Context) {
	st := s.tr.Status()
	c.JSON(http.StatusOK, gin.H{
		"days":             s.tr.HabitDays(),
		"streak":           st.Streak,
		"streak_mode":      st.StreakMode,
		"habit_done_today": st.HabitDoneToday,
		"badges":           st.Badges,
	})
}

func (s *Server) toggleHabit(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	res, err := s.tr.ToggleHabit(c.Request.Context(), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listGratitude(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"notes": s.tr.Gratitude(limit)})
}

func (s *Server) addGratitude(c *gin.Context) {
	var req gratitudeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	note, ok, err := s.tr.AddGratitude(c.Request.Context(), req.Date, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"added": false})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": true, "note": note})
}

func (s *Server) animation(c *gin.Context) {
	a, ok := s.tr.Animation(c.Request.Context())
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json", a.Data)
}
