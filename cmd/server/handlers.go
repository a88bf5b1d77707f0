// Package main provides the college chat server entry point.
package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collegechat/collegechat-go/internal/engine"
	apperrors "github.com/collegechat/collegechat-go/internal/errors"
	"github.com/collegechat/collegechat-go/internal/knowledge"
	"github.com/collegechat/collegechat-go/internal/logger"
	"github.com/collegechat/collegechat-go/internal/metrics"
	"github.com/collegechat/collegechat-go/internal/ratelimit"
	"github.com/collegechat/collegechat-go/internal/sentiment"
	"github.com/collegechat/collegechat-go/internal/sentry"
	"github.com/collegechat/collegechat-go/internal/session"
	"github.com/collegechat/collegechat-go/internal/storage"
)

// server bundles the request-path dependencies behind the HTTP handlers.
type server struct {
	log      *logger.Logger
	db       *storage.DB
	kb       *knowledge.Base
	sessions *session.Manager
	limiter  *ratelimit.PerKeyLimiter
	analyzer *sentiment.Analyzer
	metrics  *metrics.Metrics
}

// chatRequest is the POST /api/chat payload.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// chatResponse is the POST /api/chat reply.
type chatResponse struct {
	Reply      string  `json:"reply"`
	Intent     string  `json:"intent"`
	Stage      string  `json:"stage"`
	Sentiment  float64 `json:"sentiment"`
	SessionID  string  `json:"session_id"`
	ContextLen int     `json:"context_len"`
}

// handleChat runs one conversation turn.
func (s *server) handleChat(c *gin.Context) {
	start := time.Now()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.RecordChat("invalid", time.Since(start))
		s.metrics.RecordHTTPError("/api/chat", "400")
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidInput.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.metrics.RecordChat("invalid", time.Since(start))
		s.metrics.RecordHTTPError("/api/chat", "400")
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmptyMessage.Error()})
		return
	}

	sid := s.sessions.Acquire(req.SessionID)

	if !s.limiter.Allow(sid) {
		s.metrics.RecordChat("rate_limited", time.Since(start))
		s.metrics.RecordHTTPError("/api/chat", "429")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      apperrors.ErrRateLimitExceeded.Error(),
			"session_id": sid,
		})
		return
	}

	var (
		reply      engine.Reply
		contextLen int
	)
	run := func(e *engine.Engine) {
		reply = e.Respond(message)
		contextLen = e.ContextLen()
	}
	if !s.sessions.Do(sid, run) {
		// Session evicted between Acquire and Do; start fresh.
		sid = s.sessions.Acquire("")
		if !s.sessions.Do(sid, run) {
			s.metrics.RecordChat("error", time.Since(start))
			s.metrics.RecordHTTPError("/api/chat", "500")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
	}

	score := s.analyzer.Score(message)
	text := sentiment.TonePrefix(score) + reply.Text

	s.metrics.RecordResolution(reply.Intent, string(reply.Stage))
	s.metrics.RecordChat("success", time.Since(start))

	if err := s.db.InsertLog(storage.ChatLog{
		Timestamp: time.Now(),
		SessionID: sid,
		UserMsg:   message,
		BotReply:  text,
		Intent:    reply.Intent,
		Stage:     string(reply.Stage),
		Sentiment: score,
	}); err != nil {
		// Logging failures never fail the chat turn.
		s.log.WithError(err).WithSession(sid).Error("Failed to store chat log")
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
	}

	c.JSON(http.StatusOK, chatResponse{
		Reply:      text,
		Intent:     reply.Intent,
		Stage:      string(reply.Stage),
		Sentiment:  score,
		SessionID:  sid,
		ContextLen: contextLen,
	})
}

// handleAnalytics serves the admin usage summary.
func (s *server) handleAnalytics(c *gin.Context) {
	recent, err := s.db.RecentLogs(50)
	if err != nil {
		s.log.WithError(err).Error("Failed to load recent logs")
		s.metrics.RecordHTTPError("/admin/analytics", "500")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}

	avg, err := s.db.AverageSentiment()
	if err != nil {
		s.log.WithError(err).Error("Failed to compute average sentiment")
		s.metrics.RecordHTTPError("/admin/analytics", "500")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}

	top, err := s.db.TopIntents(10)
	if err != nil {
		s.log.WithError(err).Error("Failed to compute top intents")
		s.metrics.RecordHTTPError("/admin/analytics", "500")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recent":        recent,
		"avg_sentiment": avg,
		"top_intents":   top,
	})
}

// handleReady reports whether the service can answer chat traffic.
func (s *server) handleReady(c *gin.Context) {
	if err := s.db.Conn().PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"knowledge": gin.H{
			"programs": len(s.kb.ProgramNames()),
			"faculty":  len(s.kb.Faculty()),
			"events":   len(s.kb.UpcomingEvents()),
		},
		"sessions": s.sessions.Count(),
	})
}
