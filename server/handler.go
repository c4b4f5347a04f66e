// Package server exposes the question-answering engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ragtutor/rag/engine"
	"ragtutor/rag/vector"
	"ragtutor/session"
)

const queryTimeout = 60 * time.Second

// Answerer is the part of the engine the handlers need.
type Answerer interface {
	Answer(ctx context.Context, query string) (engine.Answer, error)
}

// Handler holds the answering engine and the session store.
type Handler struct {
	answerer Answerer
	sessions session.Store
}

// NewHandler creates a Handler. sessions may be nil if chat is unused.
func NewHandler(answerer Answerer, sessions session.Store) *Handler {
	return &Handler{answerer: answerer, sessions: sessions}
}

// QueryRequest is a one-shot question.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// ChatRequest is a question within a session. A missing session_id starts a
// new session.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// RAGResponse is the answer payload shared by query and chat.
type RAGResponse struct {
	Text      string   `json:"text"`
	Emotion   string   `json:"emotion"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id,omitempty"`
}

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Query answers a standalone question.
func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	ans, err := h.answerer.Answer(ctx, req.Query)
	if err != nil {
		h.writeAnswerError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, RAGResponse{
		Text:    ans.Text,
		Emotion: string(engine.TagEmotion(ans.Text)),
		Sources: sourcesOrEmpty(ans.Sources),
	})
}

// Chat answers a question and records both turns in the session transcript.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	id := req.SessionID
	if id == "" {
		id = fmt.Sprintf("sess_%d", time.Now().UnixNano())
	}

	ans, err := h.answerer.Answer(ctx, req.Message)
	if err != nil {
		h.writeAnswerError(c, ctx, err)
		return
	}

	if h.sessions != nil {
		sess, _, err := h.sessions.Get(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		sess.ID = id
		now := time.Now()
		sess.Turns = append(sess.Turns,
			session.Turn{Role: "user", Content: req.Message, At: now},
			session.Turn{Role: "assistant", Content: ans.Text, At: now},
		)
		if err := h.sessions.Put(ctx, id, sess); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
	}

	// Chat responses carry no source attribution.
	c.JSON(http.StatusOK, RAGResponse{
		Text:      ans.Text,
		Emotion:   string(engine.TagEmotion(ans.Text)),
		Sources:   []string{},
		SessionID: id,
	})
}

// writeAnswerError maps engine failures to HTTP statuses. A missing index is
// a service-level condition, not a client error.
func (h *Handler) writeAnswerError(c *gin.Context, ctx context.Context, err error) {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, ErrorResponse{
			Error: "query timed out, try again or simplify the question",
		})
	case errors.Is(err, vector.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, vector.ErrIndexNotFound):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "no index available, run the build-index command first",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func sourcesOrEmpty(sources []string) []string {
	if sources == nil {
		return []string{}
	}
	return sources
}
