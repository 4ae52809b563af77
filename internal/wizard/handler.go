package wizard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"tavolo/internal/optimize"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions *Sessions
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// --------------------------------------------------
// POST /sessions
// --------------------------------------------------
func (h *Handler) CreateSession(c *gin.Context) {
	id, w := h.sessions.Create()

	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"step":       w.Current(),
		"step_name":  StepNames[w.Current()],
		"steps":      StepNames,
	})
}

// --------------------------------------------------
// DELETE /sessions/:id
// --------------------------------------------------
//
// Discards the session and its draft. Attached files live only in
// the draft, so there is nothing to clean up in object storage.
func (h *Handler) CancelSession(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.sessions.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	h.sessions.Drop(id)
	c.JSON(http.StatusOK, gin.H{"message": "session discarded"})
}

// --------------------------------------------------
// GET /fonts
// --------------------------------------------------
func (h *Handler) Fonts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fonts": PopularFonts})
}

// --------------------------------------------------
// GET /sessions/:id
// --------------------------------------------------
func (h *Handler) GetSession(c *gin.Context) {
	w, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":            w.Current(),
		"step_name":       StepNames[w.Current()],
		"completed_steps": w.CompletedSteps(),
	})
}

// --------------------------------------------------
// POST /sessions/:id/next
// --------------------------------------------------
func (h *Handler) Next(c *gin.Context) {
	w, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	submissionID, err := w.Next(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrIncompleteStep) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Submit failed: session stays on the last step, fully retryable.
		c.JSON(http.StatusBadGateway, gin.H{"error": "submission failed, please try again"})
		return
	}

	if submissionID != "" {
		c.JSON(http.StatusOK, gin.H{
			"submitted":     true,
			"submission_id": submissionID,
			"step":          w.Current(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":      w.Current(),
		"step_name": StepNames[w.Current()],
	})
}

// --------------------------------------------------
// POST /sessions/:id/back
// --------------------------------------------------
func (h *Handler) Back(c *gin.Context) {
	w, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	step := w.Back()
	c.JSON(http.StatusOK, gin.H{
		"step":      step,
		"step_name": StepNames[step],
	})
}

// --------------------------------------------------
// PATCH /sessions/:id/sections/:section
// --------------------------------------------------
func (h *Handler) UpdateSection(c *gin.Context) {
	w, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := w.Update(c.Param("section"), json.RawMessage(body)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "section updated"})
}

// --------------------------------------------------
// POST /sessions/:id/files/:field  (multipart, optional "index")
// --------------------------------------------------
func (h *Handler) AttachFile(c *gin.Context) {
	w, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	index := 0
	if raw := c.PostForm("index"); raw != "" {
		if index, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
			return
		}
	}

	blob := optimize.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	if err := w.AttachFile(c.Param("field"), index, blob); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file attached"})
}
