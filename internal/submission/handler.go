package submission

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	editor   *Editor
	exporter *Exporter
}

func NewHandler(editor *Editor, exporter *Exporter) *Handler {
	return &Handler{editor: editor, exporter: exporter}
}

// --------------------------------------------------
// GET /admin/submissions
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	subs, err := h.editor.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch submissions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// --------------------------------------------------
// GET /admin/submissions/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.editor.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load submission"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// --------------------------------------------------
// PUT /admin/submissions/:id
// --------------------------------------------------
func (h *Handler) Save(c *gin.Context) {
	var rec Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// The path wins over whatever id the body carries.
	rec.ID = c.Param("id")

	if err := h.editor.Save(c.Request.Context(), &rec); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		case errors.Is(err, ErrVersionConflict):
			// Edit buffer stays client-side; the admin reloads and retries.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save changes"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "submission updated"})
}

// --------------------------------------------------
// POST /admin/submissions/:id/live
// --------------------------------------------------
func (h *Handler) MarkLive(c *gin.Context) {
	if err := h.editor.MarkLive(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "submission marked as live"})
}

// --------------------------------------------------
// GET /admin/submissions/:id/export
// --------------------------------------------------
func (h *Handler) Export(c *gin.Context) {
	doc, err := h.exporter.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export submission"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
	c.JSON(http.StatusOK, doc)
}
