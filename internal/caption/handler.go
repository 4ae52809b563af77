package caption

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// --------------------------------------------------
// POST /caption
// --------------------------------------------------
//
// Advisory only: a failure here is a dismissible notice, the user
// keeps typing names and descriptions by hand.
func (h *Handler) Analyze(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		Category    string `json:"category"`
		Language    string `json:"language"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}

	result, err := h.client.Caption(
		c.Request.Context(),
		req.ImageBase64,
		req.Category,
		req.Language,
	)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       "image analysis unavailable, continue manually",
			"recoverable": true,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
