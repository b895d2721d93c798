package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	validator      *validator.Validator
}

func NewSessionHandler(
	sessionService services.SessionService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		validator:      validator,
	}
}

// GetSession returns the caller's selection and theme
// @Summary Get session state
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionState
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	state, err := h.sessionService.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// ResetSession drops the caller's stored selection and theme
// @Summary Reset session state
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionState
// @Router /session [delete]
func (h *SessionHandler) ResetSession(c *gin.Context) {
	h.LogRequest(c, "Resetting session")

	state, err := h.sessionService.Reset(c.Request.Context(), sessionID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) SelectFile(c *gin.Context) {
	var req services.SelectFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Selecting bank file", "file_id", req.FileID)

	state, err := h.sessionService.SelectFile(c.Request.Context(), sessionID(c), req.FileID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) ClearSelection(c *gin.Context) {
	state, err := h.sessionService.ClearSelection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) SetTheme(c *gin.Context) {
	var req services.SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	state, err := h.sessionService.SetTheme(c.Request.Context(), sessionID(c), models.Theme(req.Theme))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	state, err := h.sessionService.ToggleTheme(c.Request.Context(), sessionID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
