package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// keywordParam is the query parameter holding the search keyword.
const keywordParam = "q"

type SearchHandler struct {
	BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService, logger utils.Logger) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   NewBaseHandler(logger),
		searchService: searchService,
	}
}

// Search filters the session's selected bank file by keyword
// @Summary Search selected bank file
// @Tags search
// @Produce json
// @Param q query string false "Keyword"
// @Success 200 {object} models.SearchResult
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	keyword := c.Query(keywordParam)
	h.LogRequest(c, "Searching selected bank file", "keyword", keyword)

	result, err := h.searchService.Search(c.Request.Context(), sessionID(c), keyword)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchFile filters a specific bank file by keyword
// @Summary Search bank file
// @Tags search
// @Produce json
// @Param id path string true "Bank file ID"
// @Param q query string false "Keyword"
// @Success 200 {object} models.SearchResult
// @Router /files/{id}/search [get]
func (h *SearchHandler) SearchFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	keyword := c.Query(keywordParam)
	h.LogRequest(c, "Searching bank file", "file_id", id, "keyword", keyword)

	result, err := h.searchService.SearchFile(c.Request.Context(), id, keyword)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
