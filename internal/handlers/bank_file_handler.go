package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// uploadField is the multipart form field holding the bank file.
const uploadField = "file"

type BankFileHandler struct {
	BaseHandler
	bankFileService services.BankFileService
	sessionService  services.SessionService
	exportService   services.ExportService
	maxUploadBytes  int64
}

func NewBankFileHandler(
	bankFileService services.BankFileService,
	sessionService services.SessionService,
	exportService services.ExportService,
	maxUploadBytes int64,
	logger utils.Logger,
) *BankFileHandler {
	return &BankFileHandler{
		BaseHandler:     NewBaseHandler(logger),
		bankFileService: bankFileService,
		sessionService:  sessionService,
		exportService:   exportService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// UploadBankFile stores a bank file and selects it for the caller's session
// @Summary Upload bank file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question bank text file"
// @Success 201 {object} services.BankFileResponse
// @Failure 400 {object} ErrorResponse
// @Router /files [post]
func (h *BankFileHandler) UploadBankFile(c *gin.Context) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid upload",
			Details: "multipart field \"" + uploadField + "\" is required",
		})
		return
	}

	fileName := filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	h.LogRequest(c, "Uploading bank file", "file_name", fileName, "size", header.Size)

	src, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open upload", err)
		return
	}
	defer src.Close()

	reader := io.Reader(src)
	if h.maxUploadBytes > 0 {
		// One extra byte lets the size check see an oversized file.
		reader = io.LimitReader(src, h.maxUploadBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	file, err := h.bankFileService.Upload(c.Request.Context(), &services.UploadBankFileRequest{
		FileName: fileName,
		Content:  content,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if sid := sessionID(c); sid != "" {
		if _, err := h.sessionService.SelectFile(c.Request.Context(), sid, file.ID); err != nil {
			h.LogWarn(c, "Failed to select uploaded bank file", "file_id", file.ID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, file)
}

// ListBankFiles lists uploaded bank files without their content
// @Summary List bank files
// @Tags files
// @Produce json
// @Param name query string false "Name filter"
// @Success 200 {object} services.BankFileListResponse
// @Router /files [get]
func (h *BankFileHandler) ListBankFiles(c *gin.Context) {
	h.LogRequest(c, "Listing bank files")

	var req services.ListBankFilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	files, err := h.bankFileService.List(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}

func (h *BankFileHandler) GetBankFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	file, err := h.bankFileService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

// RenameBankFile changes the display name of a bank file
// @Summary Rename bank file
// @Tags files
// @Accept json
// @Produce json
// @Param id path string true "Bank file ID"
// @Param body body services.RenameBankFileRequest true "New name"
// @Success 200 {object} services.BankFileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /files/{id} [put]
func (h *BankFileHandler) RenameBankFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.RenameBankFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Renaming bank file", "file_id", id)

	file, err := h.bankFileService.Rename(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

// DeleteBankFile removes a bank file and clears it from the caller's session
// @Summary Delete bank file
// @Tags files
// @Param id path string true "Bank file ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /files/{id} [delete]
func (h *BankFileHandler) DeleteBankFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting bank file", "file_id", id)

	if err := h.bankFileService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if sid := sessionID(c); sid != "" {
		if err := h.sessionService.ForgetFile(c.Request.Context(), sid, id); err != nil {
			h.LogWarn(c, "Failed to clear deleted bank file from session", "file_id", id, "error", err)
		}
	}

	c.Status(http.StatusNoContent)
}

// DownloadBankFile serves the stored text as an attachment
// @Summary Download bank file
// @Tags files
// @Produce plain
// @Param id path string true "Bank file ID"
// @Router /files/{id}/download [get]
func (h *BankFileHandler) DownloadBankFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	download, err := h.bankFileService.Download(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	setAttachment(c, download.FileName)
	c.Data(http.StatusOK, download.ContentType, download.Content)
}

// ExportBankFile renders the keyword matches of a bank file as csv or xlsx
// @Summary Export matches
// @Tags files
// @Param id path string true "Bank file ID"
// @Param q query string false "Keyword"
// @Param format query string false "csv or xlsx" default(csv)
// @Router /files/{id}/export [get]
func (h *BankFileHandler) ExportBankFile(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	format := models.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(models.ExportCSV))))
	h.LogRequest(c, "Exporting bank file", "file_id", id, "format", format)

	export, err := h.exportService.ExportMatches(c.Request.Context(), &models.ExportRequest{
		FileID:  id,
		Keyword: c.Query("q"),
		Format:  format,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	setAttachment(c, export.FileName)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

func setAttachment(c *gin.Context, fileName string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": fileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
}
