package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/bankparser"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSession = "sess-1"

func setupRouter(t *testing.T, maxUploadBytes int64, checks map[string]HealthChecker) (*gin.Engine, *mockServiceManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := newMockServiceManager()
	router := gin.New()
	NewHandlerManager(sm, validator.New(), utils.NewDiscardLogger(), maxUploadBytes, checks).SetupRoutes(router)
	return router, sm
}

func doRequest(router *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(SessionHeader, testSession)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, field, fileName, content string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes(), writer.FormDataContentType()
}

func TestSessionMiddleware_IssuesID(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.session.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(models.NewSessionState("x"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(SessionHeader))

	w = doRequest(router, http.MethodGet, "/api/v1/session", nil, "")
	assert.Equal(t, testSession, w.Header().Get(SessionHeader))
	sm.session.AssertCalled(t, "Get", mock.Anything, testSession)
}

func TestUploadBankFile(t *testing.T) {
	router, sm := setupRouter(t, 1<<20, nil)
	content := "模式名称:\"题库\"\n"

	sm.bankFile.On("Upload", mock.Anything, &services.UploadBankFileRequest{
		FileName: "bank.txt",
		Content:  []byte(content),
	}).Return(&services.BankFileResponse{ID: "file-1", Name: "题库"}, nil)
	sm.session.On("SelectFile", mock.Anything, testSession, "file-1").Return(models.NewSessionState(testSession), nil)

	body, contentType := multipartBody(t, "file", "dir/bank.txt", content)
	w := doRequest(router, http.MethodPost, "/api/v1/files", body, contentType)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp services.BankFileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file-1", resp.ID)
	sm.bankFile.AssertExpectations(t)
	sm.session.AssertExpectations(t)
}

func TestUploadBankFile_MissingField(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)

	body, contentType := multipartBody(t, "other", "bank.txt", "x")
	w := doRequest(router, http.MethodPost, "/api/v1/files", body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	sm.bankFile.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadBankFile_ValidationError(t *testing.T) {
	router, sm := setupRouter(t, 4, nil)

	sm.bankFile.On("Upload", mock.Anything, mock.MatchedBy(func(req *services.UploadBankFileRequest) bool {
		// Reads stop one byte past the limit.
		return len(req.Content) == 5
	})).Return(nil, services.NewValidationError("file", "must be at most 4 bytes", 5))

	body, contentType := multipartBody(t, "file", "bank.txt", "0123456789")
	w := doRequest(router, http.MethodPost, "/api/v1/files", body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	sm.session.AssertNotCalled(t, "SelectFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadBankFile_EmptyBankRejected(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("Upload", mock.Anything, mock.Anything).Return(nil, services.NewBusinessRuleError(
		services.RuleNonEmptyBank, "bank file has no content", map[string]interface{}{"file_name": "empty.txt"}))

	body, contentType := multipartBody(t, "file", "empty.txt", "")
	w := doRequest(router, http.MethodPost, "/api/v1/files", body, contentType)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bank file has no content", resp.Message)
	assert.Contains(t, w.Body.String(), `"rule":"non_empty_bank"`)
	sm.session.AssertNotCalled(t, "SelectFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBankFile_NotFound(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("Get", mock.Anything, "missing").Return(nil, services.ErrBankFileNotFound)

	w := doRequest(router, http.MethodGet, "/api/v1/files/missing", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "bank_file_not_found")
}

func TestListBankFiles(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("List", mock.Anything, &services.ListBankFilesRequest{Name: "驾照", Limit: 5}).
		Return(&services.BankFileListResponse{Files: []*services.BankFileResponse{{ID: "file-1"}}, Total: 1}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/files?name=%E9%A9%BE%E7%85%A7&limit=5", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestListBankFiles_DateRange(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("List", mock.Anything, mock.MatchedBy(func(req *services.ListBankFilesRequest) bool {
		return req.DateFrom != nil && req.DateTo != nil &&
			req.DateFrom.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			req.DateTo.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	})).Return(&services.BankFileListResponse{Files: []*services.BankFileResponse{}}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/files?date_from=2025-03-01T00:00:00Z&date_to=2025-03-31T00:00:00Z", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	sm.bankFile.AssertExpectations(t)

	w = doRequest(router, http.MethodGet, "/api/v1/files?date_from=yesterday", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenameBankFile(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("Rename", mock.Anything, "file-1", &services.RenameBankFileRequest{Name: "新名字"}).
		Return(&services.BankFileResponse{ID: "file-1", Name: "新名字"}, nil)

	w := doRequest(router, http.MethodPut, "/api/v1/files/file-1", []byte(`{"name":"新名字"}`), "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "新名字")
}

func TestDeleteBankFile_ClearsSessionSelection(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("Delete", mock.Anything, "file-1").Return(nil)
	sm.session.On("ForgetFile", mock.Anything, testSession, "file-1").Return(nil)

	w := doRequest(router, http.MethodDelete, "/api/v1/files/file-1", nil, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	sm.session.AssertExpectations(t)
}

func TestDownloadBankFile(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.bankFile.On("Download", mock.Anything, "file-1").Return(&services.DownloadResponse{
		FileName:    "题库.txt",
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte("body"),
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/files/file-1/download", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename*=utf-8''"))
}

func TestExportBankFile(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.export.On("ExportMatches", mock.Anything, &models.ExportRequest{
		FileID: "file-1", Keyword: "灯", Format: models.ExportXLSX,
	}).Return(&models.ExportFile{
		FileName:    "bank.xlsx",
		ContentType: models.ExportXLSX.ContentType(),
		Data:        []byte("xlsx"),
		Rows:        1,
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/files/file-1/export?q=%E7%81%AF&format=XLSX", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename=bank.xlsx`, w.Header().Get("Content-Disposition"))
}

func TestExportBankFile_UnsupportedFormat(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.export.On("ExportMatches", mock.Anything, mock.Anything).Return(nil, services.ErrUnsupportedExportFormat)

	w := doRequest(router, http.MethodGet, "/api/v1/files/file-1/export?format=pdf", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	idx := 0
	sm.search.On("Search", mock.Anything, testSession, "灯").Return(&models.SearchResult{
		Status:  models.SearchMatched,
		FileID:  "file-1",
		Keyword: "灯",
		Count:   1,
		Questions: []bankparser.QuestionRecord{{
			Prompt:      "红灯",
			Options:     [bankparser.OptionCount]string{"a", "b", "c", "d"},
			Answer:      "a",
			AnswerIndex: &idx,
		}},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/search?q=%E7%81%AF", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var result models.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.SearchMatched, result.Status)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "a", result.Questions[0].Answer)
}

func TestSearchFile(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.search.On("SearchFile", mock.Anything, "file-1", "").Return(&models.SearchResult{
		Status:    models.SearchNoKeyword,
		FileID:    "file-1",
		Questions: []bankparser.QuestionRecord{},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/files/file-1/search", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"no_keyword"`)
}

func TestSessionThemeRoutes(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	dark := models.NewSessionState(testSession)
	dark.Theme = models.ThemeDark
	sm.session.On("SetTheme", mock.Anything, testSession, models.ThemeDark).Return(dark, nil)
	sm.session.On("ToggleTheme", mock.Anything, testSession).Return(models.NewSessionState(testSession), nil)

	w := doRequest(router, http.MethodPut, "/api/v1/session/theme", []byte(`{"theme":"dark"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"dark"`)

	w = doRequest(router, http.MethodPut, "/api/v1/session/theme", []byte(`{"theme":"sepia"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/session/theme/toggle", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"light"`)

	sm.session.AssertNumberOfCalls(t, "SetTheme", 1)
}

func TestResetSession(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	sm.session.On("Reset", mock.Anything, testSession).Return(models.NewSessionState(testSession), nil)

	w := doRequest(router, http.MethodDelete, "/api/v1/session", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"theme":"light"`)
	sm.session.AssertExpectations(t)
}

func TestSessionSelectFile(t *testing.T) {
	router, sm := setupRouter(t, 0, nil)
	selected := models.NewSessionState(testSession)
	selected.Select("file-1")
	sm.session.On("SelectFile", mock.Anything, testSession, "file-1").Return(selected, nil)
	sm.session.On("ClearSelection", mock.Anything, testSession).Return(models.NewSessionState(testSession), nil)

	w := doRequest(router, http.MethodPut, "/api/v1/session/file", []byte(`{"file_id":"file-1"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current_file_id":"file-1"`)

	w = doRequest(router, http.MethodPut, "/api/v1/session/file", []byte(`{}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/session/file", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "current_file_id")
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t, 0, map[string]HealthChecker{"postgres": stubChecker{}})
	w := doRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)

	router, _ = setupRouter(t, 0, map[string]HealthChecker{"redis": stubChecker{err: errStoreDown}})
	w = doRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
