package handlers

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockBankFileService struct {
	mock.Mock
}

func (m *MockBankFileService) Upload(ctx context.Context, req *services.UploadBankFileRequest) (*services.BankFileResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.BankFileResponse)
	return resp, args.Error(1)
}

func (m *MockBankFileService) List(ctx context.Context, req *services.ListBankFilesRequest) (*services.BankFileListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.BankFileListResponse)
	return resp, args.Error(1)
}

func (m *MockBankFileService) Get(ctx context.Context, id string) (*services.BankFileResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*services.BankFileResponse)
	return resp, args.Error(1)
}

func (m *MockBankFileService) Rename(ctx context.Context, id string, req *services.RenameBankFileRequest) (*services.BankFileResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*services.BankFileResponse)
	return resp, args.Error(1)
}

func (m *MockBankFileService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBankFileService) Download(ctx context.Context, id string) (*services.DownloadResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*services.DownloadResponse)
	return resp, args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

func (m *MockSessionService) SelectFile(ctx context.Context, sessionID string, fileID string) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID, fileID)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

func (m *MockSessionService) ClearSelection(ctx context.Context, sessionID string) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

func (m *MockSessionService) ForgetFile(ctx context.Context, sessionID string, fileID string) error {
	args := m.Called(ctx, sessionID, fileID)
	return args.Error(0)
}

func (m *MockSessionService) SetTheme(ctx context.Context, sessionID string, theme models.Theme) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID, theme)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

func (m *MockSessionService) ToggleTheme(ctx context.Context, sessionID string) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

func (m *MockSessionService) Reset(ctx context.Context, sessionID string) (*models.SessionState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.SessionState)
	return state, args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, sessionID string, keyword string) (*models.SearchResult, error) {
	args := m.Called(ctx, sessionID, keyword)
	result, _ := args.Get(0).(*models.SearchResult)
	return result, args.Error(1)
}

func (m *MockSearchService) SearchFile(ctx context.Context, fileID string, keyword string) (*models.SearchResult, error) {
	args := m.Called(ctx, fileID, keyword)
	result, _ := args.Get(0).(*models.SearchResult)
	return result, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportMatches(ctx context.Context, req *models.ExportRequest) (*models.ExportFile, error) {
	args := m.Called(ctx, req)
	file, _ := args.Get(0).(*models.ExportFile)
	return file, args.Error(1)
}

type mockServiceManager struct {
	bankFile *MockBankFileService
	session  *MockSessionService
	search   *MockSearchService
	export   *MockExportService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		bankFile: &MockBankFileService{},
		session:  &MockSessionService{},
		search:   &MockSearchService{},
		export:   &MockExportService{},
	}
}

func (m *mockServiceManager) BankFile() services.BankFileService { return m.bankFile }
func (m *mockServiceManager) Session() services.SessionService   { return m.session }
func (m *mockServiceManager) Search() services.SearchService     { return m.search }
func (m *mockServiceManager) Export() services.ExportService     { return m.export }

type stubChecker struct {
	err error
}

func (s stubChecker) Ping(ctx context.Context) error { return s.err }

var errStoreDown = errors.New("connection refused")
