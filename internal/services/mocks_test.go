package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/cache"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockBankFileRepository is a mock implementation of BankFileRepository
type MockBankFileRepository struct {
	mock.Mock
}

func (m *MockBankFileRepository) Create(ctx context.Context, file *models.BankFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockBankFileRepository) GetByID(ctx context.Context, id string) (*models.BankFile, error) {
	args := m.Called(ctx, id)
	file, _ := args.Get(0).(*models.BankFile)
	return file, args.Error(1)
}

func (m *MockBankFileRepository) List(ctx context.Context, filters repositories.BankFileFilters) ([]*models.BankFile, int64, error) {
	args := m.Called(ctx, filters)
	files, _ := args.Get(0).([]*models.BankFile)
	return files, args.Get(1).(int64), args.Error(2)
}

func (m *MockBankFileRepository) UpdateName(ctx context.Context, id string, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockBankFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBankFileRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	bankFiles *MockBankFileRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{bankFiles: &MockBankFileRepository{}}
}

func (m *MockRepository) BankFile() repositories.BankFileRepository { return m.bankFiles }
func (m *MockRepository) Migrate(ctx context.Context) error         { return nil }
func (m *MockRepository) Ping(ctx context.Context) error            { return nil }
func (m *MockRepository) Close() error                              { return nil }

// MockCacheService is a mock implementation of CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// memoryCache is a JSON round-tripping in-memory CacheService
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		items: make(map[string][]byte),
		ttls:  make(map[string]time.Duration),
	}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleBank = `模式名称:"驾照科目一"
全局.quize[0] = 自定义字符串("红灯亮时应当怎样")
全局.quize[1] = 自定义字符串("停车等待")
全局.quize[2] = 自定义字符串("加速通过")
全局.quize[3] = 自定义字符串("鸣笛通过")
全局.quize[4] = 自定义字符串("掉头")
全局.quize[5] = 1
全局.quize[0] = 自定义字符串("绿灯亮时应当怎样")
全局.quize[1] = 自定义字符串("停车")
全局.quize[2] = 自定义字符串("通行")
全局.quize[3] = 自定义字符串("倒车")
全局.quize[4] = 自定义字符串("掉头")
全局.quize[5] = 2
全局.quize[0] = 自定义字符串("Which LIGHT means stop")
全局.quize[1] = 自定义字符串("red")
全局.quize[2] = 自定义字符串("green")
全局.quize[3] = 自定义字符串("blue")
全局.quize[4] = 自定义字符串("white")
全局.quize[0] = 自定义字符串("黄灯亮时应当怎样")
全局.quize[1] = 自定义字符串("加速")
全局.quize[2] = 自定义字符串("减速")
全局.quize[3] = 自定义字符串("停车")
全局.quize[4] = 自定义字符串("倒车")
全局.quize[5] = 2
`

func sampleFile() *models.BankFile {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return &models.BankFile{
		ID:           "file-1",
		Name:         "驾照科目一",
		OriginalName: "bank.txt",
		Content:      sampleBank,
		Size:         int64(len(sampleBank)),
		UploadedAt:   now,
		UpdatedAt:    now,
	}
}
