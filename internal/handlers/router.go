package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	bankFileHandler *BankFileHandler
	sessionHandler  *SessionHandler
	searchHandler   *SearchHandler
	checks          map[string]HealthChecker
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	maxUploadBytes int64,
	checks map[string]HealthChecker,
) *HandlerManager {
	return &HandlerManager{
		bankFileHandler: NewBankFileHandler(
			serviceManager.BankFile(),
			serviceManager.Session(),
			serviceManager.Export(),
			maxUploadBytes,
			logger,
		),
		sessionHandler: NewSessionHandler(serviceManager.Session(), validator, logger),
		searchHandler:  NewSearchHandler(serviceManager.Search(), logger),
		checks:         checks,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware())
	{
		// Bank file routes
		files := v1.Group("/files")
		{
			files.POST("", hm.bankFileHandler.UploadBankFile)
			files.GET("", hm.bankFileHandler.ListBankFiles)
			files.GET("/:id", hm.bankFileHandler.GetBankFile)
			files.PUT("/:id", hm.bankFileHandler.RenameBankFile)
			files.DELETE("/:id", hm.bankFileHandler.DeleteBankFile)
			files.GET("/:id/download", hm.bankFileHandler.DownloadBankFile)
			files.GET("/:id/export", hm.bankFileHandler.ExportBankFile)
			files.GET("/:id/search", hm.searchHandler.SearchFile)
		}

		// Session routes
		session := v1.Group("/session")
		{
			session.GET("", hm.sessionHandler.GetSession)
			session.DELETE("", hm.sessionHandler.ResetSession)
			session.PUT("/file", hm.sessionHandler.SelectFile)
			session.DELETE("/file", hm.sessionHandler.ClearSelection)
			session.PUT("/theme", hm.sessionHandler.SetTheme)
			session.POST("/theme/toggle", hm.sessionHandler.ToggleTheme)
		}

		v1.GET("/search", hm.searchHandler.Search)
	}
}

// HealthCheck pings every registered dependency
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(hm.checks))
	for name, check := range hm.checks {
		if err := check.Ping(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	health := "healthy"
	if status != http.StatusOK {
		health = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":       health,
		"service":      "quizbank-service",
		"dependencies": deps,
	})
}
