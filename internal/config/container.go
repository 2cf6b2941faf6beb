package config

import (
	"pdf-book-reader/internal/domain"
	"pdf-book-reader/internal/infra/pdfviewer"
	"pdf-book-reader/internal/repository"
	"pdf-book-reader/internal/service"
	"pdf-book-reader/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	BlobRepository domain.BlobRepository
	Viewer         domain.DocumentViewer
	FileIntake     domain.FileIntake
	Navigator      *service.PageNavigator
	ReaderService  domain.ReaderService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	return NewContainerWith(config, logger.NewLogger(config.GetLogLevel()))
}

// NewContainerWith wires the application around an existing config and logger
func NewContainerWith(config domain.Config, appLogger domain.Logger) *Container {
	blobs := repository.NewMemoryBlobRepository(appLogger)
	viewer := pdfviewer.NewViewer(blobs, config.GetRenderDPI(), appLogger)
	intake := service.NewFileIntakeService(blobs, config.GetMaxFileSize(), appLogger)

	navigator := service.NewPageNavigator(
		viewer,
		service.NewScheduler(),
		config.GetPageTurnPreDelay(),
		config.GetPageTurnPostDelay(),
		appLogger,
	)
	navigator.Subscribe(func(s domain.NavigationState) {
		appLogger.Debug("Navigation changed",
			"page", s.CurrentPage,
			"total_pages", s.TotalPages,
			"transitioning", s.Transitioning,
			"direction", s.Direction.String(),
		)
	})

	reader := service.NewReaderService(intake, blobs, viewer, navigator, config.GetLoadTimeout(), appLogger)

	return &Container{
		Config:         config,
		Logger:         appLogger,
		BlobRepository: blobs,
		Viewer:         viewer,
		FileIntake:     intake,
		Navigator:      navigator,
		ReaderService:  reader,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetReaderService returns the reader session
func (c *Container) GetReaderService() domain.ReaderService {
	return c.ReaderService
}
