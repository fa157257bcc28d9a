package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kishorkishor/storefront-backend/internal/app/service"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

const refreshTimeout = 2 * time.Minute

// CatalogScheduler refreshes the catalog snapshot on a cron schedule.
type CatalogScheduler struct {
	cron    *cron.Cron
	catalog service.CatalogService
	spec    string
}

func NewCatalogScheduler(catalog service.CatalogService, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:    cron.New(),
		catalog: catalog,
		spec:    spec,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := s.catalog.Refresh(ctx); err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed", nil)
	})
	if err != nil {
		logger.Error("Failed to register catalog refresh job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Stop stops the cron loop.
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
}
