package notify

import (
	"context"
	"fmt"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/notify/handler"
	"github.com/flexprice/billing-engine/internal/notify/publisher"
)

// Service orchestrates outbound event delivery: services publish onto the
// notify topic, and a background handler forwards each event to the
// relevant app's Svix application.
type Service struct {
	config    *config.Configuration
	publisher publisher.Publisher
	handler   handler.Handler
	logger    *logger.Logger
}

func NewService(
	cfg *config.Configuration,
	publisher publisher.Publisher,
	h handler.Handler,
	l *logger.Logger,
) *Service {
	return &Service{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		logger:    l,
	}
}

func (s *Service) Start(ctx context.Context) error {
	if !s.config.Notify.Enabled {
		s.logger.Info("notify service disabled")
		return nil
	}

	s.logger.Debug("starting notify service")
	if err := s.handler.HandleEvents(ctx); err != nil {
		return fmt.Errorf("failed to start notify handler: %w", err)
	}

	s.logger.Info("notify service started successfully")
	return nil
}

func (s *Service) Stop() error {
	s.logger.Debug("stopping notify service")

	if err := s.handler.Close(); err != nil {
		s.logger.Errorw("failed to close notify handler", "error", err)
		return fmt.Errorf("failed to close notify handler: %w", err)
	}

	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close notify publisher", "error", err)
		return fmt.Errorf("failed to close notify publisher: %w", err)
	}

	s.logger.Info("notify service stopped successfully")
	return nil
}
