// Package scheduler запускает cron-задачу ежедневной сводки по вакансиям.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/HRMetriX/couriesr-mules-project/internal/contextkeys"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/internal/core/usecase"
)

// DigestScheduler оборачивает robfig/cron вокруг дайджеста статистики
type DigestScheduler struct {
	cron   *cron.Cron
	digest *usecase.SendStatsDigestUseCase
	spec   string // cron-выражение, например "0 9 * * *"
	logger port.LoggerPort
}

func NewDigestScheduler(digest *usecase.SendStatsDigestUseCase, spec string, logger port.LoggerPort) *DigestScheduler {
	return &DigestScheduler{
		cron:   cron.New(),
		digest: digest,
		spec:   spec,
		logger: logger.WithFields(port.Fields{"component": "digest_scheduler"}),
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *DigestScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runDigest(ctx)
	})
	if err != nil {
		return fmt.Errorf("digest scheduler: cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Cron started", port.Fields{"spec": s.spec})
	return nil
}

// Stop останавливает планировщик, дожидаясь выполняющихся задач
func (s *DigestScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Cron stopped", nil)
}

func (s *DigestScheduler) runDigest(ctx context.Context) {
	s.logger.Info("Digest cycle started", nil)

	digestCtx := contextkeys.ContextWithLogger(ctx, s.logger)
	if err := s.digest.Execute(digestCtx); err != nil {
		s.logger.Error("Digest cycle failed", err, nil)
		return
	}
}
