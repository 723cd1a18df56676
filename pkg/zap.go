package pkg

import (
	"go.uber.org/zap"

	"github.com/SAP-F-2025/quiz-session-service/internal/config"
)

// NewZapLogger builds the logger used by the redis cache.
func NewZapLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	return zcfg.Build()
}
