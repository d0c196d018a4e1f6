// Package modkit provides module wiring and core deps
package modkit

import (
	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps holds core dependencies passed to modules.
// Every backend is optional; modules nil check what they need
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	SQL     repokit.TxRunner
	Dialect store.Dialect
	CH      store.Clickhouse
	Redis   redis.UniversalClient
	Bus     store.Bus
}

// DepsFrom copies the opened backends of s into Deps
func DepsFrom(log logger.Logger, cfg config.Conf, s *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if s == nil {
		return d
	}
	d.SQL = s.SQL
	d.Dialect = s.Dialect
	d.CH = s.CH
	d.Redis = s.Redis
	d.Bus = s.Bus
	return d
}
