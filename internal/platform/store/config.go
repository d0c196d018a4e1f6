package store

import (
	"time"

	"sellerbot/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig
	NATS   NATSConfig
	RDS    RedisConfig
}

// PGConfig configures postgres connectivity, tracing and migrations
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	LogSQL   bool
	Slow     time.Duration
	Migrate  bool

	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the single-node SQL backend; Path ":memory:" is supported
type SQLiteConfig struct {
	Enabled bool
	Path    string
	LogSQL  bool
	Slow    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// NATSConfig configures nats connectivity
type NATSConfig struct {
	Enabled bool
	URL     string
	Name    string
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads SERVICE_{PGSQL,SQLITE,CLICKHOUSE,REDIS,NATS}_ keys under root.
// A backend is enabled when its URL/path/addr is set
func ConfigFromEnv(root config.Conf, app string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")
	rds := root.Prefix("SERVICE_REDIS_")
	nc := root.Prefix("SERVICE_NATS_")

	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:        pg.Has("URL"),
			URL:            pg.MayString("URL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			Slow:           pg.MayDuration("SLOW", 500*time.Millisecond),
			Migrate:        pg.MayBool("MIGRATE", true),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		SQLite: SQLiteConfig{
			Enabled: lite.Has("PATH"),
			Path:    lite.MayString("PATH", ""),
			LogSQL:  lite.MayBool("LOG_SQL", false),
			Slow:    lite.MayDuration("SLOW", 200*time.Millisecond),
		},
		CH: CHConfig{
			Enabled: chc.Has("URL"),
			URL:     chc.MayString("URL", ""),
		},
		RDS: RedisConfig{
			Enabled:  rds.Has("ADDR"),
			Addr:     rds.MayString("ADDR", ""),
			Password: rds.MayString("PASSWORD", ""),
			DB:       rds.MayInt("DB", 0),
		},
		NATS: NATSConfig{
			Enabled: nc.Has("URL"),
			URL:     nc.MayString("URL", ""),
			Name:    app,
		},
	}
}

// RequireSQL enables sqlite at path when no SQL backend is configured
func (c Config) RequireSQL(path string) Config {
	if !c.PG.Enabled && !c.SQLite.Enabled {
		c.SQLite.Enabled = true
		c.SQLite.Path = path
	}
	return c
}
