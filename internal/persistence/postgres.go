package persistence

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/config"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx, so that
// repositories can run either directly against the pool or inside a
// transaction started by WithTx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool using the resolved DSN.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	dsn, err := ResolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.AcquireTimeoutSec > 0 {
		poolCfg.ConnConfig.ConnectTimeout = time.Duration(cfg.AcquireTimeoutSec) * time.Second
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}

	if !cfg.DisableSSL {
		poolCfg.ConnConfig.TLSConfig = loadTLSConfig(cfg.SSLDir, poolCfg.ConnConfig.Host, logger)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres", zap.String("database", poolCfg.ConnConfig.Database))
	return &Postgres{Pool: pool}, nil
}

// ResolveDSN turns the configured connection settings into a pgx DSN.
// DATABASE_URL takes precedence; a cloud-proxy URL of the form
// postgres://user:pass@/cloudsql/<instance>/<db> is rewritten to connect
// over the proxy's unix socket.
func ResolveDSN(cfg config.PostgresConfig) (string, error) {
	if cfg.URL != "" {
		return resolveURL(cfg.URL)
	}
	if cfg.Host == "" || cfg.Name == "" {
		return "", errors.New("postgres: neither DATABASE_URL nor discrete DB_* settings provided")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Name,
	), nil
}

func resolveURL(raw string) (string, error) {
	const socketPrefix = "/cloudsql/"

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("postgres: invalid DATABASE_URL: %w", err)
	}

	if u.Host != "" || !strings.HasPrefix(u.Path, socketPrefix) {
		return raw, nil
	}

	// postgres://user:pass@/cloudsql/project:region:instance/dbname
	rest := strings.TrimPrefix(u.Path, socketPrefix)
	slash := strings.LastIndex(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", fmt.Errorf("postgres: malformed proxy socket URL %q", raw)
	}
	instance, dbname := rest[:slash], rest[slash+1:]

	password, _ := u.User.Password()
	return fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=disable",
		socketPrefix+instance,
		dbname,
		u.User.Username(),
		password,
	), nil
}

// loadTLSConfig reads root CA, client cert and client key from fixed
// paths under dir. Missing files degrade to a relaxed TLS mode with a
// warning, matching the deployment targets that terminate TLS upstream.
func loadTLSConfig(dir, serverName string, logger *zap.Logger) *tls.Config {
	rootPath := filepath.Join(dir, "root.crt")
	certPath := filepath.Join(dir, "client.crt")
	keyPath := filepath.Join(dir, "client.key")

	rootPEM, err := os.ReadFile(rootPath)
	if err != nil {
		logger.Warn("ssl material not found, falling back to relaxed TLS", zap.String("dir", dir), zap.Error(err))
		return &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(rootPEM) {
		logger.Warn("unable to parse root CA, falling back to relaxed TLS", zap.String("path", rootPath))
		return &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	tlsCfg := &tls.Config{RootCAs: roots, ServerName: serverName, MinVersion: tls.VersionTLS12}

	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		logger.Warn("client certificate not loaded", zap.Error(err))
		return tlsCfg
	}
	tlsCfg.Certificates = []tls.Certificate{cert}
	return tlsCfg
}

// WithTx runs fn inside BEGIN/COMMIT, rolling back and returning the
// original error when fn fails. The connection is released in all paths.
func (p *Postgres) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Ping verifies connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}
