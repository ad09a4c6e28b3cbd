package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dicri-gt/sii-dicri-api/pkg/config"
)

// DB es el handle de conexión a PostgreSQL que se inyecta desde el
// composition root. Inicializa el pool de forma perezosa en el primer uso;
// si la inicialización falla no queda cacheado un pool roto: el siguiente
// llamado vuelve a intentar conectar.
type DB struct {
	cfg config.DBConfig

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewDB construye el handle sin abrir conexiones todavía.
func NewDB(cfg config.DBConfig) *DB {
	return &DB{cfg: cfg}
}

// Pool devuelve el pool, creándolo si aún no existe.
func (d *DB) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		return d.pool, nil
	}
	pool, err := newPool(ctx, d.cfg)
	if err != nil {
		// d.pool queda nil a propósito para permitir el reintento.
		return nil, err
	}
	d.pool = pool
	return pool, nil
}

// Ping verifica la conexión (usado por /health y por las migraciones).
func (d *DB) Ping(ctx context.Context) error {
	pool, err := d.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close libera el pool si fue creado.
func (d *DB) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}

func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Codec NUMERIC -> shopspring/decimal en todas las conexiones del pool
	// (peso de los indicios).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
