package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codecraft/backend/internal/config"
	"github.com/codecraft/backend/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  status      適用済み / 未適用のマイグレーションを表示
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`)
	os.Exit(1)
}

type migrator struct {
	pool   *pgxpool.Pool
	dir    string
	logger *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal(logging.Setup(), "load config failed", zap.Error(err))
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format).Named("migrate")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal(logger, "connect failed", zap.Error(err))
	}
	defer pool.Close()

	m := &migrator{pool: pool, dir: findMigrationDir(), logger: logger}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		m.runIncremental(ctx)
	case "status":
		m.printStatus(ctx)
	case "reset":
		m.runDropAll(ctx)
		m.runConsolidated(ctx)
	case "fresh":
		m.runDropAll(ctx)
		m.runIncremental(ctx)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *migrator) upFiles() []string {
	files, err := collectUpFiles(m.dir)
	if err != nil {
		logging.Fatal(m.logger, "read migrations dir failed", zap.String("dir", m.dir), zap.Error(err))
	}
	return files
}

func (m *migrator) ensureSchemaMigrations(ctx context.Context) {
	if _, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal(m.logger, "create schema_migrations failed", zap.Error(err))
	}
}

func (m *migrator) applied(ctx context.Context, name string) bool {
	var exists bool
	_ = m.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	return exists
}

// ---------------------------------------------------------------------------
// (default) 差分マイグレーション
// ---------------------------------------------------------------------------
func (m *migrator) runIncremental(ctx context.Context) {
	m.ensureSchemaMigrations(ctx)

	count := 0
	for i, filename := range m.upFiles() {
		name := strings.TrimSuffix(filename, ".up.sql")
		if m.applied(ctx, name) {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(m.dir, filename))
		if err != nil {
			logging.Fatal(m.logger, "read migration failed", zap.String("migration", name), zap.Error(err))
		}
		if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
			logging.Fatal(m.logger, "migration failed", zap.String("migration", name), zap.Error(err))
		}
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal(m.logger, "record migration failed", zap.String("migration", name), zap.Error(err))
		}
		count++
		m.logger.Info("migration completed", zap.Int("number", i+1), zap.String("migration", name))
	}

	if count == 0 {
		m.logger.Info("all migrations already applied")
	} else {
		m.logger.Info("migrations completed", zap.Int("count", count))
	}
}

func (m *migrator) printStatus(ctx context.Context) {
	m.ensureSchemaMigrations(ctx)
	for _, filename := range m.upFiles() {
		name := strings.TrimSuffix(filename, ".up.sql")
		mark := " "
		if m.applied(ctx, name) {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, name)
	}
}

// ---------------------------------------------------------------------------
// 全テーブル DROP
// ---------------------------------------------------------------------------
func (m *migrator) runDropAll(ctx context.Context) {
	m.logger.Info("dropping all tables")
	m.execFile(ctx, "000_drop_all.sql")
	m.logger.Info("all tables dropped")
}

// ---------------------------------------------------------------------------
// 集約スキーマで再作成
// ---------------------------------------------------------------------------
func (m *migrator) runConsolidated(ctx context.Context) {
	m.logger.Info("applying consolidated schema")
	m.execFile(ctx, "000_consolidated.sql")

	// 全マイグレーションを適用済みとして記録
	m.ensureSchemaMigrations(ctx)
	files := m.upFiles()
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		_, _ = m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	}
	m.logger.Info("consolidated schema applied", zap.Int("migrations_marked", len(files)))
}

func (m *migrator) execFile(ctx context.Context, filename string) {
	sql, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		logging.Fatal(m.logger, "read sql file failed", zap.String("file", filename), zap.Error(err))
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal(m.logger, "exec sql file failed", zap.String("file", filename), zap.Error(err))
	}
}
