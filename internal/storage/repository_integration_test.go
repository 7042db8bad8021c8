//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/fixdict/internal/quickfix"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "fixdict",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=fixdict sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "fixdict")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	ctx := context.Background()
	repo := NewDictionaryRepository(db)
	d, err := quickfix.Load(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Saving twice must replace, not duplicate.
	for i := 0; i < 2; i++ {
		if err := repo.SaveDictionary(ctx, d, "FIX42.xml"); err != nil {
			t.Fatalf("save #%d: %v", i+1, err)
		}
	}

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"fields", "SELECT COUNT(*) FROM fields WHERE version = $1", 2},
		{"enums", "SELECT COUNT(*) FROM field_enums WHERE version = $1", 1},
		{"messages", "SELECT COUNT(*) FROM messages WHERE version = $1", 1},
		{"components", "SELECT COUNT(*) FROM components WHERE version = $1", 2},
		{"layout items", "SELECT COUNT(*) FROM layout_items WHERE version = $1", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cnt int
			if err := db.QueryRow(tc.query, d.Version()).Scan(&cnt); err != nil {
				t.Fatalf("count: %v", err)
			}
			if cnt != tc.want {
				t.Fatalf("got %d rows, want %d", cnt, tc.want)
			}
		})
	}

	t.Run("catalog", func(t *testing.T) {
		ok, err := repo.HasDictionary(ctx, d.Version())
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
		recs, err := repo.ListIngested(ctx)
		if err != nil || len(recs) != 1 || recs[0].FieldCount != 2 {
			t.Fatalf("list: %+v err=%v", recs, err)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		if err := repo.DeleteDictionary(ctx, d.Version()); err != nil {
			t.Fatalf("delete: %v", err)
		}
		var cnt int
		if err := db.QueryRow("SELECT COUNT(*) FROM layout_items WHERE version = $1", d.Version()).Scan(&cnt); err != nil {
			t.Fatalf("count: %v", err)
		}
		if cnt != 0 {
			t.Fatalf("expected 0 rows after delete, got %d", cnt)
		}
	})
}
