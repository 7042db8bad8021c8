//go:build integration
// +build integration

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/fixdict/config"
	"github.com/guttosm/fixdict/internal/app"
	"github.com/guttosm/fixdict/internal/domain/models"
)

func startPG(t *testing.T) (host string, port nat.Port, terminate func()) {
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
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=fixdict sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	terminate = func() { _ = c.Terminate(context.Background()) }
	return h, mp, terminate
}

func specDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"FIX44-mini.xml", "FIX50SP2-header.xml"} {
		b, err := os.ReadFile(filepath.Join("..", "quickfix", "testdata", name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestAPI_E2E_WithStorage(t *testing.T) {
	host, port, term := startPG(t)
	defer term()

	config.AppConfig = config.Config{
		Server:  config.ServerConfig{Port: "8080"},
		Spec:    config.SpecConfig{Dir: specDir(t), Pattern: "*.xml"},
		Storage: config.StorageConfig{Enabled: true},
		Postgres: config.PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			User:     "postgres",
			Password: "postgres",
			DBName:   "fixdict",
			SSLMode:  "disable",
		},
	}

	router, cleanup, err := app.InitializeApp(context.Background())
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	if w := get("/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d body=%s", w.Code, w.Body.String())
	}

	w := get("/api/v1/ingestions")
	if w.Code != http.StatusOK {
		t.Fatalf("ingestions status=%d body=%s", w.Code, w.Body.String())
	}
	var recs []models.IngestionRecord
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 catalog rows, got %+v", recs)
	}
	for _, r := range recs {
		if r.FieldCount == 0 || r.SourceFile == "" {
			t.Fatalf("incomplete catalog row: %+v", r)
		}
	}

	w = get("/api/v1/dictionaries/FIX.4.4/messages/D")
	if w.Code != http.StatusOK {
		t.Fatalf("message status=%d body=%s", w.Code, w.Body.String())
	}
	var msg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil || msg.Name != "NewOrderSingle" {
		t.Fatalf("unexpected message body %s (%v)", w.Body.String(), err)
	}
}
