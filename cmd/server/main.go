package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kaimahi/ergosurvey/internal/api"
	dbstore "github.com/kaimahi/ergosurvey/internal/db"
	"github.com/kaimahi/ergosurvey/internal/middleware"
	"github.com/kaimahi/ergosurvey/internal/utils"
)

func main() {
	addr := utils.SafeEnv("ERGO_ADDR", ":8080")
	commit := os.Getenv("ERGO_COMMIT")
	buildTime := os.Getenv("ERGO_BUILD_TIME")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "ergosurvey API",
			"records":    store.CountRecords(),
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the survey frontend when a static build is mounted.
	if staticDir := os.Getenv("ERGO_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.WithAuth(mux))))

	log.Printf("ergosurvey server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore selects SQLite persistence when ERGO_SQLITE_PATH is set,
// otherwise an in-memory store. A CSV snapshot from a previous export can be
// loaded on first run via ERGO_SNAPSHOT_CSV.
func openStore() (api.Store, error) {
	path := os.Getenv("ERGO_SQLITE_PATH")
	if path == "" {
		log.Printf("ERGO_SQLITE_PATH not set, using in-memory store")
		store := api.NewMemoryStore()
		if err := loadSnapshotIfNeeded(store, os.Getenv("ERGO_SNAPSHOT_CSV")); err != nil {
			return nil, err
		}
		return store, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(sqliteDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store, err := dbstore.NewStore(sqliteDB)
	if err != nil {
		return nil, err
	}
	if err := loadSnapshotIfNeeded(store, os.Getenv("ERGO_SNAPSHOT_CSV")); err != nil {
		return nil, err
	}
	return store, nil
}
