package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/relaypair/relay/internal/ai"
	"github.com/relaypair/relay/internal/api"
	"github.com/relaypair/relay/internal/db"
	"github.com/relaypair/relay/internal/middleware"
	"github.com/relaypair/relay/internal/services"
	"github.com/relaypair/relay/internal/utils"
)

var (
	buildCommit = "dev"
	buildTime   = "unknown"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded .env file")
	}

	addr := utils.SafeEnv("RELAY_ADDR", ":8080")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	var aligner services.Aligner
	if client, err := ai.NewClientFromEnv(); err != nil {
		log.Printf("alignment disabled: %v", err)
	} else {
		aligner = client
	}

	mux := http.NewServeMux()
	api.NewRouter(store, aligner).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"commit":     buildCommit,
			"build_time": buildTime,
		})
	})

	handler := middleware.NoStore(middleware.CORS(middleware.WithAuth(mux)))

	log.Printf("relay server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func openStore() (api.Store, error) {
	path := os.Getenv("RELAY_SQLITE_PATH")
	if path == "" {
		log.Printf("RELAY_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.RunMigrations(conn, os.Getenv("RELAY_MIGRATIONS_DIR")); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Printf("using sqlite store at %s", path)
	return db.NewStore(conn)
}
