package main

import (
	"log"
	"os"
	"strconv"
	"time"

	portfolio "github.com/Mohamed-Adam-Jemal/Portfolio"
	"github.com/Mohamed-Adam-Jemal/Portfolio/content"
	"github.com/Mohamed-Adam-Jemal/Portfolio/jobs"
	"github.com/Mohamed-Adam-Jemal/Portfolio/models/gemini"
	"github.com/Mohamed-Adam-Jemal/Portfolio/server"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := portfolio.NewConfig()

	if name := os.Getenv("MODEL_NAME"); name != "" {
		cfg.WithModelName(name)
	}
	if secs := envInt("STREAM_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.WithStreamTimeout(time.Duration(secs) * time.Second)
	}

	switch os.Getenv("STORE_TYPE") {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("STORE_TYPE=postgres requires DATABASE_URL")
		}
		cfg.WithPostgresStore(dsn)
	case "", "sqlite":
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			cfg.WithSQLiteStore(path)
		}
	default:
		log.Fatalf("unsupported STORE_TYPE: %s", os.Getenv("STORE_TYPE"))
	}
	defer cfg.Store.Close()

	siteContent := content.MustLoad()

	model := &gemini.Gemini_Model{
		Model:  cfg.ModelName,
		Config: cfg.Generation,
	}
	assistant := portfolio.Create_Assistant(model, siteContent)

	if days := envInt("CONTACT_RETENTION_DAYS", 0); days > 0 {
		retention := jobs.NewRetentionJob(cfg.Store, days)
		if err := retention.Start(); err != nil {
			log.Fatalf("failed to start retention job: %v", err)
		}
		defer retention.Stop()
	}

	srv := server.New(assistant, cfg.Store, cfg.StreamTimeout)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s", port)
	if err := srv.Router().Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("invalid %s: %q", key, raw)
	}
	return v
}
