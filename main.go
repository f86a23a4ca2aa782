// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\main.go
package main

import (
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bukkepapa/inventory-check-v4/config"
	"github.com/bukkepapa/inventory-check-v4/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: .env not loaded: %v", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", "./inventory_check.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	// OCRエンドポイントは環境変数で上書きできる（現場のサーバー切替用）
	if endpoint := os.Getenv("OCR_ENDPOINT"); endpoint != "" {
		cfg.OCREndpoint = endpoint
		if err := config.SaveConfig(cfg); err != nil {
			log.Printf("WARN: Failed to persist OCR endpoint override: %v", err)
		}
	}

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, "./static/index.html")
	})

	SetupRoutes(mux, dbConn)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Printf("Starting server on http://localhost%s", addr)

	openBrowser("http://localhost" + addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
