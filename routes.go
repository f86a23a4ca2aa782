// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\routes.go
package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/bukkepapa/inventory-check-v4/allocation"
	"github.com/bukkepapa/inventory-check-v4/automation"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/check/run", allocation.RunCheckHandler(dbConn))
	mux.HandleFunc("/api/check/history", allocation.GetCheckHistoryHandler(dbConn))
	mux.HandleFunc("/api/check/history/", allocation.GetCheckRunResultsHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/automation/portal/download", automation.DownloadPortalOrderHandler())
}
