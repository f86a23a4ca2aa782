// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\automation\handler.go
package automation

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bukkepapa/inventory-check-v4/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadPortalOrderHandler は受注ポータルから最新の受注ファイルを
// 自動受信します。取り込んだファイルはそのままチェック画面から
// アップロードできるよう保存先パスを返します。
func DownloadPortalOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg := config.GetConfig()

		if cfg.PortalURL == "" || cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "受注ポータルのURL・IDまたはパスワードが設定されていません。設定画面で入力してください。", http.StatusBadRequest)
			return
		}

		saveDir := cfg.OrderFolderPath
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("受注保存先設定がないため、一時フォルダを使用します: %s", saveDir)
		}

		log.Println("Starting order portal automation...")
		filePath, err := DownloadOrderFile(cfg.PortalURL, cfg.PortalUserID, cfg.PortalPassword, saveDir)

		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "自動受信エラー: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "未受信のデータはありませんでした。",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":   "success",
			"message":  "ダウンロード完了: " + filepath.Base(filePath),
			"filePath": filePath,
		})
	}
}
