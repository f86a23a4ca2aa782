// C:\Users\PC_User\Desktop\Antigravity\在庫引当チェックツール_vr4\loader\loader.go
package loader

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
)

// InitDatabase はデータベーススキーマを適用します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

// applySchema は schema.sql ファイルを読み込んで実行します。
func applySchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	_, err = db.Exec(string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
