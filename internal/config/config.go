package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // APIサーバーポート（3000）

	BotToken    string // Telegramボットのトークン
	AdminChatID int64  // 管理者チャットID（0なら通知なし）
	SiteURL     string // 公開サイトのベースURL
	ImageDir    string // 画像ファイルのルートディレクトリ

	DBDriver    string // sqlite / postgres
	DatabaseDSN string // sqliteはファイルパス、postgresはDSN

	JWTSecret         string // 管理APIのJWT署名シークレット
	AdminPasswordHash string // 管理者パスワードのbcryptハッシュ
	WebhookSecret     string // 入金webhookの署名シークレット（空なら検証なし）
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "3000"),

		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		SiteURL:  getenv("SITE_URL", "http://127.0.0.1:8080"),
		ImageDir: getenv("IMAGE_DIR", "./images"),

		DBDriver:    getenv("DB_DRIVER", "sqlite"),
		DatabaseDSN: getenv("DATABASE_DSN", "./flexyframe.db"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
	}

	//必須チェック。プレースホルダのままも未設定扱い。
	if cfg.BotToken == "" || cfg.BotToken == "your_token_here" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// DATABASE_URL があれば最優先で使う
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DBDriver = "postgres"
		cfg.DatabaseDSN = dsn
	}

	//管理者チャットIDは無ければ通知を諦めるだけ
	if v := os.Getenv("ADMIN_CHAT_ID"); v != "" && v != "your_admin_id" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("ADMIN_CHAT_ID must be number: %w", err)
		}
		cfg.AdminChatID = id
	}

	return cfg, nil
}

// AdminAPIEnabled は管理APIに必要な設定が揃っているか
func (c Config) AdminAPIEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
