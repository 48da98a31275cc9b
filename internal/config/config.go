package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定。
// 店舗1台のローカル運用が前提なので、未設定でも起動できる既定値を持つ。
type Config struct {
	Port string // サーバーポート（8080）

	DBPath string // SQLiteファイルのパス

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBPath:    getenv("KASIR_DB_PATH", "kasir.db"),
		JWTSecret: getenv("JWT_SECRET", "dev_secret_change_me"),
		GoEnv:     getenv("GO_ENV", "dev"),
	}

	// prodでは既定シークレットのままの起動を拒否する
	if cfg.GoEnv == "prod" && cfg.JWTSecret == "dev_secret_change_me" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
