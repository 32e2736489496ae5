package config

import "os"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート

	GuestUserID string // 匿名セッションに使うユーザーキー（暗黙のグローバルではなく設定値）

	FEURL string // フロントURL（CORSで使う）
	GoEnv string // dev/prod
}

// Loadは環境変数から設定を組み立てる。DB接続はinfra/dbが環境変数を直接読む。
func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		GuestUserID: getenv("GUEST_USER_ID", "guest"),
		FEURL:       getenv("FE_URL", "http://localhost:5173"),
		GoEnv:       getenv("GO_ENV", "dev"),
	}
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
