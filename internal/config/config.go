package config

import (
	"fmt"
	"os"
	"strings"
)

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	Port         string
	SiteName     string
	APIBaseURL   string // 远端电影 API 地址
	ImageBaseURL string // TMDB 图片源前缀，用于补全 poster_path
}

// Load 加载配置
func Load() *Config {
	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		AppSecret:    appSecret,
		Port:         getEnv("PORT", "5006"),
		SiteName:     getEnv("SITE_NAME", "Movie Recommender"),
		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "https://movie-rec-466x.onrender.com"), "/"),
		ImageBaseURL: getEnv("TMDB_IMG_BASE", "https://image.tmdb.org/t/p/w500"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
