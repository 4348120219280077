package main

import (
	"context"
	"encoding/gob"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/movierec/internal/api"
	"github.com/user/movierec/internal/config"
	"github.com/user/movierec/internal/handler"
	"github.com/user/movierec/internal/middleware"
	"github.com/user/movierec/internal/model"
	"github.com/user/movierec/internal/router"
	"github.com/user/movierec/internal/service"
)

func main() {
	// 注册 Session 模型
	gob.Register(model.DisplayPrefs{})

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router.RegisterValidations()
	r := gin.Default()

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 设置 Session 中间件（只存展示偏好）
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 天
		HttpOnly: true,
		Secure:   false, // 关键：非 HTTPS 环境必须为 false
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("movierec", store))

	// 加载模板（使用 multitemplate 解决继承问题）
	r.HTMLRender = router.LoadTemplates("./web/templates")

	// 静态文件
	r.Static("/static", "./web/static")

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.Security())

	// 初始化远端 API 客户端与服务
	client := api.NewClient(cfg.APIBaseURL)
	movies := service.NewMovieService(client, cfg.ImageBaseURL)

	// 初始化 Handler
	h := handler.NewHandler(cfg, movies)

	// 注册路由
	router.RegisterRoutes(r, h)

	// 配置 HTTP 服务器
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second, // 上游接口最长等 25 秒，写超时要留足余量
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s (API: %s)", port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}
