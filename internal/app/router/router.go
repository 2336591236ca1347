package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "product_backend/internal/feature/auth/transport/handler"
	scanhandler "product_backend/internal/feature/videoscan/transport/handler"
	"product_backend/internal/platform/http/handler"
	jwtmw "product_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, scan *scanhandler.ScanHandler) *gin.Engine {
	// gin.Default() のRecoveryミドルウェアが実行中の予期しないpanicを
	// 500レスポンスに変換する（プロセスは落とさない）
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// Prometheusメトリクス
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/v1/scan", scan.Scan)
	}

	return r
}
