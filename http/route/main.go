package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/http/controller"
	middlewares "github.com/memoria-viva/memorial-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1/memorial")
	{
		apiRoutes.GET("/healthz", ctrl.HealthCheck)

		authRoutes := apiRoutes.Group("/auth")
		{
			authRoutes.GET("/session", middles.AuthMiddleware, ctrl.GetSession)
			authRoutes.POST("/logout", ctrl.Logout)
		}

		memorialRoutes := apiRoutes.Group("/memorials")
		{
			// Creation requires an active session; viewing is public
			memorialRoutes.POST("", middles.AuthMiddleware, ctrl.CreateMemorial)
			memorialRoutes.GET("/:slug", ctrl.GetMemorialBySlug)
			memorialRoutes.GET("/:slug/qrcode", ctrl.GetMemorialQRCode)
			memorialRoutes.GET("/:slug/tributes", ctrl.ListTributes)
			memorialRoutes.POST("/:slug/tributes", ctrl.CreateTribute)
		}
	}
	return r
}
