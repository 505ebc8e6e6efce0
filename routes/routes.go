package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"room-reservation/controllers"
	"room-reservation/middleware"
)

// SetupRouter wires the room endpoints. Mutating routes require apiKey when
// it is non-empty.
func SetupRouter(
	rc *controllers.RoomController,
	origins []string,
	apiKey string,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			// static segments are registered before /:id
			rooms.GET("/available", rc.GetAvailableRooms)
			rooms.GET("/options", rc.GetRoomOptions)

			rooms.GET("/:id", rc.GetRoom)
			rooms.GET("/:id/reservations", rc.GetRoomReservations)

			admin := rooms.Group("", middleware.RequireAPIKey(apiKey))
			admin.POST("", rc.CreateRoom)
			admin.PUT("/:id", rc.UpdateRoom)
			admin.DELETE("/:id", rc.DeleteRoom)
		}
	}

	return r
}
