package server

import (
	"time"

	"connectn/engine"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func NewRouter(store *Store, hub *Hub, defaults engine.Settings) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// WebSocket for live updates
	r.GET("/ws", hub.HandleWS)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	games := r.Group("/games")
	games.POST("", CreateGameHandler(store, defaults))
	games.GET("/:id", GetGameHandler(store))
	games.DELETE("/:id", DeleteGameHandler(store))
	games.GET("/:id/legal-moves", LegalMovesHandler(store))
	games.GET("/:id/hints", HintsHandler(store))
	games.POST("/:id/moves", MoveHandler(store, hub))
	games.POST("/:id/ai-move", AIMoveHandler(store, hub))
	games.POST("/:id/undo", UndoHandler(store, hub))
	games.PUT("/:id/depth", DepthHandler(store, hub))

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().Msgf("%s %s %d in %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
