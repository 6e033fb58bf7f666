package handlers

import (
	_ "github.com/epeers/twrank/docs"
	"github.com/epeers/twrank/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route onto a fresh gin engine
func NewRouter(rankingHandler *RankingHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/", rankingHandler.Health)
	router.GET("/health", rankingHandler.Health)
	router.GET("/top50", rankingHandler.GetTop)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
