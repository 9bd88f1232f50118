package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Run(router *gin.Engine, port string) {
	if err := router.Run(":" + port); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
