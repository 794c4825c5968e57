package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Extra middleware (auth, rate limiting) is applied to every route.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mws ...gin.HandlerFunc) {
	conv := rg.Group("/conversation", mws...)
	{
		conv.POST("/session/create", h.CreateSession)
		conv.GET("/session/:id", h.GetSession)
		conv.DELETE("/session/:id", h.EndSession)
		conv.POST("/process", h.Process)
		conv.POST("/transcribe", h.Transcribe)
		conv.POST("/synthesize", h.Synthesize)
	}
}
