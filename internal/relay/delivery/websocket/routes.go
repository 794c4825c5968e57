package websocket

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the relay stream. Middleware runs before the upgrade.
func RegisterRoutes(r gin.IRoutes, h Handler, mws ...gin.HandlerFunc) {
	r.GET("/ws/stream", append(mws, h.Stream)...)
}
