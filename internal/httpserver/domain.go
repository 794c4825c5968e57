package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	conversationHTTP "ai-receptionist/internal/conversation/delivery/http"
	relayWS "ai-receptionist/internal/relay/delivery/websocket"
)

// setupConversationDomain registers the REST surface of the conversation pipeline.
//
// Pattern to follow when adding a new domain:
//  1. Build the UseCase in cmd/api and pass it through Config
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api, h, mws...)
func (srv HTTPServer) setupConversationDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := conversationHTTP.New(srv.l, srv.conversationUC)

	// Registers /api/v1/conversation/...
	conversationHTTP.RegisterRoutes(api, h, srv.middleware.RateLimit(), srv.middleware.InternalKey())

	srv.l.Infof(ctx, "Conversation domain registered")
	return nil
}

// setupRelayDomain registers the telephony websocket at /ws/stream.
func (srv HTTPServer) setupRelayDomain(ctx context.Context) error {
	relayWS.RegisterRoutes(srv.gin, srv.stream, srv.middleware.RateLimit())

	srv.l.Infof(ctx, "Relay stream registered at GET /ws/stream")
	return nil
}
