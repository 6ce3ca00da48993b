package handlers

import (
	"agrotech-backend/internal/auth"
	"agrotech-backend/internal/models"
	"agrotech-backend/pkg/httputil"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// ChatGateway defines the interface expected from the chat gateway.
type ChatGateway interface {
	Reply(ctx context.Context, message string, chatCtx *models.ChatContext, history []models.ChatExchange) string
}

type ChatHandler struct {
	gateway ChatGateway
}

func NewChatHandler(gateway ChatGateway) *ChatHandler {
	return &ChatHandler{gateway: gateway}
}

// HandleChat handles POST /api/chat. Authentication is optional.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	if claims, ok := auth.GetClaimsFromContext(r.Context()); ok {
		log.Printf("[ChatHandler] Message from user %s (%d history entries)", claims.Username, len(req.History))
	}

	reply := models.ChatReply{
		Role:      models.ChatRoleAssistant,
		Content:   h.gateway.Reply(r.Context(), message, req.Context, req.History),
		Timestamp: time.Now().UTC(),
	}
	httputil.RespondJSON(w, http.StatusOK, reply)
}
