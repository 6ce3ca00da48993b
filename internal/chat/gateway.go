package chat

import (
	"agrotech-backend/internal/metrics"
	"agrotech-backend/internal/models"
	"context"
	"errors"
	"log"
	"time"
)

const gatewayName = "chat"

// MaxHistory is the number of prior exchanges forwarded to the model.
const MaxHistory = 10

// Gateway answers with the live model when one is configured and with a
// canned reply otherwise. Model failures never reach callers.
type Gateway struct {
	live        Provider // nil when no API key is configured
	callTimeout time.Duration
}

// NewGateway selects the provider strategy once. live may be nil.
// callTimeout bounds each completion including any rate limiter wait; zero
// leaves only the request deadline.
func NewGateway(live Provider, callTimeout time.Duration) *Gateway {
	if live == nil {
		log.Println("WARN [ChatGateway]: OpenAI API key not configured, serving canned replies.")
	} else {
		log.Printf("[ChatGateway] Using live provider %s", live.Name())
	}
	return &Gateway{live: live, callTimeout: callTimeout}
}

// Configured reports whether a live provider is in use.
func (g *Gateway) Configured() bool {
	return g.live != nil
}

// Reply returns one assistant reply to message. History entries with roles
// other than user or assistant are dropped and only the last MaxHistory kept.
func (g *Gateway) Reply(ctx context.Context, message string, chatCtx *models.ChatContext, history []models.ChatExchange) string {
	if g.live == nil {
		metrics.ObserveFallback(gatewayName, metrics.ReasonUnconfigured)
		return CannedReply(message)
	}

	messages := BuildMessages(message, chatCtx, history)
	liveCtx := ctx
	if g.callTimeout > 0 {
		var cancel context.CancelFunc
		liveCtx, cancel = context.WithTimeout(ctx, g.callTimeout)
		defer cancel()
	}
	content, err := g.live.Complete(liveCtx, messages)
	metrics.ObserveUpstream(g.live.Name(), err)
	if err != nil {
		if errors.Is(err, ErrEmptyCompletion) {
			log.Printf("WARN [ChatGateway] Reply: %s returned an empty completion, using canned reply", g.live.Name())
			metrics.ObserveFallback(gatewayName, metrics.ReasonEmptyResponse)
		} else {
			log.Printf("ERROR [ChatGateway] Reply: %s failed, using canned reply: %v", g.live.Name(), err)
			metrics.ObserveFallback(gatewayName, metrics.ReasonUpstreamError)
		}
		return CannedReply(message)
	}
	return content
}

// BuildMessages orders the conversation as system prompt, filtered history, then the new message.
func BuildMessages(message string, chatCtx *models.ChatContext, history []models.ChatExchange) []Message {
	var kept []Message
	for _, h := range history {
		if h.Role != models.ChatRoleUser && h.Role != models.ChatRoleAssistant {
			continue
		}
		kept = append(kept, Message{Role: h.Role, Content: h.Content})
	}
	if len(kept) > MaxHistory {
		kept = kept[len(kept)-MaxHistory:]
	}

	messages := make([]Message, 0, len(kept)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: SystemPrompt(chatCtx)})
	messages = append(messages, kept...)
	messages = append(messages, Message{Role: RoleUser, Content: message})
	return messages
}

// AnalyzePlanting asks for a planting window recommendation for crop.
func (g *Gateway) AnalyzePlanting(ctx context.Context, crop string, forecast []models.ForecastDay) string {
	return g.Reply(ctx, PlantingPrompt(crop, forecast), nil, nil)
}

// AnalyzeMarketTrend asks for a short reading of a commodity's price history.
func (g *Gateway) AnalyzeMarketTrend(ctx context.Context, commodity string, history []models.PricePoint) string {
	return g.Reply(ctx, MarketTrendPrompt(commodity, history), nil, nil)
}
