package models

import "time"

// Chat roles accepted in a history.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatExchange is one prior turn of the conversation.
type ChatExchange struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ChatWeather is the weather snapshot a client may attach to a chat request.
type ChatWeather struct {
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
	Humidity  float64 `json:"humidity"`
}

// ChatMarketPrice is one market quote a client may attach to a chat request.
type ChatMarketPrice struct {
	Commodity string  `json:"commodity"`
	Price     float64 `json:"price"`
	Variation float64 `json:"variation"`
}

// ChatContext is a free-form hint bundle; every field is optional.
type ChatContext struct {
	FarmName     string            `json:"farmName,omitempty"`
	FarmLocation string            `json:"farmLocation,omitempty"`
	ActiveCrops  []string          `json:"activeCrops,omitempty"`
	Weather      *ChatWeather      `json:"weather,omitempty"`
	MarketPrices []ChatMarketPrice `json:"marketPrices,omitempty"`
}

// ChatRequest defines the body of POST /api/chat.
type ChatRequest struct {
	Message string         `json:"message"`
	Context *ChatContext   `json:"context,omitempty"`
	History []ChatExchange `json:"history,omitempty"`
}

// ChatReply is the assistant turn returned by POST /api/chat.
type ChatReply struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
