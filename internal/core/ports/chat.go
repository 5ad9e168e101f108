package ports

import "context"

// IntentKind classifies a free-text chat message.
type IntentKind string

const (
	BookIntent       IntentKind = "book"
	PriceQueryIntent IntentKind = "price_query"
	FallbackIntent   IntentKind = "fallback"
)

// Intent is the result of classifying a chat message.
type Intent struct {
	Kind IntentKind
}

// IntentClassifier maps free text to an intent. Pluggable so a future NLU
// component can replace the keyword matcher without touching the allocation
// engine.
type IntentClassifier interface {
	Classify(text string) Intent
}

// ChatInput is one inbound chat message scoped to a property.
type ChatInput struct {
	PropertyID   string
	Message      string
	GuestName    string
	GuestContact string
}

// ChatService turns a chat message into a reply, possibly creating a booking
// as a side effect.
type ChatService interface {
	Reply(ctx context.Context, input ChatInput) (string, error)
}
