package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// ChatService answers free-text guest messages for one property. Booking
// requests are delegated to the allocation engine; the classifier is
// pluggable so a future NLU component can replace the keyword matcher.
type ChatService struct {
	classifier ports.IntentClassifier
	allocation ports.AllocationService
	logger     zerolog.Logger
}

func NewChatService(classifier ports.IntentClassifier, allocation ports.AllocationService, logger zerolog.Logger) *ChatService {
	return &ChatService{classifier: classifier, allocation: allocation, logger: logger}
}

func (s *ChatService) Reply(ctx context.Context, input ports.ChatInput) (string, error) {
	intent := s.classifier.Classify(input.Message)

	switch intent.Kind {
	case ports.BookIntent:
		return s.handleBook(ctx, input)
	case ports.PriceQueryIntent:
		return s.handlePriceQuery(ctx, input.PropertyID)
	default:
		return "I can help you book a room or check prices. Try \"book a deluxe room\" or \"how much is a suite?\".", nil
	}
}

func (s *ChatService) handleBook(ctx context.Context, input ports.ChatInput) (string, error) {
	items, err := s.allocation.GetAvailability(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRoomTypes) {
			return "This property has no rooms listed yet.", nil
		}
		return "", err
	}

	// First room-type label appearing as a substring of the message wins.
	// Items arrive in deterministic (id ascending) order.
	label := matchLabel(input.Message, items)
	if label == "" {
		return "Which room type would you like? Available: " + labelList(items) + ".", nil
	}

	guestName := input.GuestName
	if guestName == "" {
		guestName = "Chat Guest"
	}

	// Placeholder stay: tomorrow, one night. Known simplification until the
	// classifier extracts dates.
	checkIn := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(15 * time.Hour)
	result, err := s.allocation.Book(ctx, ports.BookInput{
		PropertyID:    input.PropertyID,
		RoomTypeLabel: label,
		GuestName:     guestName,
		GuestContact:  input.GuestContact,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 1),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoAvailability) {
			return fmt.Sprintf("Sorry, the %s is fully booked.", label), nil
		}
		return "", err
	}

	s.logger.Info().
		Str("property_id", input.PropertyID).
		Str("reference", result.Reference).
		Msg("booking created via chat")
	return fmt.Sprintf("Done! Your %s is booked for tomorrow night. Reference: %s.", result.RoomTypeLabel, result.Reference), nil
}

func (s *ChatService) handlePriceQuery(ctx context.Context, propertyID string) (string, error) {
	items, err := s.allocation.GetAvailability(ctx, propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRoomTypes) {
			return "This property has no rooms listed yet.", nil
		}
		return "", err
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s: %.2f per night (%d left)", item.Label, item.Price, item.Available))
	}
	return "Our rates: " + strings.Join(parts, "; ") + ".", nil
}

func matchLabel(message string, items []ports.AvailabilityItem) string {
	lower := strings.ToLower(message)
	for _, item := range items {
		if strings.Contains(lower, strings.ToLower(item.Label)) {
			return item.Label
		}
	}
	return ""
}

func labelList(items []ports.AvailabilityItem) string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return strings.Join(labels, ", ")
}
