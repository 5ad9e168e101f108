package service

import (
	"strings"

	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// KeywordClassifier is the deterministic baseline classifier: fixed keyword
// sets, first match wins, no ranking.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var bookKeywords = []string{"book", "reserve"}
var priceKeywords = []string{"price", "how much"}

func (KeywordClassifier) Classify(text string) ports.Intent {
	lower := strings.ToLower(text)

	for _, kw := range bookKeywords {
		if strings.Contains(lower, kw) {
			return ports.Intent{Kind: ports.BookIntent}
		}
	}
	for _, kw := range priceKeywords {
		if strings.Contains(lower, kw) {
			return ports.Intent{Kind: ports.PriceQueryIntent}
		}
	}
	return ports.Intent{Kind: ports.FallbackIntent}
}
