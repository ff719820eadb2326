package yelp

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scoring weights and acceptance floor. The total is a ranking signal, not a
// probability; bonuses can push it above 1.0.
const (
	nameWeight     = 0.6
	addressWeight  = 0.3
	phoneBonus     = 0.2
	exactNameBonus = 0.1
	minMatchScore  = 0.5
)

// Match is the accepted best candidate for a store.
type Match struct {
	BusinessID  string  `json:"businessId"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	URL         string  `json:"url"`
	MatchScore  float64 `json:"matchScore"`
}

// Similarity is a normalized, case-insensitive edit-distance similarity:
// 1 - distance/max(len). Two empty strings are identical by convention.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// BestMatch scores every candidate against the store's name, address and
// phone, and returns the highest scorer at or above the acceptance floor.
// Ties keep the first candidate encountered. Nil means nothing matched.
func BestMatch(storeName, storeAddress, storePhone string, candidates []Business) *Match {
	var best *Business
	bestScore := 0.0

	storeDigits := digitsOnly(storePhone)

	for i := range candidates {
		candidate := &candidates[i]
		score := Similarity(storeName, candidate.Name) * nameWeight

		candidateAddress := strings.Join(candidate.Location.DisplayAddress, " ")
		score += Similarity(storeAddress, candidateAddress) * addressWeight

		// The bonus keys on the raw strings being present; equal digit-stripped
		// forms count even when neither contains a digit.
		if storePhone != "" && candidate.Phone != "" && storeDigits == digitsOnly(candidate.Phone) {
			score += phoneBonus
		}
		if strings.EqualFold(storeName, candidate.Name) {
			score += exactNameBonus
		}

		if score > bestScore && score >= minMatchScore {
			bestScore = score
			best = candidate
		}
	}

	if best == nil || bestScore < minMatchScore {
		return nil
	}

	return &Match{
		BusinessID:  best.ID,
		Rating:      best.Rating,
		ReviewCount: best.ReviewCount,
		URL:         best.URL,
		MatchScore:  bestScore,
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
