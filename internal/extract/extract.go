// Package extract turns a free-text event query into structured filters plus
// the residual text to embed. Extraction is total: any input yields a result.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Filters holds the structured constraints pulled out of a query. At most one
// value per key; when several vocabulary terms match the same key, the last
// match in extraction order wins and earlier assignments are overwritten.
type Filters struct {
	IsFree   *bool
	Location string
	Category string
	Date     string // YYYY-MM-DD, derived from relative-date keywords
}

// IsZero reports whether no filter was extracted.
func (f Filters) IsZero() bool {
	return f.IsFree == nil && f.Location == "" && f.Category == "" && f.Date == ""
}

// Categories is the recognized category vocabulary, checked in order.
var Categories = []string{
	"technology",
	"music",
	"business",
	"sports",
	"education",
	"food & drink",
	"gaming",
	"health & wellness",
}

var (
	freeRe       = regexp.MustCompile(`(?i)\bfree\b`)
	paidRe       = regexp.MustCompile(`(?i)\bpaid\b`)
	locationRe   = regexp.MustCompile(`(?i)\bin\s+([A-Za-z ]+)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// relative-date keywords in their fixed check order
var dateKeywords = []string{"today", "tomorrow", "this weekend", "next week"}

type state struct {
	query   string
	now     time.Time
	filters Filters
}

// The extraction pipeline: each step may set a filter and strips whatever it
// matched from the working query. Order matters and is part of the contract.
var steps = []func(*state){
	extractPricing,
	extractLocation,
	extractDate,
	extractCategory,
}

// Extract runs the pipeline against the current clock.
func Extract(query string) (string, Filters) {
	return ExtractAt(query, time.Now())
}

// ExtractAt runs the pipeline with an explicit clock, for deterministic
// relative-date resolution.
func ExtractAt(query string, now time.Time) (string, Filters) {
	s := &state{query: query, now: now}
	for _, step := range steps {
		step(s)
	}
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(s.query, " "))
	return cleaned, s.filters
}

// extractPricing handles the free/paid tokens. Both checks always run, so a
// query naming both ends up with isFree=false because paid is checked second.
func extractPricing(s *state) {
	if freeRe.MatchString(s.query) {
		v := true
		s.filters.IsFree = &v
		s.query = freeRe.ReplaceAllString(s.query, "")
	}
	if paidRe.MatchString(s.query) {
		v := false
		s.filters.IsFree = &v
		s.query = paidRe.ReplaceAllString(s.query, "")
	}
}

// extractLocation matches "in <words>" greedily to the end of the remaining
// text and title-cases the capture.
func extractLocation(s *state) {
	loc := locationRe.FindStringSubmatchIndex(s.query)
	if loc == nil {
		return
	}
	captured := s.query[loc[2]:loc[3]]
	s.filters.Location = titleCase(strings.TrimSpace(captured))
	s.query = s.query[:loc[0]] + s.query[loc[1]:]
}

// extractDate resolves relative-date keywords against the clock.
// Weekend is the next Saturday (0 days away when today is Saturday).
func extractDate(s *state) {
	lower := strings.ToLower(s.query)
	for _, keyword := range dateKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		var target time.Time
		switch keyword {
		case "today":
			target = s.now
		case "tomorrow":
			target = s.now.AddDate(0, 0, 1)
		case "this weekend":
			// days until Saturday, counting Monday as day 0
			weekday := (int(s.now.Weekday()) + 6) % 7
			target = s.now.AddDate(0, 0, ((5-weekday)%7+7)%7)
		case "next week":
			target = s.now.AddDate(0, 0, 7)
		}
		s.filters.Date = target.Format("2006-01-02")
		s.query = stripSubstring(s.query, keyword)
		lower = strings.ToLower(s.query)
	}
}

// extractCategory scans the category vocabulary as case-insensitive
// substrings. Later entries overwrite earlier matches.
func extractCategory(s *state) {
	lower := strings.ToLower(s.query)
	for _, category := range Categories {
		if !strings.Contains(lower, category) {
			continue
		}
		s.filters.Category = titleCase(category)
		s.query = stripSubstring(s.query, category)
		lower = strings.ToLower(s.query)
	}
}

// stripSubstring removes every case-insensitive occurrence of sub from text.
func stripSubstring(text, sub string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(sub))
	return re.ReplaceAllString(text, "")
}

// titleCase capitalizes the first letter of each space-separated word and
// lowercases the rest, so "san francisco" becomes "San Francisco" and
// "food & drink" becomes "Food & Drink".
func titleCase(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
