package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lunchradar/backend/internal/domain"
)

// ParseModelReply turns a raw model reply into a validated MenuRecord.
// It strips code fences, requires the reply to be JSON with a menu_items
// array, and applies the date-defaulting rule against the given processing
// day. Item fields stay best-effort; only the record-level date is strictly
// validated.
func ParseModelReply(reply, sourceURL string, now time.Time) (*domain.MenuRecord, error) {
	cleaned := stripCodeFences(reply)

	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("%w: reply is not valid JSON", domain.ErrMalformedResponse)
	}

	items := gjson.Get(cleaned, "menu_items")
	if !items.Exists() || !items.IsArray() {
		return nil, fmt.Errorf("%w: menu_items is missing or not an array", domain.ErrMalformedResponse)
	}

	var record domain.MenuRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if record.MenuItems == nil {
		record.MenuItems = []domain.MenuItem{}
	}

	// health_score is a best-effort inference; out-of-range values are
	// dropped rather than failing the whole record.
	for i := range record.MenuItems {
		if hs := record.MenuItems[i].HealthScore; hs != nil && (*hs < 1 || *hs > 5) {
			record.MenuItems[i].HealthScore = nil
		}
	}

	// A date the model invented in some other shape is as good as no date.
	if record.Date != "" {
		if _, err := time.Parse(domain.DateLayout, record.Date); err != nil {
			record.Date = ""
		}
	}
	// The model found a daily menu but no explicit date: it is today's menu.
	// A record is never stored without a date, so the no-menu case defaults
	// to the processing day too, which keeps it in today's cache slot.
	if record.Date == "" {
		record.Date = now.Format(domain.DateLayout)
	}

	if record.SourceURL == "" {
		record.SourceURL = sourceURL
	}

	return &record, nil
}

// stripCodeFences removes leading/trailing markdown code fences the model
// tends to wrap JSON in, then trims whitespace.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
