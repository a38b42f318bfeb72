package domain

// DateLayout is the wire form of every menu date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MenuRecord is the validated result of extracting one source's daily
// menu for one day. JSON names match the schema the model is asked to
// produce, so a validated reply round-trips into storage unchanged.
type MenuRecord struct {
	RestaurantName string     `json:"restaurant_name"`
	MenuItems      []MenuItem `json:"menu_items"`
	DailyMenu      bool       `json:"daily_menu"`
	Closed         bool       `json:"closed,omitempty"`
	Date           string     `json:"date"`
	SourceURL      string     `json:"source_url"`
}

// MenuItem is a single dish on a daily menu. Category and name are the
// only fields extraction is expected to always produce; everything else
// is a best-effort inference and may be absent.
type MenuItem struct {
	Category     string   `json:"category"`
	Name         string   `json:"name"`
	Price        *float64 `json:"price,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	IsVegetarian bool     `json:"is_vegetarian"`
	IsVegan      bool     `json:"is_vegan"`
	Calories     *float64 `json:"calories,omitempty"`
	HealthScore  *int     `json:"health_score,omitempty"` // 1 (heavy) .. 5 (light)
}

// ChangeNotification is the payload delivered to a subscriber when a
// source's menu for the current day differs from the previously cached one.
type ChangeNotification struct {
	SourceURL string     `json:"source_url"`
	NewMenu   MenuRecord `json:"new_menu"`
}

// SummarizeRequest is the inbound request for a menu summarization.
type SummarizeRequest struct {
	URL   string `json:"url" binding:"required"`
	Force bool   `json:"force,omitempty"`
}

// SubscriptionRequest registers or removes a notification target for a source.
type SubscriptionRequest struct {
	URL    string `json:"url" binding:"required"`
	Target string `json:"target" binding:"required"`
}
