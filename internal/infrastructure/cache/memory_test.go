package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/lunchradar/backend/internal/domain"
)

func TestMemoryMenus(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then upsert then hit", func(t *testing.T) {
		m := NewMemory()
		if _, err := m.Get(ctx, "http://example.com", "2026-08-30"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}

		record := &domain.MenuRecord{RestaurantName: "Test", MenuItems: []domain.MenuItem{}, Date: "2026-08-30", SourceURL: "http://example.com"}
		if err := m.Upsert(ctx, record); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}

		got, err := m.Get(ctx, "http://example.com", "2026-08-30")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.RestaurantName != "Test" {
			t.Errorf("RestaurantName = %s, want Test", got.RestaurantName)
		}
	})

	t.Run("stored records do not alias the caller's value", func(t *testing.T) {
		m := NewMemory()
		record := &domain.MenuRecord{
			RestaurantName: "Test",
			MenuItems:      []domain.MenuItem{{Category: "Soup", Name: "Goulash"}},
			Date:           "2026-08-30",
			SourceURL:      "http://example.com",
		}
		if err := m.Upsert(ctx, record); err != nil {
			t.Fatal(err)
		}
		record.MenuItems[0].Name = "Mutated"

		got, err := m.Get(ctx, "http://example.com", "2026-08-30")
		if err != nil {
			t.Fatal(err)
		}
		if got.MenuItems[0].Name != "Goulash" {
			t.Errorf("Name = %s, want Goulash", got.MenuItems[0].Name)
		}
	})

	t.Run("lists distinct sources", func(t *testing.T) {
		m := NewMemory()
		for _, date := range []string{"2026-08-29", "2026-08-30"} {
			r := &domain.MenuRecord{RestaurantName: "Test", MenuItems: []domain.MenuItem{}, Date: date, SourceURL: "http://a.example"}
			if err := m.Upsert(ctx, r); err != nil {
				t.Fatal(err)
			}
		}

		sources, err := m.ListSources(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(sources) != 1 || sources[0] != "http://a.example" {
			t.Errorf("sources = %v, want [http://a.example]", sources)
		}
	})
}

func TestMemorySubscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate registration fails", func(t *testing.T) {
		m := NewMemory()
		if err := m.Register(ctx, "http://example.com", "http://hook"); err != nil {
			t.Fatal(err)
		}
		if err := m.Register(ctx, "http://example.com", "http://hook"); !errors.Is(err, domain.ErrDuplicateSubscription) {
			t.Errorf("error = %v, want ErrDuplicateSubscription", err)
		}
	})

	t.Run("unregister allows re-registration", func(t *testing.T) {
		m := NewMemory()
		m.Register(ctx, "http://example.com", "http://hook")
		if err := m.Unregister(ctx, "http://example.com", "http://hook"); err != nil {
			t.Fatal(err)
		}
		if err := m.Register(ctx, "http://example.com", "http://hook"); err != nil {
			t.Errorf("re-Register() error = %v, want nil", err)
		}
	})

	t.Run("subscribed sources shrink when last target leaves", func(t *testing.T) {
		m := NewMemory()
		m.Register(ctx, "http://example.com", "http://hook")
		m.Unregister(ctx, "http://example.com", "http://hook")

		sources, err := m.SubscribedSources(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(sources) != 0 {
			t.Errorf("sources = %v, want empty", sources)
		}
	})
}
