package logger

import (
	"context"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization replaces the global logger.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLevels(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", " INFO "} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("level %q rejected: %v", level, err)
		}
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("invalid level accepted")
	}

	// Reset for other tests.
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("reset level: %v", err)
	}
}

func TestFieldsAndNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	ctx := context.Background()
	log := Get()
	log.Info(ctx, "draw stored",
		String("game", "powerball"),
		Int("draws", 3),
		Float64("seconds", 0.01),
		Any("numbers", []int{1, 2, 3, 4, 5}),
	)
	log.Warn(ctx, "check failed", String("check", "overall_sum"))

	named := Named("scraper")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(ctx, "page fetched", Int("year", 2024))
}
