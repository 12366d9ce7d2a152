package domain

import (
	"testing"
	"time"
)

func detail(title, description string, durationSec int) VideoDetails {
	return VideoDetails{
		VideoID:     "v1",
		Title:       title,
		Description: description,
		DurationSec: durationSec,
		PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testFilterConfig() FilterConfig {
	return FilterConfig{
		MinDurationSec: 300,
		MaxDurationSec: 1200,
		Rules:          DefaultLevelRules(),
	}
}

func TestFilterVideos_DurationBound(t *testing.T) {
	cfg := FilterConfig{
		MinDurationSec: 300,
		MaxDurationSec: 1200,
		Rules: map[Level]LevelRules{
			LevelIntermediate: {SkipScriptCheck: true},
		},
	}

	tests := []struct {
		name        string
		durationSec int
		accepted    bool
	}{
		{"below minimum", 200, false},
		{"at minimum", 300, true},
		{"inside band", 600, true},
		{"at maximum", 1200, true},
		{"above maximum", 1201, false},
		{"zero duration", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []VideoDetails{detail("workout", "", tt.durationSec)}
			got := FilterVideos(items, LevelIntermediate, cfg)
			if accepted := len(got) == 1; accepted != tt.accepted {
				t.Errorf("duration %d: accepted = %v, want %v", tt.durationSec, accepted, tt.accepted)
			}
		})
	}
}

func TestFilterVideos_ScriptCheck(t *testing.T) {
	cfg := FilterConfig{
		MinDurationSec: 300,
		MaxDurationSec: 1200,
		Rules: map[Level]LevelRules{
			LevelIntermediate: {},
			LevelAdvanced:     {SkipScriptCheck: true},
		},
	}

	tests := []struct {
		name     string
		title    string
		level    Level
		accepted bool
	}{
		{"hiragana title", "じたくトレーニング", LevelIntermediate, true},
		{"katakana title", "サーキットトレーニング", LevelIntermediate, true},
		{"kanji title", "自宅筋力強化", LevelIntermediate, true},
		{"latin-only title dropped", "Home Workout", LevelIntermediate, false},
		{"latin-only title kept when stage skipped", "Home Workout", LevelAdvanced, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []VideoDetails{detail(tt.title, "", 600)}
			got := FilterVideos(items, tt.level, cfg)
			if accepted := len(got) == 1; accepted != tt.accepted {
				t.Errorf("title %q: accepted = %v, want %v", tt.title, accepted, tt.accepted)
			}
		})
	}
}

func TestFilterVideos_LevelKeywords(t *testing.T) {
	cfg := testFilterConfig()

	tests := []struct {
		name        string
		title       string
		description string
		level       Level
		accepted    bool
	}{
		{
			name:     "beginner keyword in title",
			title:    "初心者向け自重トレーニング",
			level:    LevelBeginner,
			accepted: true,
		},
		{
			name:        "beginner keyword in description",
			title:       "自重トレーニング",
			description: "入門メニューです",
			level:       LevelBeginner,
			accepted:    true,
		},
		{
			name:     "no beginner keyword",
			title:    "自重トレーニング",
			level:    LevelBeginner,
			accepted: false,
		},
		{
			name:     "advanced keyword required",
			title:    "上級サーキット",
			level:    LevelAdvanced,
			accepted: true,
		},
		{
			name:     "advanced excludes beginner-tagged items",
			title:    "上級にも初心者にも",
			level:    LevelAdvanced,
			accepted: false,
		},
		{
			name:     "case-insensitive keyword match",
			title:    "自宅HIITトレーニング",
			level:    LevelAdvanced,
			accepted: true,
		},
		{
			name:     "intermediate drops beginner-tagged items",
			title:    "簡単トレーニング",
			level:    LevelIntermediate,
			accepted: false,
		},
		{
			name:     "intermediate drops advanced-tagged items",
			title:    "ハード筋トレ",
			level:    LevelIntermediate,
			accepted: false,
		},
		{
			name:     "intermediate keeps unmarked items",
			title:    "自重サーキット",
			level:    LevelIntermediate,
			accepted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []VideoDetails{detail(tt.title, tt.description, 600)}
			got := FilterVideos(items, tt.level, cfg)
			if accepted := len(got) == 1; accepted != tt.accepted {
				t.Errorf("accepted = %v, want %v", accepted, tt.accepted)
			}
		})
	}
}

func TestFilterVideos_StagesShortCircuit(t *testing.T) {
	cfg := testFilterConfig()

	// Keyword would match, but duration fails first.
	items := []VideoDetails{detail("初心者向けトレーニング", "", 100)}
	if got := FilterVideos(items, LevelBeginner, cfg); len(got) != 0 {
		t.Errorf("expected duration stage to drop item, got %d accepted", len(got))
	}
}

func TestFilterVideos_PreservesOrder(t *testing.T) {
	cfg := testFilterConfig()

	items := []VideoDetails{
		detail("自重トレーニング その1", "", 400),
		detail("Home Workout", "", 400), // dropped by script check
		detail("自重トレーニング その2", "", 900),
	}
	got := FilterVideos(items, LevelIntermediate, cfg)

	if len(got) != 2 {
		t.Fatalf("accepted %d items, want 2", len(got))
	}
	if got[0].Title != items[0].Title || got[1].Title != items[2].Title {
		t.Errorf("input order not preserved: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestContainsJapanese(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"hiragana", "とれーにんぐ", true},
		{"katakana", "トレーニング", true},
		{"kanji", "筋力", true},
		{"mixed with latin", "10min 自宅ワークアウト", true},
		{"latin only", "full body workout", false},
		{"digits and symbols", "10:30 / #1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsJapanese(tt.input); got != tt.expected {
				t.Errorf("ContainsJapanese(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
