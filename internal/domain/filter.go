package domain

import (
	"strings"
)

// LevelRules configures the optional filter stages for a single level.
type LevelRules struct {
	// SkipScriptCheck disables the Japanese-title stage for this level.
	SkipScriptCheck bool

	// RequireAny: at least one keyword must appear in title+description.
	// Empty slice disables the stage.
	RequireAny []string

	// ExcludeAll: any match in title+description drops the item.
	ExcludeAll []string
}

// FilterConfig holds the filter thresholds and per-level rules.
type FilterConfig struct {
	MinDurationSec int
	MaxDurationSec int
	Rules          map[Level]LevelRules
}

var beginnerKeywords = []string{
	"初心者", "入門", "簡単", "ゆる", "ビギナー", "beginner", "easy",
}

var advancedKeywords = []string{
	"上級", "ハード", "追い込み", "鬼", "hiit", "advanced",
}

// DefaultLevelRules returns the keyword heuristics distinguishing the
// difficulty tiers. Beginner and advanced require their signal keywords;
// intermediate is the remainder, excluding both signal sets.
func DefaultLevelRules() map[Level]LevelRules {
	return map[Level]LevelRules{
		LevelBeginner: {
			RequireAny: beginnerKeywords,
		},
		LevelIntermediate: {
			ExcludeAll: append(append([]string{}, beginnerKeywords...), advancedKeywords...),
		},
		LevelAdvanced: {
			RequireAny: advancedKeywords,
			ExcludeAll: beginnerKeywords,
		},
	}
}

// FilterVideos returns the details that qualify for the given level.
// Stages short-circuit: duration bound, then the Japanese-title check
// (unless skipped for the level), then the level's keyword rules.
// Pure function of its inputs.
func FilterVideos(items []VideoDetails, level Level, cfg FilterConfig) []VideoDetails {
	rules := cfg.Rules[level]

	accepted := make([]VideoDetails, 0, len(items))
	for _, item := range items {
		if item.DurationSec < cfg.MinDurationSec || item.DurationSec > cfg.MaxDurationSec {
			continue
		}
		if !rules.SkipScriptCheck && !ContainsJapanese(item.Title) {
			continue
		}
		if !matchesKeywords(item, rules) {
			continue
		}
		accepted = append(accepted, item)
	}

	return accepted
}

// matchesKeywords applies the level's keyword rules over title+description.
func matchesKeywords(item VideoDetails, rules LevelRules) bool {
	text := strings.ToLower(item.Title + " " + item.Description)

	for _, kw := range rules.ExcludeAll {
		if strings.Contains(text, strings.ToLower(kw)) {
			return false
		}
	}

	if len(rules.RequireAny) == 0 {
		return true
	}
	for _, kw := range rules.RequireAny {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}

	return false
}

// ContainsJapanese reports whether s contains hiragana, katakana or CJK
// ideographs. Used as a language-gating heuristic on titles.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x3040 && r <= 0x309F: // hiragana
			return true
		case r >= 0x30A0 && r <= 0x30FF: // katakana
			return true
		case r >= 0x4E00 && r <= 0x9FAF: // CJK unified ideographs
			return true
		}
	}

	return false
}
