package market_sentiment

import (
	"testing"

	"tiger-review/model"
)

func defaultEngine() *Engine { return NewEngine(0, 0) }

// 冰点判定优先于上升: 高度 2->3 抬了也算冰点。
func TestIcePointPrecedesRising(t *testing.T) {
	history := []model.SentimentSample{
		{Date: "20260827", LimitUpCount: 10, MaxHeight: 2},
		{Date: "20260828", LimitUpCount: 12, MaxHeight: 3},
	}
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseIcePoint {
		t.Errorf("phase = %v, want 冰点期", got)
	}
}

func TestEmptyHistoryDefaultsDivergence(t *testing.T) {
	if got := defaultEngine().DeterminePhase(nil); got != model.PhaseDivergence {
		t.Errorf("phase = %v, want 分歧期", got)
	}
	one := []model.SentimentSample{{Date: "20260828", LimitUpCount: 50, MaxHeight: 7}}
	if got := defaultEngine().DeterminePhase(one); got != model.PhaseDivergence {
		t.Errorf("single sample phase = %v, want 分歧期", got)
	}
}

func TestRising(t *testing.T) {
	history := []model.SentimentSample{
		{Date: "20260827", LimitUpCount: 50, MaxHeight: 5},
		{Date: "20260828", LimitUpCount: 45, MaxHeight: 6}, // 45 >= 0.8*50
	}
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseRising {
		t.Errorf("phase = %v, want 上升期", got)
	}

	// 家数缩水太多, 高度抬了也只算分歧
	history[1].LimitUpCount = 30
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseDivergence {
		t.Errorf("phase = %v, want 分歧期", got)
	}
}

func TestDecline(t *testing.T) {
	history := []model.SentimentSample{
		{Date: "20260827", LimitUpCount: 50, MaxHeight: 7},
		{Date: "20260828", LimitUpCount: 20, MaxHeight: 4},
	}
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseDecline {
		t.Errorf("phase = %v, want 退潮期", got)
	}

	// 高度回落但仍在 5 以上, 算分歧不算退潮
	history[1].MaxHeight = 6
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseDivergence {
		t.Errorf("phase = %v, want 分歧期", got)
	}
}

// 窗口只看最近 3 个, 更早的样本不影响判定。
func TestWindowTruncation(t *testing.T) {
	history := []model.SentimentSample{
		{Date: "20260824", LimitUpCount: 100, MaxHeight: 9},
		{Date: "20260825", LimitUpCount: 90, MaxHeight: 8},
		{Date: "20260827", LimitUpCount: 50, MaxHeight: 7},
		{Date: "20260828", LimitUpCount: 20, MaxHeight: 4},
	}
	if got := defaultEngine().DeterminePhase(history); got != model.PhaseDecline {
		t.Errorf("phase = %v, want 退潮期", got)
	}
}

func TestStrategySuggestionCoversAllPhases(t *testing.T) {
	phases := []model.Phase{model.PhaseRising, model.PhaseDivergence, model.PhaseDecline, model.PhaseIcePoint}
	seen := map[string]bool{}
	for _, p := range phases {
		s := StrategySuggestion(p)
		if s == "" {
			t.Errorf("empty suggestion for %v", p)
		}
		if seen[s] {
			t.Errorf("duplicate suggestion for %v: %s", p, s)
		}
		seen[s] = true
	}
}
