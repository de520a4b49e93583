package data_processor

import (
	"testing"

	"tiger-review/model"
)

func TestSentimentStore(t *testing.T) {
	// 1. 连接 (内存库)
	store, err := NewSentimentStore("")
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer store.Close()

	// 2. 写入三天样本
	samples := []model.SentimentSample{
		{Date: "20260826", LimitUpCount: 40, MaxHeight: 5},
		{Date: "20260827", LimitUpCount: 55, MaxHeight: 6},
		{Date: "20260828", LimitUpCount: 30, MaxHeight: 4},
	}
	for _, s := range samples {
		if err := store.SaveSample(s); err != nil {
			t.Fatalf("SaveSample(%s) failed: %v", s.Date, err)
		}
	}

	// 3. 同日重写覆盖旧值
	if err := store.SaveSample(model.SentimentSample{Date: "20260828", LimitUpCount: 33, MaxHeight: 4}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	// 4. 取最近 2 个, 应为升序且含覆盖后的值
	recent, err := store.RecentSamples(2)
	if err != nil {
		t.Fatalf("RecentSamples failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(recent))
	}
	if recent[0].Date != "20260827" || recent[1].Date != "20260828" {
		t.Errorf("wrong order: %v", recent)
	}
	if recent[1].LimitUpCount != 33 {
		t.Errorf("overwrite not applied: got %d, want 33", recent[1].LimitUpCount)
	}

	t.Logf("✅ recent window: %v", recent)
}
