package data_processor

import (
	"strconv"
	"testing"
)

func TestNormalizeNumeric(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"--", 0},
		{"", 0},
		{"nan", 0},
		{"NaN", 0},
		{"1.5亿", 150000000},
		{"23.4万", 234000},
		{"-3.2%", -3.2},
		{"1,234.5", 1234.5},
		{" 12.3 ", 12.3},
		{"abc", 0},
		{"10%", 10},
	}
	for _, c := range cases {
		got := NormalizeNumeric(c.raw)
		if got != c.want {
			t.Errorf("NormalizeNumeric(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

// 合法浮点数转字符串再标准化，结果不变。
func TestNormalizeNumericIdempotent(t *testing.T) {
	values := []float64{0, 1.5, -3.2, 234000, 150000000, 9.97}
	for _, v := range values {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if got := NormalizeNumeric(s); got != v {
			t.Errorf("NormalizeNumeric(%q) = %v, want %v", s, got, v)
		}
	}
}

func TestNormalizeNumericDirtyCount(t *testing.T) {
	ResetDirtyCount()
	NormalizeNumeric("--")
	NormalizeNumeric("3.5")
	NormalizeNumeric("garbage")
	if got := DirtyCount(); got != 2 {
		t.Errorf("DirtyCount = %d, want 2", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"SH600000", "600000", true},
		{"1", "000001", true},
		{"abcdefg", "", false},
		{"sz000001", "000001", true},
		{"1234567", "", false},
		{"600519", "600519", true},
	}
	for _, c := range cases {
		got, ok := NormalizeCode(c.raw)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeCode(%q) = (%q, %v), want (%q, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}
