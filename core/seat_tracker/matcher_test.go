package seat_tracker

import (
	"reflect"
	"testing"

	"tiger-review/model"
)

func testSeats() []model.SeatEntry {
	return []model.SeatEntry{
		{Label: "席位甲", Aliases: []string{"上海江苏路", "共用关键字"}},
		{Label: "席位乙", Aliases: []string{"宁波桑田路", "共用关键字"}},
	}
}

func TestClassifyAction(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0) // 默认阈值 10万 / 5:1

	cases := []struct {
		buy, sell float64
		want      model.SeatAction
	}{
		{200000, 0, model.ActionBuy},
		{0, 150000, model.ActionSell},
		{600000, 90000, model.ActionBuy},       // 卖边不显著
		{500000, 100000, model.ActionBuy},      // 卖边恰好 10万, 不算显著
		{500000, 100001, model.ActionDayTrade}, // 恰好 5:1 不到压制线
		{600000, 100001, model.ActionBuy},      // 约 6:1, 买方压制
		{100001, 600000, model.ActionSell},
		{50000, 30000, model.ActionNeutral},
	}
	for _, c := range cases {
		if got := m.classifyAction(c.buy, c.sell); got != c.want {
			t.Errorf("classifyAction(%v, %v) = %v, want %v", c.buy, c.sell, got, c.want)
		}
	}
}

// 营业部名同时匹配两个席位的别名时, 只归属表里靠前的那个。
func TestFirstMatchWins(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0)
	rows := []model.DisclosureRow{
		{StockCode: "600000", StockName: "某股", BranchName: "某证券共用关键字营业部", BuyAmount: 500000},
	}
	aggs := m.MatchSeats(rows)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}
	if aggs[0].SeatLabel != "席位甲" {
		t.Errorf("label = %s, want 席位甲", aggs[0].SeatLabel)
	}
	if aggs[0].HitCount != 1 {
		t.Errorf("hit count = %d, want 1", aggs[0].HitCount)
	}
}

func TestMatchSeatsAggregation(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0)
	branch := "国泰君安上海江苏路营业部"
	rows := []model.DisclosureRow{
		{StockCode: "600001", StockName: "买入股", BranchName: branch, BuyAmount: 2000000},
		{StockCode: "600002", StockName: "卖出股", BranchName: branch, SellAmount: 3000000},
		{StockCode: "600003", StockName: "做T股", BranchName: branch, BuyAmount: 2000000, SellAmount: 1500000},
		{StockCode: "600004", StockName: "观望股", BranchName: branch, BuyAmount: 10000, SellAmount: 10000},
		{StockCode: "600005", StockName: "路人股", BranchName: "无关营业部", BuyAmount: 9e7},
	}

	aggs := m.MatchSeats(rows)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}
	a := aggs[0]
	if !reflect.DeepEqual(a.BoughtStocks, []string{"买入股", "做T股"}) {
		t.Errorf("bought = %v", a.BoughtStocks)
	}
	if !reflect.DeepEqual(a.SoldStocks, []string{"卖出股", "做T股"}) {
		t.Errorf("sold = %v", a.SoldStocks)
	}
	// 观望股有命中但不进买卖列表
	if a.HitCount != 4 {
		t.Errorf("hit count = %d, want 4", a.HitCount)
	}
}

// 买入过亿的股票名带金额标注。
func TestBuyAmountAnnotation(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0)
	rows := []model.DisclosureRow{
		{StockCode: "600001", StockName: "大买股", BranchName: "宁波桑田路营业部", BuyAmount: 1.2e8},
	}
	aggs := m.MatchSeats(rows)
	if len(aggs) != 1 || len(aggs[0].BoughtStocks) != 1 {
		t.Fatalf("unexpected aggs: %+v", aggs)
	}
	if got := aggs[0].BoughtStocks[0]; got != "大买股(1.2亿)" {
		t.Errorf("annotated name = %q, want 大买股(1.2亿)", got)
	}
}

func TestMatchSeatsHitCountOrder(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0)
	rows := []model.DisclosureRow{
		{StockCode: "600001", StockName: "A", BranchName: "宁波桑田路营业部", BuyAmount: 500000},
		{StockCode: "600002", StockName: "B", BranchName: "国泰君安上海江苏路营业部", BuyAmount: 500000},
		{StockCode: "600003", StockName: "C", BranchName: "国泰君安上海江苏路营业部", SellAmount: 500000},
	}
	aggs := m.MatchSeats(rows)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}
	if aggs[0].SeatLabel != "席位甲" || aggs[0].HitCount != 2 {
		t.Errorf("order wrong: first = %+v", aggs[0])
	}
}

func TestMatchSeatsEmpty(t *testing.T) {
	m := NewMatcher(testSeats(), 0, 0)
	if aggs := m.MatchSeats(nil); len(aggs) != 0 {
		t.Errorf("expected empty output, got %v", aggs)
	}
}
