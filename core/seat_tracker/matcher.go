// Package seat_tracker 在龙虎榜席位明细里认人：按别名表匹配知名游资营业部，
// 判定买卖方向后按 (席位, 营业部) 聚合成当日战绩。
package seat_tracker

import (
	"fmt"
	"sort"
	"strings"

	"tiger-review/model"
)

// 动作判定阈值。龙虎榜金额噪音大，单边小额回转不算真做T。
const (
	DefaultSignificance = 100000 // 单边显著金额 (10万)
	DefaultDominance    = 5.0    // 单边压制比, 大于 5:1 按单边算

	annotateBuyAmount = 1e8 // 买入超 1亿 在名称后标注金额
)

// Matcher 持有注入的席位别名表与阈值，表加载后不再变。
type Matcher struct {
	seats        []model.SeatEntry
	significance float64
	dominance    float64
}

// NewMatcher 构造匹配器。阈值给 0 用默认值。
func NewMatcher(seats []model.SeatEntry, significance, dominance float64) *Matcher {
	if significance <= 0 {
		significance = DefaultSignificance
	}
	if dominance <= 0 {
		dominance = DefaultDominance
	}
	return &Matcher{seats: seats, significance: significance, dominance: dominance}
}

// MatchRow 单条明细归属：按表顺序找第一个别名命中的席位，命中即停。
// 一条明细最多归属一个席位；全不命中返回 nil。
func (m *Matcher) MatchRow(row model.DisclosureRow) *model.SeatHit {
	for _, seat := range m.seats {
		for _, alias := range seat.Aliases {
			if alias == "" {
				continue
			}
			if strings.Contains(row.BranchName, alias) {
				return &model.SeatHit{
					SeatLabel:  seat.Label,
					BranchName: row.BranchName,
					StockCode:  row.StockCode,
					StockName:  row.StockName,
					Action:     m.classifyAction(row.BuyAmount, row.SellAmount),
					BuyAmount:  row.BuyAmount,
					SellAmount: row.SellAmount,
				}
			}
		}
	}
	return nil
}

// classifyAction 买卖方向判定：
// 单边显著 -> 买/卖；双边显著时一边压过另一边 5:1 才算单边，否则做T；
// 双边都不显著 -> 观望。
// 注意 5:1 只在双边都过显著线时起作用：单边显著的行不看比例，
// 直接按显著那一边定方向。
func (m *Matcher) classifyAction(buy, sell float64) model.SeatAction {
	buySig := buy > m.significance
	sellSig := sell > m.significance

	switch {
	case buySig && !sellSig:
		return model.ActionBuy
	case sellSig && !buySig:
		return model.ActionSell
	case buySig && sellSig:
		if buy > m.dominance*sell {
			return model.ActionBuy
		}
		if sell > m.dominance*buy {
			return model.ActionSell
		}
		return model.ActionDayTrade
	default:
		return model.ActionNeutral
	}
}

// MatchSeats 处理一天的全部明细并聚合。
// 买卖列表按出现顺序记，不去重；做T两边都记。
// 输出按命中数降序，同数保持首次出现顺序 (文件行序有人肉依赖, 要稳定)。
func (m *Matcher) MatchSeats(rows []model.DisclosureRow) []*model.SeatAggregate {
	type aggKey struct {
		label  string
		branch string
	}
	aggs := make(map[aggKey]*model.SeatAggregate)
	var order []aggKey

	for _, row := range rows {
		hit := m.MatchRow(row)
		if hit == nil {
			continue
		}
		k := aggKey{label: hit.SeatLabel, branch: hit.BranchName}
		agg, ok := aggs[k]
		if !ok {
			agg = &model.SeatAggregate{SeatLabel: hit.SeatLabel, BranchName: hit.BranchName}
			aggs[k] = agg
			order = append(order, k)
		}

		switch hit.Action {
		case model.ActionBuy:
			agg.BoughtStocks = append(agg.BoughtStocks, renderBought(hit))
		case model.ActionSell:
			agg.SoldStocks = append(agg.SoldStocks, hit.StockName)
		case model.ActionDayTrade:
			agg.BoughtStocks = append(agg.BoughtStocks, renderBought(hit))
			agg.SoldStocks = append(agg.SoldStocks, hit.StockName)
		}
	}

	out := make([]*model.SeatAggregate, 0, len(order))
	for _, k := range order {
		agg := aggs[k]
		agg.HitCount = len(agg.BoughtStocks) + len(agg.SoldStocks)
		out = append(out, agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HitCount > out[j].HitCount
	})
	return out
}

// renderBought 买入金额上亿的在名称后标注。
func renderBought(hit *model.SeatHit) string {
	if hit.BuyAmount > annotateBuyAmount {
		return fmt.Sprintf("%s(%.1f亿)", hit.StockName, hit.BuyAmount/1e8)
	}
	return hit.StockName
}
