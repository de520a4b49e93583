// Package strategy_pool 把每日个股快照按规则收进策略池并排序。
// 规则按固定顺序逐条过，任一条命中即入池，标签取并集，最后按优先级分排序。
package strategy_pool

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tiger-review/model"
)

// 入池阈值
const (
	LimitUpPct       = 9.5  // 涨停近似线 (%), 交易所标记缺失时兜底
	BrokenBoardFloor = -7.0 // 炸板回封观察下限 (%), 跌穿就不看了
	BigMoneyAmount   = 2e9  // 大资金主战场成交额 (20亿)
	LongLegPct       = 5.0  // 长腿反转当日涨幅下限 (%)
	LongLegOpenPct   = -4.0 // 长腿反转低开下限 (%)
	LimitDownPct     = -9.0 // 跌停观察线 (%)

	BrokenBoardMark = "炸板"
)

// 标签
const (
	TagHolding     = "持仓"
	TagWatch       = "自选"
	TagFirstBoard  = "首板"
	TagBrokenBoard = "炸板/回封预期"
	TagBigMoney    = "大资金"
	TagLongLeg     = "长腿反转"
	TagLimitDown   = "跌停/风险"
)

// 优先级分值：持仓/自选恒定置顶，板块内「最高一档标签」独享加分。
const (
	scoreHolding     = 10000
	scoreWatch       = 5000
	scorePerBoard    = 100
	scoreFirstBoard  = 50
	scoreLongLeg     = 40
	scoreBrokenBoard = 20
	scoreLimitDown   = 10
)

var boardPat = regexp.MustCompile(`(\d+)连板`)

// Inputs 分类时用到的外部名单与可调阈值。
type Inputs struct {
	Holdings  map[string]model.Holding // code -> 持仓
	Watchlist map[string]string        // code -> 备注

	BigMoneyAmount float64 // 大资金成交额线, <=0 用默认 20亿
}

func (in Inputs) bigMoneyFloor() float64 {
	if in.BigMoneyAmount > 0 {
		return in.BigMoneyAmount
	}
	return BigMoneyAmount
}

// Rule 单条入池规则：入参只读，返回 (是否入池, 追加标签)。
// 规则之间互不影响，顺序固定，方便逐条单测。
type Rule func(rec model.StockDailyRecord, in Inputs) (bool, []string)

// Rules 返回按优先顺序排好的全部规则。
func Rules() []Rule {
	return []Rule{
		ruleHolding,
		ruleWatchlist,
		ruleLimitUp,
		ruleBrokenBoard,
		ruleBigMoney,
		ruleLongLeg,
		ruleLimitDown,
	}
}

// 规则1: 持仓股无条件入池。
func ruleHolding(rec model.StockDailyRecord, in Inputs) (bool, []string) {
	if _, ok := in.Holdings[rec.Code]; !ok {
		return false, nil
	}
	return true, []string{TagHolding}
}

// 规则2: 自选股无条件入池，有备注带上备注。
func ruleWatchlist(rec model.StockDailyRecord, in Inputs) (bool, []string) {
	note, ok := in.Watchlist[rec.Code]
	if !ok {
		return false, nil
	}
	if note != "" {
		return true, []string{TagWatch + "/" + note}
	}
	return true, []string{TagWatch}
}

// 规则3: 涨停/连板。优先沿用已有标签，否则按连板天数造标签。
func ruleLimitUp(rec model.StockDailyRecord, _ Inputs) (bool, []string) {
	hit := (rec.IsZT && rec.TodayPct > 0) || rec.TodayPct > LimitUpPct
	if !hit {
		return false, nil
	}
	if tag := CleanTag(rec.Tag); tag != "" {
		return true, []string{tag}
	}
	if rec.LimitDays > 0 {
		return true, []string{fmt.Sprintf("%d连板", rec.LimitDays)}
	}
	return true, []string{TagFirstBoard}
}

// 规则4: 炸板但没深跌的，次日有回封预期。
func ruleBrokenBoard(rec model.StockDailyRecord, _ Inputs) (bool, []string) {
	broken := strings.Contains(CleanTag(rec.Tag), BrokenBoardMark) || rec.TagExtra == BrokenBoardMark
	if !broken || rec.TodayPct <= BrokenBoardFloor {
		return false, nil
	}
	return true, []string{TagBrokenBoard}
}

// 规则5: 大资金主战场，默认 20亿以上成交额且收红。
func ruleBigMoney(rec model.StockDailyRecord, in Inputs) (bool, []string) {
	if rec.Amount > in.bigMoneyFloor() && rec.TodayPct > 0 {
		return true, []string{TagBigMoney}
	}
	return false, nil
}

// 规则6: 长腿反转，大幅低开拉回大涨。
func ruleLongLeg(rec model.StockDailyRecord, _ Inputs) (bool, []string) {
	if rec.TodayPct > LongLegPct && rec.OpenPct < LongLegOpenPct {
		return true, []string{TagLongLeg}
	}
	return false, nil
}

// 规则7: 跌停风险观察。
func ruleLimitDown(rec model.StockDailyRecord, _ Inputs) (bool, []string) {
	if rec.TodayPct < LimitDownPct {
		return true, []string{TagLimitDown}
	}
	return false, nil
}

// CleanTag 清理上游缺失值传播产生的 "nan" 残留，三种形态都要兜：
// 开头 "nan/"、结尾 "/nan"、整个就是 "nan"。
func CleanTag(tag string) string {
	t := strings.TrimSpace(tag)
	if strings.EqualFold(t, "nan") {
		return ""
	}
	t = strings.TrimPrefix(t, "nan/")
	t = strings.TrimSuffix(t, "/nan")
	return t
}

// Score 按标签算优先级分。连板/首板/长腿/炸板/跌停是 elif 链，
// 只有最高一档生效——这是「最高标签独享加分」的设计，不是漏写。
func Score(tags []string) int {
	joined := strings.Join(tags, "/")
	score := 0
	if strings.Contains(joined, TagHolding) {
		score += scoreHolding
	}
	if strings.Contains(joined, TagWatch) {
		score += scoreWatch
	}
	if m := boardPat.FindStringSubmatch(joined); m != nil {
		n, _ := strconv.Atoi(m[1])
		score += n * scorePerBoard
	} else if strings.Contains(joined, TagFirstBoard) {
		score += scoreFirstBoard
	} else if strings.Contains(joined, TagLongLeg) {
		score += scoreLongLeg
	} else if strings.Contains(joined, BrokenBoardMark) {
		score += scoreBrokenBoard
	} else if strings.Contains(joined, "跌停") {
		score += scoreLimitDown
	}
	return score
}

// Classify 对全量快照跑规则，返回排好序的策略池。
// 同样的输入跑多少遍结果都一字不差 (规则顺序与排序都是确定的)。
func Classify(records []model.StockDailyRecord, in Inputs) []*model.PoolEntry {
	rules := Rules()

	var pool []*model.PoolEntry
	for _, rec := range records {
		var tags []string
		keep := false
		for _, rule := range rules {
			hit, ts := rule(rec, in)
			if hit {
				keep = true
				tags = append(tags, ts...)
			}
		}
		if !keep {
			continue
		}
		tags = dedupeTags(tags)
		pool = append(pool, &model.PoolEntry{
			Code:     rec.Code,
			Name:     rec.Name,
			Tags:     tags,
			Amount:   rec.Amount,
			TodayPct: rec.TodayPct,
			Turnover: rec.Turnover,
			OpenPct:  rec.OpenPct,
			Price:    rec.Price,
			Score:    Score(tags),
		})
	}

	// 高分在前，同分按成交额降序
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Amount > pool[j].Amount
	})
	return pool
}

// dedupeTags 保序去重，顺手丢掉空标签。
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
