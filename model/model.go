// Package model 定义复盘系统的数据结构：每日个股快照、策略池、龙虎榜席位、情绪样本。
package model

import "strings"

// StockDailyRecord 每日个股快照：行情导出与涨停属性合并并标准化后的单行。
// Code 是全部数据源的 join key，必须是规整后的 6 位代码。
type StockDailyRecord struct {
	Code      string  // 6位代码
	Name      string  // 名称
	TodayPct  float64 // 涨跌幅 (%)
	OpenPct   float64 // 开盘涨幅 (%)
	Amount    float64 // 成交额 (元)
	Turnover  float64 // 换手率 (%)
	Price     float64 // 现价
	IsZT      bool    // 是否涨停 (交易所口径)
	LimitDays int     // 连板天数 (非连板为 0)
	Tag       string  // 已有标签 (可能为空, 可能带上游 nan 脏值)
	TagExtra  string  // 附加标记 (如 "炸板")
}

// Holding 持仓条目：成本与数量，code 为键在配置里维护。
type Holding struct {
	Cost   float64 `yaml:"cost"`
	Volume int     `yaml:"volume"`
}

// PoolEntry 策略池输出行：每次复盘重新生成，生成后不再修改。
type PoolEntry struct {
	Code     string
	Name     string
	Tags     []string // 有序去重后的标签
	Amount   float64
	TodayPct float64
	Turnover float64
	OpenPct  float64
	Price    float64
	Score    int // 排序优先级, 越大越靠前
}

// TagString 标签串展示形式，'/' 连接。
func (e *PoolEntry) TagString() string { return strings.Join(e.Tags, "/") }

// DisclosureRow 龙虎榜单条席位明细：一只股票一个营业部一行，同日可多行。
type DisclosureRow struct {
	StockCode  string
	StockName  string
	BranchName string  // 营业部名称 (自由文本)
	BuyAmount  float64 // 买入金额 (元)
	SellAmount float64 // 卖出金额 (元)
}

// SeatEntry 游资席位别名：label 是人读的游资名，aliases 是其营业部名称关键字。
// 列表顺序即匹配顺序，先命中先得。
type SeatEntry struct {
	Label   string   `yaml:"label"`
	Aliases []string `yaml:"aliases"`
}

// SeatAction 席位当日动作分类。
type SeatAction int

const (
	ActionNeutral  SeatAction = iota // 双边金额都不显著
	ActionBuy                        // 净买入
	ActionSell                       // 净卖出
	ActionDayTrade                   // 双边显著且不分伯仲 (做T)
)

func (a SeatAction) String() string {
	switch a {
	case ActionBuy:
		return "买入"
	case ActionSell:
		return "卖出"
	case ActionDayTrade:
		return "做T"
	default:
		return "观望"
	}
}

// SeatHit 单条命中：一条龙虎榜明细最多产生一条 SeatHit。
type SeatHit struct {
	SeatLabel  string
	BranchName string
	StockCode  string
	StockName  string
	Action     SeatAction
	BuyAmount  float64
	SellAmount float64
}

// SeatAggregate 按 (席位, 营业部) 聚合后的当日战绩。
// 买卖列表保持首次出现顺序，不去重；做T的股票两边都记。
type SeatAggregate struct {
	SeatLabel    string
	BranchName   string
	BoughtStocks []string
	SoldStocks   []string
	HitCount     int // len(Bought)+len(Sold)
}

// SentimentSample 单个交易日的情绪样本。Date 为 YYYYMMDD, 字典序即时间序。
type SentimentSample struct {
	Date         string
	LimitUpCount int // 涨停家数
	MaxHeight    int // 最高连板高度
}

// Phase 市场情绪周期，每次从最近样本重新推导，不落库。
type Phase int

const (
	PhaseDivergence Phase = iota // 分歧期
	PhaseRising                  // 上升期
	PhaseDecline                 // 退潮期
	PhaseIcePoint                // 冰点期
)

func (p Phase) String() string {
	switch p {
	case PhaseRising:
		return "上升期"
	case PhaseDecline:
		return "退潮期"
	case PhaseIcePoint:
		return "冰点期"
	default:
		return "分歧期"
	}
}
