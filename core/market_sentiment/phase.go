// Package market_sentiment 从涨停家数与连板高度的短窗口里判市场情绪周期。
package market_sentiment

import "tiger-review/model"

const (
	DefaultIcePointHeight = 3   // 最高板高度不超过该值视为冰点
	DefaultRisingRatio    = 0.8 // 涨停家数不低于前日 80% 才确认上升

	declineHeightCeiling = 5 // 高度回落且低于该值判退潮
	phaseWindow          = 3 // 只看最近 3 个样本
)

// Engine 情绪周期引擎。阈值注入，样本由外部喂 (已过滤到交易日, 允许跳空)。
type Engine struct {
	icePointHeight int
	risingRatio    float64
}

func NewEngine(icePointHeight int, risingRatio float64) *Engine {
	if icePointHeight <= 0 {
		icePointHeight = DefaultIcePointHeight
	}
	if risingRatio <= 0 {
		risingRatio = DefaultRisingRatio
	}
	return &Engine{icePointHeight: icePointHeight, risingRatio: risingRatio}
}

// DeterminePhase 判定当前周期。history 按日期升序，只取最近 ≤3 个。
// 冰点判定优先于上升：高度贴地时哪怕比前日抬了也算冰点 (2->3 仍是冰点)。
// 样本不足 2 个时不强判，默认分歧。
func (e *Engine) DeterminePhase(history []model.SentimentSample) model.Phase {
	if n := len(history); n > phaseWindow {
		history = history[n-phaseWindow:]
	}
	if len(history) < 2 {
		return model.PhaseDivergence
	}

	latest := history[len(history)-1]
	prev := history[len(history)-2]

	switch {
	case latest.MaxHeight <= e.icePointHeight:
		return model.PhaseIcePoint
	case latest.MaxHeight > prev.MaxHeight &&
		float64(latest.LimitUpCount) >= e.risingRatio*float64(prev.LimitUpCount):
		return model.PhaseRising
	case latest.MaxHeight < prev.MaxHeight && latest.MaxHeight < declineHeightCeiling:
		return model.PhaseDecline
	default:
		return model.PhaseDivergence
	}
}

// StrategySuggestion 周期话术表，纯展示用。
func StrategySuggestion(p model.Phase) string {
	switch p {
	case model.PhaseRising:
		return "🚀 上升期: 情绪走强，可沿最高板与换手龙做接力"
	case model.PhaseDecline:
		return "🛑 退潮期: 亏钱效应扩散，空仓或仅留底仓观望"
	case model.PhaseIcePoint:
		return "❄️ 冰点期: 高度贴地，留意新题材首板低吸"
	default:
		return "⚖️ 分歧期: 高低切换频繁，控制仓位只做龙头"
	}
}
