// Package data_processor 提供字段标准化与情绪样本存储，所有原始输入先过这里再进核心逻辑。
package data_processor

import (
	"math"
	"strconv"
	"strings"
)

// 中文数量级后缀
const (
	suffixWan = "万" // ×1e4
	suffixYi  = "亿" // ×1e8
)

// dirtyCount 记录被静默替换为 0 的脏字段数量，跑完一轮后报出来做离线核对。
var dirtyCount int

func DirtyCount() int  { return dirtyCount }
func ResetDirtyCount() { dirtyCount = 0 }

// NormalizeNumeric 把行情软件导出的杂字段转成 float64：
// 去掉 %、千分位、空白，识别 万/亿 后缀并乘数量级；
// 占位符 "--"、空串、"nan" 和解析失败一律得 0，绝不报错。
// 0 兜底是有意为之：坏数据不挡流程，宁可错当成零再人工核对。
func NormalizeNumeric(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "--" || strings.EqualFold(s, "nan") {
		dirtyCount++
		return 0
	}

	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	mult := 1.0
	if strings.HasSuffix(s, suffixWan) {
		mult = 1e4
		s = strings.TrimSuffix(s, suffixWan)
	} else if strings.HasSuffix(s, suffixYi) {
		mult = 1e8
		s = strings.TrimSuffix(s, suffixYi)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		dirtyCount++
		return 0
	}
	return v * mult
}

// NormalizeCode 把带交易所前缀的代码规整为 6 位：去掉所有非数字字符后左补零。
// 规整失败 (没有数字或超过 6 位) 返回 ok=false，调用方按「查不到」处理，不报错。
func NormalizeCode(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" || len(digits) > 6 {
		return "", false
	}
	return strings.Repeat("0", 6-len(digits)) + digits, true
}
