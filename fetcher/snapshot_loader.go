package fetcher

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tiger-review/data_processor"
	"tiger-review/model"
)

// 快照 CSV 列序 (行情软件导出格式)：
// 代码,名称,涨幅%,开盘涨幅%,成交额,换手%,现价,涨停,连板天,标签,附加
const (
	colCode = iota
	colName
	colTodayPct
	colOpenPct
	colAmount
	colTurnover
	colPrice
	colIsZT
	colLimitDays
	colTag
	colTagExtra
	snapshotMinCols = colLimitDays + 1 // 标签两列可缺
)

// FindSnapshotFile 在 dir 下找文件名含 date 的快照 CSV，多个时取字典序最大 (最新导出)。
func FindSnapshotFile(dir, date string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+date+"*.csv"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no snapshot for %s under %s", date, dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// LoadDailySnapshot 读取并标准化当日快照。
// 数值列全部过 NormalizeNumeric，脏值静默归零 (跑完看 DirtyCount)。
// 代码规整失败的行保留原串，后面按查不到处理，不丢行。
func LoadDailySnapshot(path string) ([]model.StockDailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // 尾列允许缺
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var records []model.StockDailyRecord
	for i, line := range lines {
		if i == 0 && isHeader(line) {
			continue
		}
		if len(line) < snapshotMinCols {
			continue
		}

		code := strings.TrimSpace(line[colCode])
		if norm, ok := data_processor.NormalizeCode(code); ok {
			code = norm
		}

		rec := model.StockDailyRecord{
			Code:      code,
			Name:      strings.TrimSpace(line[colName]),
			TodayPct:  data_processor.NormalizeNumeric(line[colTodayPct]),
			OpenPct:   data_processor.NormalizeNumeric(line[colOpenPct]),
			Amount:    data_processor.NormalizeNumeric(line[colAmount]),
			Turnover:  data_processor.NormalizeNumeric(line[colTurnover]),
			Price:     data_processor.NormalizeNumeric(line[colPrice]),
			IsZT:      parseBoolCell(line[colIsZT]),
			LimitDays: int(data_processor.NormalizeNumeric(line[colLimitDays])),
		}
		if len(line) > colTag {
			rec.Tag = strings.TrimSpace(line[colTag])
		}
		if len(line) > colTagExtra {
			rec.TagExtra = strings.TrimSpace(line[colTagExtra])
		}
		records = append(records, rec)
	}
	return records, nil
}

func isHeader(line []string) bool {
	if len(line) == 0 {
		return false
	}
	first := strings.TrimSpace(line[0])
	_, ok := data_processor.NormalizeCode(first)
	return !ok
}

func parseBoolCell(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "1" || s == "是" || strings.EqualFold(s, "true")
}
