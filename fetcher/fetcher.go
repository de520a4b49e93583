// Package fetcher 负责拉外部数据：东财涨停池、龙虎榜席位明细，以及本地行情导出快照。
// 网络失败不炸流程，返回错误由调用方决定跳过哪一步。
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"tiger-review/data_processor"
	"tiger-review/model"
)

// 东方财富接口
const (
	ztPoolURL     = "http://push2ex.eastmoney.com/getTopicZTPool?ut=7eea3edcaed734bea9cbfc24409ed989&dpt=wz.ztzt&Pageindex=0&pagesize=500&sort=fbt%%3Aasc&date=%s"
	billboardURL  = "https://datacenter-web.eastmoney.com/api/data/v1/get?reportName=%s&columns=ALL&sortColumns=SECURITY_CODE&pageSize=%d&pageNumber=%d&filter=(TRADE_DATE%%3D%%27%s%%27)"
	billboardPage = 500

	// 买卖两份榜单都要拉: 只在卖方前五出现的席位不在买方榜里
	billboardBuyReport  = "RPT_BILLBOARD_DAILYDETAILSBUY"
	billboardSellReport = "RPT_BILLBOARD_DAILYDETAILSSELL"
)

const httpTimeout = 10 * time.Second

func fetchBody(url string) ([]byte, error) {
	client := http.Client{Timeout: httpTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FetchLimitUpSample 拉某日涨停池，汇总成当日情绪样本 (涨停家数 + 最高连板高度)。
// date 格式 YYYYMMDD。非交易日涨停池为空，返回错误让调用方跳过。
func FetchLimitUpSample(date string) (model.SentimentSample, error) {
	body, err := fetchBody(fmt.Sprintf(ztPoolURL, date))
	if err != nil {
		return model.SentimentSample{}, fmt.Errorf("fetch zt pool: %w", err)
	}
	return ParseLimitUpPool(body, date)
}

// ParseLimitUpPool 解析涨停池响应。lbc 字段是连板数。
func ParseLimitUpPool(body []byte, date string) (model.SentimentSample, error) {
	pool := gjson.GetBytes(body, "data.pool")
	if !pool.Exists() {
		return model.SentimentSample{}, fmt.Errorf("zt pool empty for %s", date)
	}

	sample := model.SentimentSample{Date: date}
	for _, item := range pool.Array() {
		sample.LimitUpCount++
		if h := int(item.Get("lbc").Int()); h > sample.MaxHeight {
			sample.MaxHeight = h
		}
	}
	return sample, nil
}

// FetchDisclosureRows 拉某日龙虎榜席位买卖明细。date 格式 YYYYMMDD。
// 买方榜和卖方榜各翻一遍再合并: 每行都带完整的买卖金额，
// 同一只票同一个席位在两份榜里重复出现时只留一条。
func FetchDisclosureRows(date string) ([]model.DisclosureRow, error) {
	tradeDate, err := time.Parse("20060102", date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", date, err)
	}
	dateStr := tradeDate.Format("2006-01-02")

	var rows []model.DisclosureRow
	for _, report := range []string{billboardBuyReport, billboardSellReport} {
		for page := 1; ; page++ {
			body, err := fetchBody(fmt.Sprintf(billboardURL, report, billboardPage, page, dateStr))
			if err != nil {
				return rows, fmt.Errorf("fetch %s page %d: %w", report, page, err)
			}
			pageRows, pages := ParseDisclosurePage(body)
			rows = append(rows, pageRows...)
			if page >= pages {
				break
			}
		}
	}
	return MergeDisclosureRows(rows), nil
}

// MergeDisclosureRows 按 (代码, 席位) 去重，保留首次出现的行，顺序不变。
func MergeDisclosureRows(rows []model.DisclosureRow) []model.DisclosureRow {
	seen := make(map[string]bool, len(rows))
	merged := rows[:0:0]
	for _, row := range rows {
		key := row.StockCode + "|" + row.BranchName
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, row)
	}
	return merged
}

// ParseDisclosurePage 解析单页席位明细，返回本页行与总页数。
// 代码统一规整成 6 位；规整不了的保留原串 (后面自然匹配不上任何名单)。
func ParseDisclosurePage(body []byte) ([]model.DisclosureRow, int) {
	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return nil, 0
	}

	var rows []model.DisclosureRow
	for _, item := range result.Get("data").Array() {
		code := item.Get("SECURITY_CODE").String()
		if norm, ok := data_processor.NormalizeCode(code); ok {
			code = norm
		}
		rows = append(rows, model.DisclosureRow{
			StockCode:  code,
			StockName:  item.Get("SECURITY_NAME_ABBR").String(),
			BranchName: item.Get("OPERATEDEPT_NAME").String(),
			BuyAmount:  item.Get("BUY").Float(),
			SellAmount: item.Get("SELL").Float(),
		})
	}
	return rows, int(result.Get("pages").Int())
}
