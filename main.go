package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tiger-review/config"
	"tiger-review/core/market_sentiment"
	"tiger-review/core/seat_tracker"
	"tiger-review/core/strategy_pool"
	"tiger-review/data_processor"
	"tiger-review/fetcher"
	"tiger-review/model"
	"tiger-review/output_formatter"
)

var (
	dateFlag     = flag.String("date", "", "复盘日期 YYYYMMDD, 默认今天")
	scheduleFlag = flag.Bool("schedule", false, "常驻模式: 工作日 15:10 自动复盘")
	seatsOnly    = flag.Bool("seats-only", false, "只跑龙虎榜席位追踪")

	sentimentWindow = flag.Int("window", 10, "情绪窗口样本数")
)

// cron 表达式: 工作日 15:10 (盘后龙虎榜已出)
const scheduleSpec = "10 15 * * MON-FRI"

func main() {
	fmt.Println(`
  _____ ___ ____ _____ ____      ____  _______     _____ _______        __
 |_   _|_ _/ ___| ____|  _ \    |  _ \| ____\ \   / /_ _| ____\ \      / /
   | |  | | |  _|  _| | |_) |   | |_) |  _|  \ \ / / | ||  _|  \ \ /\ / /
   | |  | | |_| | |___|  _ <    |  _ <| |___  \ V /  | || |___  \ V  V /
   |_| |___\____|_____|_| \_\   |_| \_\_____|  \_/  |___|_____|  \_/\_/
   龙虎复盘: 情绪周期 + 策略池 + 游资席位
	`)

	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("⚠️ 加载 config.yaml 失败: %v\n", err)
		return
	}

	if *scheduleFlag {
		runScheduler(cfg)
		return
	}

	date := *dateFlag
	if date == "" {
		date = time.Now().Format("20060102")
	}
	runReview(cfg, date)
}

// runScheduler 常驻模式：工作日收盘后自动跑当日复盘。
func runScheduler(cfg *config.Config) {
	c := cron.New()
	_, err := c.AddFunc(scheduleSpec, func() {
		// 每次重新 LoadConfig, 输出目录要跟着日期走
		dayCfg, err := config.LoadConfig()
		if err != nil {
			log.Printf("⚠️ 调度加载配置失败: %v", err)
			return
		}
		runReview(dayCfg, time.Now().Format("20060102"))
	})
	if err != nil {
		fmt.Printf("❌ 调度注册失败: %v\n", err)
		return
	}
	fmt.Printf("⏰ 调度模式启动: %s\n", scheduleSpec)
	c.Run()
}

func runReview(cfg *config.Config, date string) {
	start := time.Now()
	data_processor.ResetDirtyCount()
	fmt.Printf("📅 复盘日期: %s\n", date)

	var pool []*model.PoolEntry
	if !*seatsOnly {
		reviewSentiment(cfg, date)
		pool = reviewStrategyPool(cfg, date)
	}
	aggs := reviewSeats(cfg, date)

	if !*seatsOnly {
		if err := output_formatter.WriteReviewXlsx(cfg.ReviewXlsx, pool, aggs); err != nil {
			fmt.Printf("⚠️ 汇总 Excel 写盘失败: %v\n", err)
		} else {
			fmt.Printf("✅ 汇总 Excel 已写入: %s\n", cfg.ReviewXlsx)
		}
	}

	if n := data_processor.DirtyCount(); n > 0 {
		fmt.Printf("⚠️ 本轮有 %d 个脏字段被归零, 建议核对原始导出\n", n)
	}
	fmt.Printf("🏁 复盘完成, 耗时 %s\n", time.Since(start).Round(time.Millisecond))
}

// reviewSentiment 拉当日涨停池入库，再用滚动窗口判周期。
func reviewSentiment(cfg *config.Config, date string) {
	fmt.Println("\n🌡️ [Step 1] 情绪周期判定...")

	store, err := data_processor.NewSentimentStore(cfg.SentimentDB)
	if err != nil {
		fmt.Printf("⚠️ 情绪库打开失败: %v\n", err)
		return
	}
	defer store.Close()

	sample, err := fetcher.FetchLimitUpSample(date)
	if err != nil {
		fmt.Printf("⚠️ 涨停池拉取失败 (非交易日?): %v\n", err)
	} else {
		fmt.Printf("   -> 涨停 %d 家, 最高 %d 板\n", sample.LimitUpCount, sample.MaxHeight)
		if err := store.SaveSample(sample); err != nil {
			fmt.Printf("⚠️ 情绪样本入库失败: %v\n", err)
		}
	}

	history, err := store.RecentSamples(*sentimentWindow)
	if err != nil {
		fmt.Printf("⚠️ 情绪窗口读取失败: %v\n", err)
		return
	}

	engine := market_sentiment.NewEngine(cfg.Thresholds.IcePointHeight, cfg.Thresholds.RisingCountRatio)
	phase := engine.DeterminePhase(history)
	fmt.Printf("   -> 当前周期: %s\n", phase)
	fmt.Printf("   -> %s\n", market_sentiment.StrategySuggestion(phase))
}

// reviewStrategyPool 读当日快照，跑入池规则，落盘，返回池子给汇总表用。
func reviewStrategyPool(cfg *config.Config, date string) []*model.PoolEntry {
	fmt.Println("\n🐲 [Step 2] 策略池分类...")

	path, err := fetcher.FindSnapshotFile(cfg.DataDir, date)
	if err != nil {
		fmt.Printf("⚠️ 找不到当日快照: %v\n", err)
		return nil
	}
	records, err := fetcher.LoadDailySnapshot(path)
	if err != nil {
		fmt.Printf("⚠️ 快照解析失败: %v\n", err)
		return nil
	}
	fmt.Printf("   -> 快照 %s, 共 %d 行\n", path, len(records))

	pool := strategy_pool.Classify(records, strategy_pool.Inputs{
		Holdings:       normalizedHoldings(cfg),
		Watchlist:      normalizedWatchlist(cfg),
		BigMoneyAmount: cfg.Thresholds.BigMoneyAmount,
	})
	output_formatter.PrintPoolTable(pool)

	if err := output_formatter.WritePoolCSV(cfg.PoolFile, pool); err != nil {
		fmt.Printf("⚠️ 策略池写盘失败: %v\n", err)
	} else {
		fmt.Printf("✅ 策略池已写入: %s\n", cfg.PoolFile)
	}
	return pool
}

// normalizedHoldings 配置里的代码可能带交易所前缀, 统一规整成 6 位再给分类器。
func normalizedHoldings(cfg *config.Config) map[string]model.Holding {
	out := make(map[string]model.Holding, len(cfg.Holdings))
	for code, h := range cfg.Holdings {
		if norm, ok := data_processor.NormalizeCode(code); ok {
			out[norm] = h
		}
	}
	return out
}

func normalizedWatchlist(cfg *config.Config) map[string]string {
	out := make(map[string]string, len(cfg.Watchlist))
	for code, note := range cfg.Watchlist {
		if norm, ok := data_processor.NormalizeCode(code); ok {
			out[norm] = note
		}
	}
	return out
}

// reviewSeats 拉当日龙虎榜明细，认游资席位，落盘。
func reviewSeats(cfg *config.Config, date string) []*model.SeatAggregate {
	fmt.Println("\n🐯 [Step 3] 游资席位追踪...")

	rows, err := fetcher.FetchDisclosureRows(date)
	if err != nil {
		fmt.Printf("⚠️ 龙虎榜拉取失败: %v\n", err)
	}
	if len(rows) == 0 {
		fmt.Println("   -> 当日无席位明细")
		return nil
	}
	fmt.Printf("   -> 席位明细 %d 条\n", len(rows))

	matcher := seat_tracker.NewMatcher(cfg.Seats, cfg.Thresholds.SeatSignificance, cfg.Thresholds.SeatDominance)
	aggs := matcher.MatchSeats(rows)
	output_formatter.PrintSeatReport(aggs)

	if err := output_formatter.WriteSeatCSV(cfg.SeatFile, aggs); err != nil {
		fmt.Printf("⚠️ 席位战绩写盘失败: %v\n", err)
	} else {
		fmt.Printf("✅ 席位战绩已写入: %s\n", cfg.SeatFile)
	}
	return aggs
}
