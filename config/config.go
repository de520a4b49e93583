package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"tiger-review/model"
)

type Config struct {
	DataDir     string                   `yaml:"data_dir"`     // 行情导出 CSV 所在目录
	SentimentDB string                   `yaml:"sentiment_db"` // 情绪样本 DuckDB 文件
	Output      OutputConfig             `yaml:"output"`
	Seats       []model.SeatEntry        `yaml:"seats"`     // 游资席位别名表, 顺序即匹配顺序
	Holdings    map[string]model.Holding `yaml:"holdings"`  // code -> 持仓
	Watchlist   map[string]string        `yaml:"watchlist"` // code -> 备注 (可为空串)
	Thresholds  Thresholds               `yaml:"thresholds"`

	StartTime  time.Time
	StartTsStr string

	// 本次运行的输出文件
	PoolFile   string // 策略池 CSV
	SeatFile   string // 席位战绩 CSV
	ReviewXlsx string // 汇总 Excel
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

// Thresholds 策略阈值。这些值是长期盘感调出来的行为契约，改动前先想清楚。
type Thresholds struct {
	SeatSignificance float64 `yaml:"seat_significance"` // 席位单边显著金额, 默认 10万
	SeatDominance    float64 `yaml:"seat_dominance"`    // 单边压制比, 默认 5:1
	BigMoneyAmount   float64 `yaml:"big_money_amount"`  // 大资金主战场成交额, 默认 20亿
	IcePointHeight   int     `yaml:"ice_point_height"`  // 冰点连板高度, 默认 3
	RisingCountRatio float64 `yaml:"rising_count_ratio"` // 上升期涨停家数比, 默认 0.8
}

// DefaultSeats 内置席位别名表：config.yaml 未配置 seats 时兜底。
func DefaultSeats() []model.SeatEntry {
	return []model.SeatEntry{
		{Label: "章盟主", Aliases: []string{"国泰君安证券股份有限公司上海江苏路", "国泰君安上海江苏路"}},
		{Label: "炒股养家", Aliases: []string{"华鑫证券有限责任公司上海宛平南路", "宛平南路"}},
		{Label: "方新侠", Aliases: []string{"国盛证券有限责任公司宁波桑田路", "宁波桑田路"}},
		{Label: "佛山系", Aliases: []string{"佛山绿景路", "佛山季华", "佛山普澜"}},
		{Label: "拉萨天团", Aliases: []string{"东方财富证券股份有限公司拉萨", "拉萨东环路", "拉萨团结路"}},
		{Label: "量化打板", Aliases: []string{"华泰证券股份有限公司总部", "中国国际金融股份有限公司上海分公司"}},
	}
}

func InitOutputPath(outputPath string) error {
	cleanPath := filepath.Clean(outputPath)

	if fi, err := os.Stat(cleanPath); err == nil {
		if !fi.IsDir() {
			return fmt.Errorf("%s 已存在但不是目录", cleanPath)
		}
		return nil // 目录已存在
	}

	if err := os.MkdirAll(cleanPath, 0755); err != nil {
		return fmt.Errorf("无法创建目录 %s: %w", cleanPath, err)
	}

	return nil
}

// LoadConfig 读取 config.yaml；文件不存在时走全默认配置(内置席位表, 空持仓)。
func LoadConfig() (*Config, error) {
	var cfg Config

	f, err := os.Open("config.yaml")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		fmt.Println("⚠️ 未找到 config.yaml, 使用默认配置")
	} else {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	// init output path
	if cfg.Output.Path == "" {
		cfg.Output.Path = filepath.Join(".", "output", time.Now().Format("2006-01-02"))
	} else {
		cfg.Output.Path = filepath.Join(cfg.Output.Path, time.Now().Format("2006-01-02"))
	}
	if err := InitOutputPath(cfg.Output.Path); err != nil {
		return &cfg, err
	}

	// init file name
	cfg.StartTime = time.Now()
	cfg.StartTsStr = cfg.StartTime.Format("2006-01-02T15-04-05")
	cfg.PoolFile = filepath.Join(cfg.Output.Path, fmt.Sprintf("StrategyPool_%s.csv", cfg.StartTsStr))
	cfg.SeatFile = filepath.Join(cfg.Output.Path, fmt.Sprintf("SeatTracker_%s.csv", cfg.StartTsStr))
	cfg.ReviewXlsx = filepath.Join(cfg.Output.Path, fmt.Sprintf("DailyReview_%s.xlsx", cfg.StartTsStr))

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(".", "data")
	}
	if c.SentimentDB == "" {
		c.SentimentDB = filepath.Join(".", "sentiment.duckdb")
	}
	if len(c.Seats) == 0 {
		c.Seats = DefaultSeats()
	}
	if c.Holdings == nil {
		c.Holdings = map[string]model.Holding{}
	}
	if c.Watchlist == nil {
		c.Watchlist = map[string]string{}
	}
	t := &c.Thresholds
	if t.SeatSignificance <= 0 {
		t.SeatSignificance = 100000
	}
	if t.SeatDominance <= 0 {
		t.SeatDominance = 5.0
	}
	if t.BigMoneyAmount <= 0 {
		t.BigMoneyAmount = 2e9
	}
	if t.IcePointHeight <= 0 {
		t.IcePointHeight = 3
	}
	if t.RisingCountRatio <= 0 {
		t.RisingCountRatio = 0.8
	}
}
