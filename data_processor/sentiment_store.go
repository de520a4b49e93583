package data_processor

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/marcboeker/go-duckdb"

	"tiger-review/model"
)

// SentimentStore 用 DuckDB 存每日情绪样本 (涨停家数 + 最高连板高度)，
// 给情绪周期引擎提供滚动窗口。
type SentimentStore struct {
	DB *sql.DB
}

// NewSentimentStore 打开情绪库。path 为空时用内存库 (测试用)。
func NewSentimentStore(path string) (*SentimentStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sentiment_daily (
			trade_date VARCHAR,
			limit_up_count INTEGER,
			max_height INTEGER
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table failed: %w", err)
	}

	log.Printf("🦆 情绪库已连接: %s", path)
	return &SentimentStore{DB: db}, nil
}

func (s *SentimentStore) Close() error {
	return s.DB.Close()
}

// SaveSample 写入单日样本。同一天重复写入覆盖旧值 (盘后数据会修正)。
func (s *SentimentStore) SaveSample(sample model.SentimentSample) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM sentiment_daily WHERE trade_date = ?", sample.Date)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("clear old sample failed: %w", err)
	}

	_, err = tx.Exec("INSERT INTO sentiment_daily (trade_date, limit_up_count, max_height) VALUES (?, ?, ?)",
		sample.Date, sample.LimitUpCount, sample.MaxHeight)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert sample failed: %w", err)
	}

	return tx.Commit()
}

// RecentSamples 返回最近 n 个样本，按日期升序 (周期引擎要求的顺序)。
// 非交易日不会有样本，日期允许跳空。
func (s *SentimentStore) RecentSamples(n int) ([]model.SentimentSample, error) {
	rows, err := s.DB.Query(`
		SELECT trade_date, limit_up_count, max_height
		FROM sentiment_daily
		ORDER BY trade_date DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query samples failed: %w", err)
	}
	defer rows.Close()

	var desc []model.SentimentSample
	for rows.Next() {
		var sm model.SentimentSample
		if err := rows.Scan(&sm.Date, &sm.LimitUpCount, &sm.MaxHeight); err != nil {
			return nil, err
		}
		desc = append(desc, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 倒序翻回升序
	out := make([]model.SentimentSample, 0, len(desc))
	for i := len(desc) - 1; i >= 0; i-- {
		out = append(out, desc[i])
	}
	return out, nil
}
