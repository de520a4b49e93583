// Package output_formatter 把策略池与席位战绩落成 CSV / Excel，并打印控制台简表。
package output_formatter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tiger-review/model"
)

// PrintPoolTable 控制台打印策略池简表。
func PrintPoolTable(pool []*model.PoolEntry) {
	if len(pool) == 0 {
		fmt.Println("❌ 今日策略池为空。")
		return
	}
	fmt.Printf("\n🐲 策略池 (%d 只):\n", len(pool))
	fmt.Println("代码     名称       涨幅%    成交额(亿)  换手%   标签")
	for _, e := range pool {
		fmt.Printf("%-8s %-10s %6.2f  %9.2f  %5.2f   %s\n",
			e.Code, e.Name, e.TodayPct, e.Amount/1e8, e.Turnover, e.TagString())
	}
}

// PrintSeatReport 控制台打印席位战绩。
func PrintSeatReport(aggs []*model.SeatAggregate) {
	if len(aggs) == 0 {
		fmt.Println("💤 今日未见已知游资席位。")
		return
	}
	fmt.Printf("\n🐯 游资席位追踪 (%d 个席位):\n", len(aggs))
	for _, a := range aggs {
		fmt.Printf("  [%s] %s (命中 %d)\n", a.SeatLabel, a.BranchName, a.HitCount)
		if len(a.BoughtStocks) > 0 {
			fmt.Printf("     买: %s\n", strings.Join(a.BoughtStocks, "、"))
		}
		if len(a.SoldStocks) > 0 {
			fmt.Printf("     卖: %s\n", strings.Join(a.SoldStocks, "、"))
		}
	}
}

var poolHeader = []string{"代码", "名称", "标签", "涨幅%", "成交额", "换手%", "开盘涨幅%", "现价", "优先级"}

func poolRow(e *model.PoolEntry) []string {
	return []string{
		e.Code,
		e.Name,
		e.TagString(),
		strconv.FormatFloat(e.TodayPct, 'f', 2, 64),
		strconv.FormatFloat(e.Amount, 'f', 0, 64),
		strconv.FormatFloat(e.Turnover, 'f', 2, 64),
		strconv.FormatFloat(e.OpenPct, 'f', 2, 64),
		strconv.FormatFloat(e.Price, 'f', 2, 64),
		strconv.Itoa(e.Score),
	}
}

var seatHeader = []string{"席位", "营业部", "命中数", "买入", "卖出"}

func seatRow(a *model.SeatAggregate) []string {
	return []string{
		a.SeatLabel,
		a.BranchName,
		strconv.Itoa(a.HitCount),
		strings.Join(a.BoughtStocks, "、"),
		strings.Join(a.SoldStocks, "、"),
	}
}

// WritePoolCSV 策略池落 CSV，行序即排序结果。
func WritePoolCSV(path string, pool []*model.PoolEntry) error {
	rows := [][]string{poolHeader}
	for _, e := range pool {
		rows = append(rows, poolRow(e))
	}
	return writeCSV(path, rows)
}

// WriteSeatCSV 席位战绩落 CSV。
func WriteSeatCSV(path string, aggs []*model.SeatAggregate) error {
	rows := [][]string{seatHeader}
	for _, a := range aggs {
		rows = append(rows, seatRow(a))
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteReviewXlsx 策略池与席位战绩写进同一个工作簿，便于手机上翻。
func WriteReviewXlsx(path string, pool []*model.PoolEntry, aggs []*model.SeatAggregate) error {
	f := excelize.NewFile()
	defer f.Close()

	const poolSheet = "策略池"
	const seatSheet = "席位"

	f.SetSheetName("Sheet1", poolSheet)
	if err := writeSheet(f, poolSheet, poolHeader, len(pool), func(i int) []string {
		return poolRow(pool[i])
	}); err != nil {
		return err
	}

	if _, err := f.NewSheet(seatSheet); err != nil {
		return err
	}
	if err := writeSheet(f, seatSheet, seatHeader, len(aggs), func(i int) []string {
		return seatRow(aggs[i])
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, row func(int) []string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setRow(f, sheet, i+2, row(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	vals := make([]interface{}, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	return f.SetSheetRow(sheet, cell, &vals)
}
