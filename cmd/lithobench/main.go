package main

import (
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	plog "github.com/lithodb/lithodb/log"

	logrus "github.com/sirupsen/logrus"

	"github.com/lithodb/lithodb/common"
	"github.com/lithodb/lithodb/conf"
	"github.com/lithodb/lithodb/errors"
	"github.com/lithodb/lithodb/kv"
	"github.com/lithodb/lithodb/metrics"
	"github.com/lithodb/lithodb/metrics/prometheus"
	"github.com/lithodb/lithodb/sharder"
	"github.com/lithodb/lithodb/table"
)

type arguments struct {
	Rows        int         `help:"Number of rows to load" default:"100000"`
	Selectivity float64     `help:"Fraction of rows the filter keeps" default:"0.5"`
	Store       conf.Config `help:"Store configuration" embed:""`
	Log         plog.Config `help:"Configuration for the logger" embed:"" prefix:"log-"`
}

func main() {
	defer common.PanicHandler()
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg := arguments{}
	parser, err := kong.New(&cfg)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err = parser.Parse(args); err != nil {
		return errors.WithStack(err)
	}
	if err := cfg.Log.Configure(); err != nil {
		return err
	}
	if err := cfg.Store.Validate(); err != nil {
		return err
	}

	store, err := kv.NewPebbleKV(cfg.Store.DataDir)
	if err != nil {
		return err
	}
	defer store.Close() //nolint: errcheck

	rowsLoaded := metrics.Counter(metrics.NoopCounter{})
	rowsScanned := metrics.Counter(metrics.NoopCounter{})
	if cfg.Store.EnableMetrics {
		factory := prometheus.NewFactory(cfg.Store)
		if err := factory.Start(); err != nil {
			return err
		}
		defer factory.Stop() //nolint: errcheck
		if rowsLoaded, err = factory.CreateCounter("litho_rows_loaded_total", "Rows loaded into the store"); err != nil {
			return err
		}
		if rowsScanned, err = factory.CreateCounter("litho_rows_scanned_total", "Rows scanned out of the store"); err != nil {
			return err
		}
	}

	tableInfo := benchTableInfo()
	shr := sharder.NewSharder(cfg.Store.NumShards)

	loadStart := time.Now()
	for i := 0; i < cfg.Rows; i++ {
		if err := table.Upsert(tableInfo, benchRow(i), shr, store); err != nil {
			return err
		}
		rowsLoaded.Inc()
	}
	logrus.Infof("loaded %d rows in %s", cfg.Rows, time.Since(loadStart))

	scanner := table.NewScanner(tableInfo, store, shr.ShardIDs(), cfg.Store.ScanBatchSize)
	scanner.SetRowsScannedCounter(rowsScanned)

	scanStart := time.Now()
	scanned, kept, nullNames := 0, 0, 0
	for {
		batch, err := scanner.NextBatch()
		if err != nil {
			return err
		}
		if batch.RowCount() == 0 {
			break
		}
		scanned += batch.RowCount()

		// Filter on the amount column, then decode only the name column for
		// the surviving rows. The id and ts columns stay encoded throughout.
		amounts, err := batch.EnsureColumnDecoded(1, time.UTC, tableInfo.Columns[1])
		if err != nil {
			return err
		}
		threshold := cfg.Selectivity
		batch.RetainByIndex(func(rowIndex int) bool {
			if amounts.IsNull(rowIndex) {
				return false
			}
			return amounts.Float64Value(rowIndex) < threshold
		})
		kept += batch.RowCount()

		names, err := batch.EnsureColumnDecoded(3, time.UTC, tableInfo.Columns[3])
		if err != nil {
			return err
		}
		for i := 0; i < names.Len(); i++ {
			if names.IsNull(i) {
				nullNames++
			}
		}
	}
	elapsed := time.Since(scanStart)
	logrus.Infof("scanned %d rows in %s (%.0f rows/s), filter kept %d, %d null names",
		scanned, elapsed, float64(scanned)/elapsed.Seconds(), kept, nullNames)
	return nil
}

func benchTableInfo() *common.TableInfo {
	return &common.TableInfo{
		ID:             1,
		SchemaName:     "bench",
		Name:           "payments",
		PrimaryKeyCols: []int{0},
		Columns: []*common.ColumnInfo{
			{ID: 1, Name: "id", ColumnType: common.BigIntColumnType},
			{ID: 2, Name: "amount", ColumnType: common.DoubleColumnType, Nullable: true},
			{ID: 3, Name: "ts", ColumnType: common.TimestampColumnType, Nullable: true},
			{ID: 4, Name: "name", ColumnType: common.VarcharColumnType, Nullable: true},
		},
	}
}

func benchRow(i int) [][]byte {
	cells := make([][]byte, 4)
	cells[0] = common.EncodeIntDatum(nil, int64(i), true)
	if i%10 == 0 {
		// Absent amount, resolved to NULL at decode time.
		cells[1] = nil
	} else {
		cells[1] = common.EncodeFloat64Datum(nil, float64(i%1000)/1000)
	}
	cells[2] = common.EncodeTimestampDatum(nil, time.Unix(int64(i), 0), false)
	if i%7 == 0 {
		cells[3] = nil
	} else {
		cells[3] = common.EncodeStringDatum(nil, "payment-"+time.Unix(int64(i), 0).UTC().Format("20060102"), false)
	}
	return cells
}
