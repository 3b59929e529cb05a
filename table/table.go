package table

import (
	"encoding/binary"

	"github.com/lithodb/lithodb/common"
	"github.com/lithodb/lithodb/errors"
	"github.com/lithodb/lithodb/kv"
	"github.com/lithodb/lithodb/metrics"
	"github.com/lithodb/lithodb/sharder"
)

// Row keys are shard_id|table_id|pk, all big endian, so one shard's rows for
// one table are contiguous in the store. The primary key portion is the
// concatenation of the comparable-encoded datums of the PK columns.
//
// Row values are the raw datums of every column in column order, each
// prefixed with its uvarint length. A zero length cell means the value is
// absent for that column and is resolved to the column default or NULL when
// the column is decoded.

func EncodeRowKey(shardID uint64, tableID uint64, pk []byte) []byte {
	buffer := make([]byte, 0, 16+len(pk))
	buffer = common.AppendUint64ToBufferBE(buffer, shardID)
	buffer = common.AppendUint64ToBufferBE(buffer, tableID)
	return append(buffer, pk...)
}

func TableKeyPrefix(shardID uint64, tableID uint64) []byte {
	buffer := make([]byte, 0, 16)
	buffer = common.AppendUint64ToBufferBE(buffer, shardID)
	return common.AppendUint64ToBufferBE(buffer, tableID)
}

func EncodeRowValue(buffer []byte, cells [][]byte) []byte {
	for _, cell := range cells {
		buffer = common.AppendUvarintToBuffer(buffer, uint64(len(cell)))
		buffer = append(buffer, cell...)
	}
	return buffer
}

func DecodeRowValue(buffer []byte, columnCount int) ([][]byte, error) {
	cells := make([][]byte, 0, columnCount)
	offset := 0
	for offset < len(buffer) {
		l, n := binary.Uvarint(buffer[offset:])
		if n <= 0 {
			return nil, errors.NewInvalidDatumError("malformed cell length in row value")
		}
		offset += n
		if offset+int(l) > len(buffer) {
			return nil, errors.NewInvalidDatumError("truncated cell in row value")
		}
		cells = append(cells, buffer[offset:offset+int(l)])
		offset += int(l)
	}
	if len(cells) != columnCount {
		return nil, errors.Errorf("row value has %d cells, table has %d columns", len(cells), columnCount)
	}
	return cells, nil
}

// PrimaryKey builds the key portion for a row from its PK cells. PK cells
// must be present and must use the comparable datum encodings.
func PrimaryKey(tableInfo *common.TableInfo, cells [][]byte) ([]byte, error) {
	var pk []byte
	for _, colIndex := range tableInfo.PrimaryKeyCols {
		cell := cells[colIndex]
		if len(cell) == 0 {
			return nil, errors.Errorf("primary key column %d has no value", colIndex)
		}
		pk = append(pk, cell...)
	}
	return pk, nil
}

// Upsert writes one row, routed to its shard by the hash of the primary key.
func Upsert(tableInfo *common.TableInfo, cells [][]byte, shr *sharder.Sharder, store kv.KV) error {
	if len(cells) != tableInfo.ColumnCount() {
		return errors.Errorf("row has %d cells, table %s has %d columns", len(cells), tableInfo.Name, tableInfo.ColumnCount())
	}
	pk, err := PrimaryKey(tableInfo, cells)
	if err != nil {
		return err
	}
	shardID := shr.CalculateShard(sharder.ShardTypeHash, pk)
	key := EncodeRowKey(shardID, tableInfo.ID, pk)
	value := EncodeRowValue(nil, cells)
	return store.Put(key, value)
}

// Scanner reads a table's rows back out of the store, shard by shard, as raw
// lazy batches. Columns stay encoded until an operator asks for them.
type Scanner struct {
	tableInfo   *common.TableInfo
	store       kv.KV
	shardIDs    []uint64
	batchSize   int
	shardIndex  int
	nextKey     []byte
	rowsScanned metrics.Counter
}

func NewScanner(tableInfo *common.TableInfo, store kv.KV, shardIDs []uint64, batchSize int) *Scanner {
	return &Scanner{
		tableInfo:   tableInfo,
		store:       store,
		shardIDs:    shardIDs,
		batchSize:   batchSize,
		rowsScanned: metrics.NoopCounter{},
	}
}

// SetRowsScannedCounter makes the scanner count every row it reads.
func (s *Scanner) SetRowsScannedCounter(counter metrics.Counter) {
	s.rowsScanned = counter
}

// NextBatch returns the next batch of up to batchSize raw rows. A batch with
// zero rows means the table is exhausted.
func (s *Scanner) NextBatch() (*common.LazyRows, error) {
	rows := common.NewLazyRows(s.tableInfo.ColumnCount(), s.batchSize)
	for s.shardIndex < len(s.shardIDs) && rows.RowCount() < s.batchSize {
		prefix := TableKeyPrefix(s.shardIDs[s.shardIndex], s.tableInfo.ID)
		start := s.nextKey
		if start == nil {
			start = prefix
		}
		end := common.IncrementBytesBigEndian(prefix)
		remaining := s.batchSize - rows.RowCount()
		pairs, err := s.store.Scan(start, end, remaining)
		if err != nil {
			rows.SetError(err)
			return nil, err
		}
		for _, pair := range pairs {
			cells, err := DecodeRowValue(pair.Value, s.tableInfo.ColumnCount())
			if err != nil {
				// A row that does not decode means the store is corrupt.
				lerr := common.LogInternalError(errors.Wrapf(err, "corrupt row for key %v in %s", pair.Key, s.tableInfo))
				rows.SetError(lerr)
				return nil, lerr
			}
			rows.PushRawRow(cells)
			s.rowsScanned.Inc()
		}
		if len(pairs) < remaining {
			// Shard exhausted, move to the next one.
			s.shardIndex++
			s.nextKey = nil
			continue
		}
		// Resume after the last key seen. Appending a zero byte gives the
		// immediate successor key.
		last := pairs[len(pairs)-1].Key
		s.nextKey = append(common.CopyByteSlice(last), 0)
	}
	return rows, nil
}
