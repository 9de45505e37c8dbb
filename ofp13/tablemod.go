package ofp13

import "encoding/binary"

const tableModLen = 8

// TableMod configures flow-table eviction/vacancy behavior for a table.
type TableMod struct {
	TableID uint8
	Config  uint32
}

func (TableMod) Len() uint16 { return tableModLen }

func (t TableMod) MarshalBinary() ([]byte, error) {
	data := make([]byte, tableModLen)
	data[0] = t.TableID
	binary.BigEndian.PutUint32(data[4:8], t.Config)
	return data, nil
}

func (t *TableMod) UnmarshalBinary(data []byte) error {
	if len(data) != tableModLen {
		return &InvalidSliceLengthError{Expected: tableModLen, Actual: len(data), Kind: "TableMod"}
	}
	t.TableID = data[0]
	t.Config = binary.BigEndian.Uint32(data[4:8])
	return nil
}
