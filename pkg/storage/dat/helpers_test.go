package dat

import (
	"time"

	"flexdb/pkg/storage/dat/dattest"
)

var customerCreated = time.Date(2021, time.March, 14, 0, 0, 0, 0, time.UTC)

// customerTable has columns ID(4) BALANCE(6, scale 2) CREATED(3)
// NOTES(12 text) NAME(20 ascii) at offsets 1, 5, 11, 14, 26. Its record
// length is 64 in the legacy layout and the 45-byte span in the current one.
func customerTable(current bool) *dattest.Table {
	tbl := &dattest.Table{
		Current:  current,
		RootName: "CUSTOMER",
		Columns: []dattest.Column{
			{Name: "ID", Tag: dattest.TagNumeric, Length: 4, MainIndex: 1},
			{Name: "BALANCE", Tag: dattest.TagNumeric, Length: 6, Scale: 2},
			{Name: "CREATED", Tag: dattest.TagDate, Length: 3},
			{Name: "NOTES", Tag: dattest.TagText, Length: 12},
			{Name: "NAME", Tag: dattest.TagAscii, Length: 20, RelatedFile: 3, RelatedField: 2},
		},
		Indexes: []dattest.Index{
			{Columns: []byte{1}},
			{Batch: true, Columns: []byte{5, 1}, Collation: 2},
		},
	}
	tbl.Records = [][]byte{
		tbl.Record(
			dattest.Int(1234, 4),
			dattest.Decimal(1234, 50, 6, 2),
			dattest.Date(customerCreated, 3),
			dattest.Text("vip", 12),
			dattest.Ascii("Acme Corp", 20),
		),
		tbl.Record(
			dattest.Int(-7, 4),
			dattest.Decimal(-12, 5, 6, 2),
			dattest.Packed(0, 3),
			dattest.Text("", 12),
			dattest.Ascii("Globex", 20),
		),
	}
	return tbl
}
