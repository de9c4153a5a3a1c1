package export

import (
	"io"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Schema is the Arrow schema of t. Float columns are nullable; NaN is
// written as null.
func (t Table) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for i, c := range t.Columns {
		typ := arrow.DataType(arrow.PrimitiveTypes.Float64)
		if c.Strings != nil {
			typ = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: c.Name, Type: typ, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func writeArrow(w io.Writer, t Table) error {
	mem := memory.NewGoAllocator()
	schema := t.Schema()

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i, c := range t.Columns {
		switch fb := b.Field(i).(type) {
		case *array.StringBuilder:
			fb.AppendValues(c.Strings, nil)
		case *array.Float64Builder:
			valid := make([]bool, len(c.Floats))
			for j, v := range c.Floats {
				valid[j] = !math.IsNaN(v)
			}
			fb.AppendValues(c.Floats, valid)
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return err
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}
