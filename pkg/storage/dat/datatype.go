package dat

import "flexdb/pkg/types"

// DataType is the storage type of a column. Int and Float share one on-disk
// tag and are told apart by the column's decimal scale.
type DataType int

const (
	DataTypeUnknown DataType = iota
	DataTypeAscii
	DataTypeText
	DataTypeInt
	DataTypeFloat
	DataTypeDate
	DataTypeBinary
)

// dataTypeFromTag maps the type byte of a column entry.
func dataTypeFromTag(tag byte, scale uint8) DataType {
	switch tag {
	case 0:
		return DataTypeAscii
	case 1:
		if scale > 0 {
			return DataTypeFloat
		}
		return DataTypeInt
	case 2:
		return DataTypeDate
	case 5:
		return DataTypeText
	default:
		return DataTypeBinary
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeAscii:
		return "ASCII"
	case DataTypeText:
		return "TEXT"
	case DataTypeInt:
		return "INT"
	case DataTypeFloat:
		return "FLOAT"
	case DataTypeDate:
		return "DATE"
	case DataTypeBinary:
		return "BINARY"
	default:
		return "UNKNOWN"
	}
}

// EngineType is the value type the column decodes to.
func (d DataType) EngineType() types.Type {
	switch d {
	case DataTypeAscii, DataTypeText:
		return types.StringType
	case DataTypeInt:
		return types.IntType
	case DataTypeFloat:
		return types.FloatType
	case DataTypeDate:
		return types.DateType
	case DataTypeBinary:
		return types.BinaryType
	default:
		return types.NullType
	}
}
