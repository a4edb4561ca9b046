package qview

import "strings"

// DataType is the type of a catalog column, normalized from the names
// information_schema reports. Unknown types pass through verbatim so catalog
// ingestion never discards information.
type DataType string

const (
	TypeBoolean     DataType = "boolean"
	TypeSmallInt    DataType = "smallint"
	TypeInteger     DataType = "integer"
	TypeBigInt      DataType = "bigint"
	TypeNumeric     DataType = "numeric"
	TypeReal        DataType = "real"
	TypeDouble      DataType = "double precision"
	TypeChar        DataType = "char"
	TypeVarChar     DataType = "varchar"
	TypeText        DataType = "text"
	TypeBytea       DataType = "bytea"
	TypeDate        DataType = "date"
	TypeTime        DataType = "time"
	TypeTimestamp   DataType = "timestamp"
	TypeTimestampTZ DataType = "timestamptz"
	TypeInterval    DataType = "interval"
	TypeUUID        DataType = "uuid"
	TypeJSON        DataType = "json"
	TypeInet        DataType = "inet"
	TypeArray       DataType = "array"
)

func (d DataType) String() string {
	return string(d)
}

// dataTypeOf maps an information_schema data_type value to a DataType.
func dataTypeOf(raw string) DataType {
	switch strings.ToUpper(raw) {
	case "BOOL", "BOOLEAN":
		return TypeBoolean
	case "SMALLINT", "INT2", "SMALLSERIAL", "SERIAL2":
		return TypeSmallInt
	case "INTEGER", "INT", "INT4", "SERIAL", "SERIAL4":
		return TypeInteger
	case "BIGINT", "INT8", "BIGSERIAL", "SERIAL8":
		return TypeBigInt
	case "NUMERIC", "DECIMAL":
		return TypeNumeric
	case "REAL", "FLOAT4":
		return TypeReal
	case "DOUBLE PRECISION", "DOUBLE", "FLOAT8":
		return TypeDouble
	case "CHARACTER", "CHAR":
		return TypeChar
	case "CHARACTER VARYING", "VARCHAR", "NVARCHAR":
		return TypeVarChar
	case "TEXT":
		return TypeText
	case "BYTEA":
		return TypeBytea
	case "DATE":
		return TypeDate
	case "TIME", "TIME WITHOUT TIME ZONE", "TIMETZ", "TIME WITH TIME ZONE":
		return TypeTime
	case "TIMESTAMP", "TIMESTAMP WITHOUT TIME ZONE":
		return TypeTimestamp
	case "TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE":
		return TypeTimestampTZ
	case "INTERVAL":
		return TypeInterval
	case "UUID":
		return TypeUUID
	case "JSON", "JSONB":
		return TypeJSON
	case "INET", "CIDR":
		return TypeInet
	case "ARRAY":
		return TypeArray
	default:
		return DataType(raw)
	}
}
