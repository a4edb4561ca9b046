package qview

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

type (
	nullString  struct{ sql.NullString }
	nullBool    struct{ sql.NullBool }
	nullInt64   struct{ sql.NullInt64 }
	nullInt32   struct{ sql.NullInt32 }
	nullFloat64 struct{ sql.NullFloat64 }
	nullTime    struct{ sql.NullTime }
)

func (s nullString) String() string {
	if s.Valid {
		return s.NullString.String
	}
	return "NULL"
}

func (b nullBool) String() string {
	if b.Valid {
		return strconv.FormatBool(b.Bool)
	}
	return "NULL"
}

func (i nullInt64) String() string {
	if i.Valid {
		return strconv.FormatInt(i.Int64, 10)
	}
	return "NULL"
}

func (i nullInt32) String() string {
	if i.Valid {
		return strconv.FormatInt(int64(i.Int32), 10)
	}
	return "NULL"
}

func (f nullFloat64) String() string {
	if f.Valid {
		return strconv.FormatFloat(f.Float64, 'g', -1, 64)
	}
	return "NULL"
}

func (t nullTime) String() string {
	if t.Valid {
		return t.Time.String()
	}
	return "NULL"
}

type nullInt16 struct {
	Int16 int16
	Valid bool
}

func (i *nullInt16) Scan(v interface{}) error {
	switch rv := v.(type) {
	case nil:
		i.Int16 = 0
		i.Valid = false
		return nil

	case int64:
		i.Int16 = int16(rv)
		i.Valid = true
		return nil

	default:
		return fmt.Errorf("unexpected type '%T'", v)
	}
}

func (i nullInt16) String() string {
	if i.Valid {
		return strconv.FormatInt(int64(i.Int16), 10)
	}
	return "NULL"
}

type nullFloat32 struct {
	Float32 float32
	Valid   bool
}

func (f *nullFloat32) Scan(v interface{}) error {
	switch rv := v.(type) {
	case nil:
		f.Float32 = 0
		f.Valid = false
		return nil

	case float64:
		f.Float32 = float32(rv)
		f.Valid = true
		return nil

	default:
		return fmt.Errorf("unexpected type '%T'", v)
	}
}

func (f nullFloat32) String() string {
	if f.Valid {
		return strconv.FormatFloat(float64(f.Float32), 'g', -1, 32)
	}
	return "NULL"
}

type nullValue struct{}

func (nullValue) String() string {
	return "NULL"
}

type uuidVal struct {
	UUID  uuid.UUID
	Valid bool
}

func (v *uuidVal) Scan(raw interface{}) error {
	if raw == nil {
		v.UUID = uuid.UUID{}
		v.Valid = false
		return nil
	}

	if err := v.UUID.Scan(raw); err != nil {
		return err
	}
	v.Valid = true
	return nil
}

func (v uuidVal) String() string {
	if !v.Valid {
		return "NULL"
	}
	return v.UUID.String()
}
