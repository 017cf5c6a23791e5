package excel

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Row is one parsed spreadsheet row: a header-to-value mapping that keeps
// the header order of the sheet. A plain map would shuffle columns every
// time a row is serialized.
type Row struct {
	keys   []string
	values map[string]any
}

func (r *Row) Set(key string, value any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the column headers in sheet order.
func (r *Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Row) Len() int {
	return len(r.keys)
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so key order survives the
// round trip through the database.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("excel: row must be a JSON object, got %v", tok)
	}

	r.keys = nil
	r.values = map[string]any{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("excel: unexpected key token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Set(key, normalize(value))
	}
	_, err = dec.Token() // closing brace
	return err
}

// normalize folds json.Number back into the float64 representation the
// parser produces, so stored rows compare equal to freshly parsed ones.
func normalize(value any) any {
	num, ok := value.(json.Number)
	if !ok {
		return value
	}
	f, err := num.Float64()
	if err != nil {
		return num.String()
	}
	return f
}

// Rows is the parsed content of one sheet, persisted as a JSON column.
type Rows []Row

func (rs Rows) Value() (driver.Value, error) {
	if rs == nil {
		return "[]", nil
	}
	data, err := json.Marshal(rs)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (rs *Rows) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*rs = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("excel: cannot scan %T into Rows", src)
	}
	if len(data) == 0 {
		*rs = nil
		return nil
	}
	return json.Unmarshal(data, rs)
}
