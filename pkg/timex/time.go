// Package timex 提供数据库与 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Layout JSON 输出格式
const Layout = time.RFC3339

// Time 包装 time.Time，统一数据库读写与 JSON 序列化
type Time time.Time

// Now 当前时间
func Now() Time {
	return Time(time.Now())
}

// Std 返回标准库时间
func (t Time) Std() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// MarshalJSON 零值输出 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := parse(s)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer，统一以 UTC 写入以保证字符串存储时可比较
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t).UTC(), nil
}

// Scan 实现 sql.Scanner，兼容 sqlite 以字符串返回时间的情况
func (t *Time) Scan(v interface{}) error {
	switch val := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(val)
	case string:
		parsed, err := parse(val)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case []byte:
		parsed, err := parse(string(val))
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case int64:
		*t = Time(time.Unix(val, 0))
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
	return nil
}

// GormDBDataType 按方言返回列类型
func (Time) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "timestamptz"
	case "mysql":
		return "datetime(3)"
	default:
		return "datetime"
	}
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if parsed, err := time.Parse(l, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timex: unrecognised time %q", s)
}
