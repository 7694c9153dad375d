package graphql_router

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/haierkeys/trade-journal-service/pkg/timex"
)

// JSON arbitrary JSON value scalar
// JSON 任意 JSON 值标量
type JSON struct {
	Value interface{}
}

func (JSON) ImplementsGraphQLType(name string) bool {
	return name == "JSON"
}

func (j *JSON) UnmarshalGraphQL(input interface{}) error {
	j.Value = input
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if raw, ok := j.Value.(json.RawMessage); ok {
		if len(raw) == 0 {
			return []byte("null"), nil
		}
		return raw, nil
	}
	return sonic.Marshal(j.Value)
}

// Raw 编码为 JSON 文本，nil 值返回 nil
func (j *JSON) Raw() (json.RawMessage, error) {
	if j == nil || j.Value == nil {
		return nil, nil
	}
	b, err := sonic.Marshal(j.Value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func jsonValue(raw json.RawMessage) *JSON {
	if len(raw) == 0 {
		return nil
	}
	return &JSON{Value: raw}
}

// DateTime RFC3339 timestamp scalar
// DateTime RFC3339 时间标量
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case float64:
		t.Time = time.UnixMilli(int64(v))
		return nil
	}
	return fmt.Errorf("wrong type for DateTime: %T", input)
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return timex.Time(t.Time).MarshalJSON()
}

func dateTime(t timex.Time) DateTime {
	return DateTime{Time: t.Std()}
}
