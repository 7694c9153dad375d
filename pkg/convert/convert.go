// Package convert 字符串与结构体转换工具
package convert

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StrTo 字符串转换
type StrTo string

func (s StrTo) String() string {
	return string(s)
}

func (s StrTo) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(s.String()))
}

func (s StrTo) MustInt() int {
	v, _ := s.Int()
	return v
}

// Decimal 解析十进制数，保留全部精度
func (s StrTo) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s.String()))
}
