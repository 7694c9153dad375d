package util

import (
	"strings"
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/convert"
)

// ParseDuration parses duration string, supports 'd' (day) suffix
// ParseDuration 解析时间字符串，支持 'd' (天) 后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := convert.StrTo(daysStr).Int()
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	// If it is pure numbers, default to seconds
	// 如果是纯数字，默认为秒
	if _, err := convert.StrTo(s).Int(); err == nil {
		s += "s"
	}
	return time.ParseDuration(s)
}

// DurationOr parses s and returns fallback when s is empty or invalid
// DurationOr 解析 s，为空或格式错误时返回 fallback
func DurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// LongDate formats t the way plan templates print dates, e.g. "Monday, March 4, 2024"
// LongDate 按计划模板的日期格式输出
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
