package limiter

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter 按请求路径前缀限流
type MethodLimiter struct {
	*Limiter
	prefixes []string
}

func NewMethodLimiter() Face {
	return &MethodLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 返回最长匹配的路径前缀，/api 分组前缀会被忽略
func (l *MethodLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	trimmed := strings.TrimPrefix(path, "/api")
	for _, p := range l.prefixes {
		if strings.HasPrefix(path, p) || strings.HasPrefix(trimmed, p) {
			return p
		}
	}
	return ""
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; ok {
			continue
		}
		l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		l.prefixes = append(l.prefixes, rule.Key)
	}
	sort.Slice(l.prefixes, func(i, j int) bool { return len(l.prefixes[i]) > len(l.prefixes[j]) })
	return l
}
