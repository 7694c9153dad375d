// Package idgen 集中生成各类标识符：行主键使用 UUID，对外可见的参与者/账户编号使用 Snowflake，
// 会话与分享链接使用按时间有序的 ULID
package idgen

import (
	"crypto/rand"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

var (
	mu      sync.Mutex
	node    *snowflake.Node
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// Init 设置 Snowflake 节点号（0-1023），多实例部署时每个实例应不同
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return errors.Wrapf(err, "init snowflake node %d", nodeID)
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// Snowflake 返回字符串形式的 Snowflake ID，未初始化时使用节点 1
func Snowflake() string {
	mu.Lock()
	if node == nil {
		node, _ = snowflake.NewNode(1)
	}
	n := node
	mu.Unlock()
	return n.Generate().String()
}

// UUID 返回随机 UUID
func UUID() string {
	return uuid.NewString()
}

// ULID 返回单调递增的 ULID
func ULID() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// IsUUID 判断字符串是否为合法 UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
