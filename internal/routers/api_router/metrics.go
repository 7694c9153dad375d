package api_router

import (
	"expvar"
	"net/http"

	"github.com/haierkeys/trade-journal-service/internal/app"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// Expvar 导出 expvar 运行时指标（memstats、cmdline 以及 worker pool / write queue 状态）
func Expvar(c *gin.Context) {
	vars := make(map[string]interface{})
	expvar.Do(func(kv expvar.KeyValue) {
		vars[kv.Key] = sonicRaw(kv.Value.String())
	})
	c.JSON(http.StatusOK, vars)
}

type sonicRaw string

func (r sonicRaw) MarshalJSON() ([]byte, error) {
	return []byte(r), nil
}

// PublishRuntimeVars 将 worker pool 与 write queue 的指标注册为 expvar
// expvar 名称全局唯一，重复调用只注册一次
func PublishRuntimeVars(a *app.App) {
	publishOnce(a, "worker_pool", func() interface{} { return a.WorkerPool().GetMetrics() })
	publishOnce(a, "write_queue", func() interface{} { return a.WriteQueueManager().GetMetrics() })
}

func publishOnce(a *app.App, name string, f func() interface{}) {
	if expvar.Get(name) != nil {
		return
	}
	expvar.Publish(name, expvar.Func(func() interface{} {
		out, err := sonic.Marshal(f())
		if err != nil {
			a.Logger().Warn("expvar marshal failed")
			return nil
		}
		return sonicRaw(out)
	}))
}
