package convert

import (
	"time"

	"github.com/haierkeys/trade-journal-service/pkg/timex"

	"github.com/jinzhu/copier"
)

// timeConverters 领域模型 time.Time 到 DTO timex.Time 的转换
var timeConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: timex.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return timex.Time(src.(time.Time)), nil
		},
	},
}

// Copy 按同名字段把 src 复制到 dst，time.Time 字段转换为 timex.Time
func Copy(dst, src interface{}) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		DeepCopy:   true,
		Converters: timeConverters,
	})
}
