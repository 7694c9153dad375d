package middleware

import (
	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 根据 lang 参数或请求头选择校验信息翻译器
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}
		lang = code.NormalizeLang(lang)

		// universal-translator 中文 locale 名为 zh
		locale := "en"
		if lang == code.LangZH {
			locale = "zh"
		}
		trans, found := uni.GetTranslator(locale)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		if lang != "" {
			_ = code.SetGlobalDefaultLang(lang)
		}
		c.Next()
	}
}
