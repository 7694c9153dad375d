package util

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString 生成指定长度的随机字母数字串（crypto/rand），用于生成默认密钥
func GetRandomString(length int) string {
	b := make([]byte, length)
	limit := big.NewInt(int64(len(randomCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}

// GetSecureToken 生成 URL 安全的随机令牌，用于 OAuth state 等场景
func GetSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
