// Package fileurl 文件路径相关的辅助函数
package fileurl

import (
	"os"
	"path/filepath"
)

// IsFile determines if the given path is an existing regular file
// IsFile 判断所给路径是否为已存在的文件
func IsFile(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !s.IsDir()
}

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of file dst
// CreatePath 创建文件 dst 所在的目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// WriteIfMissing 文件不存在时创建目录并写入内容，返回是否写入
func WriteIfMissing(dst string, content []byte, perm os.FileMode) (bool, error) {
	if IsExist(dst) {
		return false, nil
	}
	if err := CreatePath(dst, os.ModePerm); err != nil {
		return false, err
	}
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if _, err := f.Write(content); err != nil {
		return false, err
	}
	return true, nil
}

// FirstExisting 返回候选路径中第一个存在的文件
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if IsFile(c) {
			return c, true
		}
	}
	return "", false
}
