package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// UintPtr 返回指向 v 的指针，v 为 0 时返回 nil
func UintPtr(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}
