package utils

import (
	"errors"
	"strings"

	"github.com/speps/go-hashids/v2"
)

func newHashID(salt string) (*hashids.HashID, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	return hashids.NewWithData(hd)
}

// GenHashID 把内部 int64 ID 编码为对外展示的短编号
func GenHashID(salt string, id int64) string {
	h, err := newHashID(salt)
	if err != nil {
		return ""
	}
	e, _ := h.EncodeInt64([]int64{id})
	return e
}

// DecodeHashID GenHashID 的逆操作
func DecodeHashID(salt string, code string) (int64, error) {
	h, err := newHashID(salt)
	if err != nil {
		return 0, err
	}
	ids, err := h.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, errors.New("invalid code")
	}
	return ids[0], nil
}

// NormalizeAddress 钱包地址统一转小写
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// IsHexAddress 0x 开头的 40 位十六进制
func IsHexAddress(addr string) bool {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return false
	}
	for _, r := range addr[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
