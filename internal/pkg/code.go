package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// RandUID 生成 6 位公开 uid，首位不为 0（100000-999999）
func RandUID() (string, error) {
	first, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(9))
	if err != nil {
		return "", err
	}
	rest, err := RandDigits(5)
	if err != nil {
		return "", err
	}
	return string(byte('1'+first.Int64())) + rest, nil
}
