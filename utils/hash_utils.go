package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// HashStream 计算流内容的xxhash摘要, 返回摘要与读取的字节数
func HashStream(r io.Reader) (uint64, int64, error) {
	h := xxhash.New()
	sz, err := io.Copy(h, r)
	if err != nil {
		return 0, 0, fmt.Errorf("read stream for hash failed, err:%w", err)
	}
	return h.Sum64(), sz, nil
}

func HashFile(p string) (uint64, int64, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, 0, fmt.Errorf("open file for hash failed, err:%w", err)
	}
	defer f.Close()
	return HashStream(f)
}
