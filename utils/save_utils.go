package utils

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/google/uuid"
)

// SafeSaveStreamToFile 将远端下载流落到本地文件, 先写临时文件再rename覆盖,
// 中途失败不会留下半截的目标文件
func SafeSaveStreamToFile(dst string, r io.Reader) (int64, error) {
	dir := path.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create local dir failed, err:%w", err)
	}
	tmp := dst + "." + uuid.NewString() + ".davtmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("create tmp file failed, err:%w", err)
	}
	defer os.Remove(tmp)
	sz, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("save stream to tmp file failed, err:%w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close tmp file failed, err:%w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return 0, fmt.Errorf("rename tmp file to target failed, err:%w", err)
	}
	return sz, nil
}
