package entity

import "path"

// Entry 描述远端的一个文件或者目录节点, 每次调用都从服务端重新拉取, 不做本地缓存
type Entry struct {
	Path     string `json:"path"` //逻辑路径, 归一化后的绝对路径
	IsDir    bool   `json:"is_dir"`
	FileSize int64  `json:"file_size"` //目录场景下恒为0
	Mtime    int64  `json:"mtime"`     //unix毫秒时间戳, 0表示服务端未提供或无法解析
	Etag     string `json:"etag,omitempty"`
}

func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// ListResult 一次目录枚举的结果, 207响应中单个子项失败不影响其他子项,
// 失败项的路径与映射后的错误记录在Broken中
type ListResult struct {
	Entries []*Entry
	Broken  map[string]error
}
