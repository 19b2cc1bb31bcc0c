package multistatus

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xxxsen/davfs/entity"
	"github.com/xxxsen/davfs/fserr"
)

// HrefConvertFunc 将207响应中的href转换为归一化的逻辑路径
type HrefConvertFunc func(href string) string

// Parse 将207响应体解析为资源条目序列, 保持服务端返回的顺序。
// 单个资源自身携带失败状态时不中断整体解析, 失败项记录在broken中;
// 结构性非法的xml直接整体报错
func Parse(r io.Reader, conv HrefConvertFunc) ([]*entity.Entry, map[string]error, error) {
	body := &multistatusBody{}
	if err := xml.NewDecoder(r).Decode(body); err != nil {
		return nil, nil, fserr.Wrap(fserr.KindProtocolError, "decode multistatus body failed", err)
	}
	ents := make([]*entity.Entry, 0, len(body.Responses))
	broken := make(map[string]error)
	for _, rsp := range body.Responses {
		if len(rsp.Href) == 0 {
			continue
		}
		logic := conv(rsp.Href)
		ps, failStatus := selectPropstat(rsp.Propstats)
		if ps == nil {
			broken[logic] = fserr.MapStatus(failStatus, fserr.OpPropfind)
			continue
		}
		ents = append(ents, buildEntry(logic, ps))
	}
	return ents, broken, nil
}

// selectPropstat 多个propstat中选取成功的那个, 全部失败则返回首个失败状态。
// 服务端通常会把查不到的属性单独放进一个404的propstat, 只要存在成功的
// propstat, 该资源就视为正常
func selectPropstat(pss []*propstat) (*propstat, int) {
	failStatus := 0
	for _, ps := range pss {
		status, ok := parseStatusLine(ps.Status)
		if !ok {
			if failStatus == 0 {
				failStatus = http.StatusBadGateway
			}
			continue
		}
		if status >= 200 && status < 300 {
			return ps, 0
		}
		if failStatus == 0 {
			failStatus = status
		}
	}
	return nil, failStatus
}

// parseStatusLine 解析形如`HTTP/1.1 200 OK`的状态行, 缺失时按成功处理
func parseStatusLine(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return http.StatusOK, true
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

func buildEntry(logic string, ps *propstat) *entity.Entry {
	ent := &entity.Entry{
		Path:  logic,
		IsDir: ps.Prop.ResourceType.Collection != nil,
		Etag:  strings.TrimSpace(ps.Prop.Etag),
	}
	if !ent.IsDir {
		if sz, err := strconv.ParseInt(strings.TrimSpace(ps.Prop.ContentLength), 10, 64); err == nil {
			ent.FileSize = sz
		}
	}
	// 时间戳缺失或无法解析不影响整体结果, 置0表示未知
	if ts, err := http.ParseTime(ps.Prop.LastModified); err == nil {
		ent.Mtime = ts.UnixMilli()
	}
	return ent
}
