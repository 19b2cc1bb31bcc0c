package multistatus

import "encoding/xml"

// 客户端侧的207响应模型, 通过命名空间限定标签匹配,
// 兼容服务端使用任意前缀(D:/d:/lp1:)的场景
type multistatusBody struct {
	XMLName   xml.Name    `xml:"DAV: multistatus"`
	Responses []*response `xml:"response"`
}

type response struct {
	Href      string      `xml:"href"`
	Propstats []*propstat `xml:"propstat"`
}

type propstat struct {
	Prop   prop   `xml:"prop"`
	Status string `xml:"status"`
}

type prop struct {
	DisplayName   string       `xml:"displayname"`
	ResourceType  resourceType `xml:"resourcetype"`
	ContentLength string       `xml:"getcontentlength"`
	LastModified  string       `xml:"getlastmodified"`
	Etag          string       `xml:"getetag"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}
