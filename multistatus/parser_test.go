package multistatus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/davfs/fserr"
	"github.com/xxxsen/davfs/pathkit"
)

const apacheStyleBody = `<?xml version="1.0" encoding="utf-8"?>
<D:multistatus xmlns:D="DAV:" xmlns:ns0="DAV:">
<D:response xmlns:lp2="http://apache.org/dav/props/" xmlns:lp1="DAV:">
<D:href>/ciao/</D:href>
<D:propstat>
<D:prop>
<lp1:resourcetype><D:collection/></lp1:resourcetype>
<lp1:getlastmodified>Sat, 02 Mar 2024 15:44:46 GMT</lp1:getlastmodified>
<lp1:getetag>"1a-612af5f3d72b2"</lp1:getetag>
<D:getcontenttype>httpd/unix-directory</D:getcontenttype>
</D:prop>
<D:status>HTTP/1.1 200 OK</D:status>
</D:propstat>
</D:response>
<D:response xmlns:lp2="http://apache.org/dav/props/" xmlns:lp1="DAV:">
<D:href>/ciao/pippo/</D:href>
<D:propstat>
<D:prop>
<lp1:resourcetype><D:collection/></lp1:resourcetype>
<lp1:getlastmodified>Sat, 02 Mar 2024 15:40:53 GMT</lp1:getlastmodified>
<lp1:getetag>"0-612af5150498f"</lp1:getetag>
</D:prop>
<D:status>HTTP/1.1 200 OK</D:status>
</D:propstat>
</D:response>
<D:response xmlns:lp2="http://apache.org/dav/props/" xmlns:lp1="DAV:">
<D:href>/ciao/build.log</D:href>
<D:propstat>
<D:prop>
<lp1:resourcetype/>
<lp1:getcontentlength>486</lp1:getcontentlength>
<lp1:getlastmodified>Sat, 02 Mar 2024 15:44:46 GMT</lp1:getlastmodified>
<lp1:getetag>"1e6-612af5f3d72b2"</lp1:getetag>
</D:prop>
<D:status>HTTP/1.1 200 OK</D:status>
</D:propstat>
</D:response>
</D:multistatus>`

func testConv(t *testing.T) HrefConvertFunc {
	r, err := pathkit.NewResolver("http://127.0.0.1:8080")
	assert.NoError(t, err)
	return r.ToLogical
}

func TestParse(t *testing.T) {
	ents, broken, err := Parse(strings.NewReader(apacheStyleBody), testConv(t))
	assert.NoError(t, err)
	assert.Len(t, broken, 0)
	assert.Len(t, ents, 3)

	assert.Equal(t, "/ciao", ents[0].Path)
	assert.True(t, ents[0].IsDir)
	assert.Equal(t, int64(0), ents[0].FileSize)
	assert.NotZero(t, ents[0].Mtime)
	assert.Equal(t, `"1a-612af5f3d72b2"`, ents[0].Etag)

	assert.Equal(t, "/ciao/pippo", ents[1].Path)
	assert.True(t, ents[1].IsDir)

	assert.Equal(t, "/ciao/build.log", ents[2].Path)
	assert.False(t, ents[2].IsDir)
	assert.Equal(t, int64(486), ents[2].FileSize)
}

func TestParseLowercasePrefix(t *testing.T) {
	body := `<?xml version="1.0"?>
<d:multistatus xmlns:d="DAV:">
<d:response>
<d:href>/a.txt</d:href>
<d:propstat>
<d:prop><d:resourcetype/><d:getcontentlength>5</d:getcontentlength></d:prop>
<d:status>HTTP/1.1 200 OK</d:status>
</d:propstat>
</d:response>
</d:multistatus>`
	ents, broken, err := Parse(strings.NewReader(body), testConv(t))
	assert.NoError(t, err)
	assert.Len(t, broken, 0)
	assert.Len(t, ents, 1)
	assert.Equal(t, "/a.txt", ents[0].Path)
	assert.Equal(t, int64(5), ents[0].FileSize)
	//时间戳缺失不影响整体结果
	assert.Equal(t, int64(0), ents[0].Mtime)
}

func TestParsePartialFailure(t *testing.T) {
	body := `<?xml version="1.0"?>
<D:multistatus xmlns:D="DAV:">
<D:response>
<D:href>/dir/</D:href>
<D:propstat>
<D:prop><D:resourcetype><D:collection/></D:resourcetype></D:prop>
<D:status>HTTP/1.1 200 OK</D:status>
</D:propstat>
</D:response>
<D:response>
<D:href>/dir/secret.txt</D:href>
<D:propstat>
<D:prop/>
<D:status>HTTP/1.1 403 Forbidden</D:status>
</D:propstat>
</D:response>
</D:multistatus>`
	ents, broken, err := Parse(strings.NewReader(body), testConv(t))
	assert.NoError(t, err)
	assert.Len(t, ents, 1)
	assert.Len(t, broken, 1)
	assert.True(t, fserr.IsKind(broken["/dir/secret.txt"], fserr.KindPermissionDenied))
}

func TestParseMixedPropstat(t *testing.T) {
	//查不到的属性单独放进404的propstat, 不影响资源本身
	body := `<?xml version="1.0"?>
<D:multistatus xmlns:D="DAV:">
<D:response>
<D:href>/a.txt</D:href>
<D:propstat>
<D:prop><D:resourcetype/><D:getcontentlength>7</D:getcontentlength></D:prop>
<D:status>HTTP/1.1 200 OK</D:status>
</D:propstat>
<D:propstat>
<D:prop><D:displayname/></D:prop>
<D:status>HTTP/1.1 404 Not Found</D:status>
</D:propstat>
</D:response>
</D:multistatus>`
	ents, broken, err := Parse(strings.NewReader(body), testConv(t))
	assert.NoError(t, err)
	assert.Len(t, broken, 0)
	assert.Len(t, ents, 1)
	assert.Equal(t, int64(7), ents[0].FileSize)
}

func TestParseMalformed(t *testing.T) {
	_, _, err := Parse(strings.NewReader(`<D:multistatus xmlns:D="DAV:"><D:resp`), testConv(t))
	assert.Error(t, err)
	assert.True(t, fserr.IsKind(err, fserr.KindProtocolError))
}
