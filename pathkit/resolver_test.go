package pathkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/davfs/fserr"
)

func TestAbs(t *testing.T) {
	r, err := NewResolver("http://127.0.0.1:8080/dav")
	assert.NoError(t, err)
	tests := []struct {
		workdir string
		in      string
		want    string
	}{
		{"/", "a.txt", "/a.txt"},
		{"/", "/a.txt", "/a.txt"},
		{"/", "/", "/"},
		{"/", "", "/"},
		{"/test", "a.txt", "/test/a.txt"},
		{"/test", "/a.txt", "/a.txt"},
		{"/test", "./a.txt", "/test/a.txt"},
		{"/test", "../a.txt", "/a.txt"},
		{"/a/b", "c//d///e", "/a/b/c/d/e"},
		{"/a/b", "./.././c", "/a/c"},
	}
	for _, tt := range tests {
		got, err := r.Abs(tt.workdir, tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAbsIdempotent(t *testing.T) {
	r, err := NewResolver("http://127.0.0.1:8080")
	assert.NoError(t, err)
	for _, p := range []string{"a.txt", "/a/b/../c", "./x//y", "/", "中文/文件.txt"} {
		first, err := r.Abs("/wrk", p)
		assert.NoError(t, err)
		second, err := r.Abs("/wrk", first)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestAbsEscapeRoot(t *testing.T) {
	r, err := NewResolver("http://127.0.0.1:8080/dav")
	assert.NoError(t, err)
	for _, p := range []string{"/..", "../..", "/a/../../b", ".."} {
		_, err := r.Abs("/", p)
		assert.Error(t, err)
		assert.True(t, fserr.IsKind(err, fserr.KindInvalidPath))
	}
}

func TestResolve(t *testing.T) {
	r, err := NewResolver("http://127.0.0.1:8080/dav/")
	assert.NoError(t, err)
	uri, err := r.Resolve("/", "a.txt", false)
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/dav/a.txt", uri)
	//目录uri固定带结尾分隔符
	uri, err = r.Resolve("/", "x", true)
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/dav/x/", uri)
	uri, err = r.Resolve("/", "/", true)
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/dav/", uri)
	//保留字符与非ascii需要百分号编码
	uri, err = r.Resolve("/", "a b#c.txt", false)
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/dav/a%20b%23c.txt", uri)
}

func TestToLogical(t *testing.T) {
	r, err := NewResolver("http://127.0.0.1:8080/dav")
	assert.NoError(t, err)
	assert.Equal(t, "/x", r.ToLogical("/dav/x/"))
	assert.Equal(t, "/x/y.txt", r.ToLogical("/dav/x/y.txt"))
	assert.Equal(t, "/", r.ToLogical("/dav/"))
	assert.Equal(t, "/a b.txt", r.ToLogical("/dav/a%20b.txt"))
	assert.Equal(t, "/x", r.ToLogical("http://127.0.0.1:8080/dav/x/"))
	//base前缀只在整段匹配时才剥离
	assert.Equal(t, "/davother/x", r.ToLogical("/davother/x"))
	assert.Equal(t, "/", r.ToLogical("/dav"))
}
