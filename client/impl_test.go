package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
	length int64
	body   []byte
}

func newRecordServer(rec *recordedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		rec.length = r.ContentLength
		rec.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestPropfindRequest(t *testing.T) {
	rec := &recordedRequest{}
	svr := newRecordServer(rec)
	defer svr.Close()
	trans, err := New(WithAuth("alice", "secret"))
	assert.NoError(t, err)
	rsp, err := trans.Propfind(context.Background(), svr.URL+"/dav/x/", 1)
	assert.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, "PROPFIND", rec.method)
	assert.Equal(t, "/dav/x/", rec.path)
	assert.Equal(t, "1", rec.header.Get("Depth"))
	assert.Contains(t, string(rec.body), "allprop")
	//basic认证头
	user, pass, ok := (&http.Request{Header: rec.header}).BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "secret", pass)
}

func TestMoveRequest(t *testing.T) {
	rec := &recordedRequest{}
	svr := newRecordServer(rec)
	defer svr.Close()
	trans, err := New()
	assert.NoError(t, err)
	rsp, err := trans.Move(context.Background(), svr.URL+"/a.txt", svr.URL+"/b.txt", false)
	assert.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, "MOVE", rec.method)
	assert.Equal(t, svr.URL+"/b.txt", rec.header.Get("Destination"))
	assert.Equal(t, "F", rec.header.Get("Overwrite"))
}

func TestPutRequest(t *testing.T) {
	rec := &recordedRequest{}
	svr := newRecordServer(rec)
	defer svr.Close()
	trans, err := New()
	assert.NoError(t, err)
	rsp, err := trans.Put(context.Background(), svr.URL+"/a.json", 5, strings.NewReader("hello"))
	assert.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "hello", string(rec.body))
	assert.Contains(t, rec.header.Get("Content-Type"), "application/json")
	assert.Equal(t, int64(5), rec.length)
}

func TestMkcolDeleteRequest(t *testing.T) {
	rec := &recordedRequest{}
	svr := newRecordServer(rec)
	defer svr.Close()
	trans, err := New()
	assert.NoError(t, err)
	rsp, err := trans.Mkcol(context.Background(), svr.URL+"/newdir/")
	assert.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, "MKCOL", rec.method)
	assert.Equal(t, "/newdir/", rec.path)
	rsp, err = trans.Delete(context.Background(), svr.URL+"/newdir/")
	assert.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, http.MethodDelete, rec.method)
}

func TestBuildHttpClientIsolation(t *testing.T) {
	a := buildHttpClient(applyOpts(WithTimeout(time.Second)))
	b := buildHttpClient(applyOpts(WithTimeout(time.Second)))
	//带超时的实例各自持有独立连接池, 互相Close不会串
	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Transport, b.Transport)
	assert.NotSame(t, defaultHttpClient.Transport, a.Transport)
	//未配置超时时共享默认client
	assert.Same(t, defaultHttpClient, buildHttpClient(applyOpts()))
}
