package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "davc_config.json")
	data := `{"url":"http://127.0.0.1/dav", "username":"ab", "password":"cd"}`
	assert.NoError(t, os.WriteFile(f, []byte(data), 0644))
	return f
}

func TestInitContextFirstCandidateWins(t *testing.T) {
	f := writeTestConfig(t)
	ctx := &Context{}
	//第一个可解析的候选生效, 后续不存在的候选不应覆盖已解析结果
	err := initContext(ctx, []string{f, "/etc/davc/davc_config.json", ""})
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1/dav", ctx.Config.Url)
	assert.NotNil(t, ctx.NewFs)
}

func TestInitContextSkipBrokenCandidate(t *testing.T) {
	f := writeTestConfig(t)
	ctx := &Context{}
	err := initContext(ctx, []string{"", f})
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1/dav", ctx.Config.Url)
}

func TestInitContextNoCandidate(t *testing.T) {
	ctx := &Context{}
	err := initContext(ctx, []string{"", "/not/exist/davc_config.json"})
	assert.Error(t, err)
}
