package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, data string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "davc_config.json")
	assert.NoError(t, os.WriteFile(f, []byte(data), 0644))
	return f
}

func TestParse(t *testing.T) {
	f := writeConfigFile(t, `{"url":"http://127.0.0.1/dav", "username":"ab", "password":"cd", "thread":8}`)
	c, err := Parse(f)
	assert.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1/dav", c.Url)
	assert.Equal(t, "ab", c.Username)
	assert.Equal(t, "cd", c.Password)
	assert.Equal(t, 8, c.Thread)
	//未显式配置的字段保留默认值
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, int64(600), c.Timeout)
}

func TestParseNotExist(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParseBadJson(t *testing.T) {
	f := writeConfigFile(t, `{bad`)
	_, err := Parse(f)
	assert.Error(t, err)
}
