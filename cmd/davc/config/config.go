package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Url      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Thread   int    `json:"thread"`
	LogLevel string `json:"log_level"`
	Timeout  int64  `json:"timeout"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Thread:   4,
		LogLevel: "debug",
		Timeout:  600,
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal file:%w", err)
	}
	return c, nil
}
