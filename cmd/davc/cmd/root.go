package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/davfs/cmd/davc/config"
	"github.com/xxxsen/davfs/davfs"
)

const (
	defaultConfigFileEnv = "DAVC_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Config *config.Config
	// NewFs 创建一条独立会话, 并行传输的场景下每个worker单独建一条
	NewFs func() (davfs.IRemoteFs, error)
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		c, err = config.Parse(cfg)
		if err != nil {
			continue
		}
		//命中第一个可解析的候选项即停止, 后续候选不再覆盖
		break
	}
	if c == nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	ctx.NewFs = func() (davfs.IRemoteFs, error) {
		return davfs.New(
			davfs.WithURL(c.Url),
			davfs.WithAuth(c.Username, c.Password),
			davfs.WithTimeout(time.Duration(c.Timeout)*time.Second),
		)
	}
	return nil
}

// withSession 建连执行业务逻辑并保证断开
func withSession(ctx context.Context, c *Context, fn func(fs davfs.IRemoteFs) error) error {
	fs, err := c.NewFs()
	if err != nil {
		return fmt.Errorf("build fs failed, err:%w", err)
	}
	if err := fs.Connect(ctx); err != nil {
		return fmt.Errorf("connect failed, err:%w", err)
	}
	defer fs.Disconnect(ctx)
	return fn(fs)
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:   "davc",
		Short: "webdav remote filesystem CLI tool",
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, "/etc/davc/davc_config.json", envConfigFile})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
