package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davfs/davfs"
)

type mvArgs struct {
	src string
	dst string
}

func NewMvCmd(c *Context) *cobra.Command {
	args := &mvArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "mv",
		Short: "Move/rename a remote resource",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunMv(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.src, "src", "s", "", "remote src path")
	subc.PersistentFlags().StringVarP(&args.dst, "dst", "d", "", "remote dst path")
	return subc
}

func onRunMv(ctx context.Context, c *Context, args *mvArgs) error {
	if len(args.src) == 0 || len(args.dst) == 0 {
		return fmt.Errorf("both src and dst are required")
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		if err := fs.Move(ctx, args.src, args.dst); err != nil {
			return fmt.Errorf("move failed, src:%s, dst:%s, err:%w", args.src, args.dst, err)
		}
		return nil
	})
}

func init() {
	register(NewMvCmd)
}
