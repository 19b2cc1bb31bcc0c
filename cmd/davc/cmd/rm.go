package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davfs/davfs"
)

type rmArgs struct {
	location  string
	isDir     bool
	recursive bool
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "rm",
		Short: "Remove a remote file or directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunRm(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.location, "path", "p", "", "remote path to remove")
	subc.PersistentFlags().BoolVarP(&args.isDir, "dir", "d", false, "target is a directory")
	subc.PersistentFlags().BoolVarP(&args.recursive, "recursive", "r", false, "remove directory recursively")
	return subc
}

func onRunRm(ctx context.Context, c *Context, args *rmArgs) error {
	if len(args.location) == 0 {
		return fmt.Errorf("no remote path found")
	}
	return withSession(ctx, c, func(fs davfs.IRemoteFs) error {
		var err error
		switch {
		case args.recursive:
			err = fs.RemoveDirAll(ctx, args.location)
		case args.isDir:
			err = fs.RemoveDir(ctx, args.location)
		default:
			err = fs.RemoveFile(ctx, args.location)
		}
		if err != nil {
			return fmt.Errorf("remove failed, path:%s, err:%w", args.location, err)
		}
		return nil
	})
}

func init() {
	register(NewRmCmd)
}
