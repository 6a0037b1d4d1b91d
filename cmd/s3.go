package cmd

import (
	"fmt"
	"time"

	"aisgo/s3compat"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// s3Cmd groups commands that reach the cluster through its S3-compatibility
// endpoint instead of the native API
var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Talk to the cluster over its S3-compatibility endpoint",
}

var s3Prefix string

var s3LsCmd = &cobra.Command{
	Use:   "ls [bucket]",
	Short: "List buckets, or the objects of one bucket, over the S3 API",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg := loadEnv()

		s3c, err := s3compat.NewClient(cfg.S3)
		if err != nil {
			logg.Fatal("Failed to create s3 client", zap.Error(err))
		}

		if len(args) == 0 {
			buckets, err := s3c.ListBuckets(cmd.Context())
			if err != nil {
				logg.Fatal("Failed to list buckets", zap.Error(err))
			}
			for _, bck := range buckets {
				fmt.Printf("%s  %s\n", bck.CreationDate.Format(time.RFC3339), bck.Name)
			}
			return
		}

		opts := minio.ListObjectsOptions{Prefix: s3Prefix, Recursive: true}
		for obj := range s3c.ListObjects(cmd.Context(), args[0], opts) {
			if obj.Err != nil {
				logg.Fatal("Failed to list objects", zap.Error(obj.Err))
			}
			fmt.Printf("%-10s %s\n", humanize.IBytes(uint64(obj.Size)), obj.Key)
		}
	},
}

func init() {
	s3LsCmd.Flags().StringVar(&s3Prefix, "prefix", "", "only list objects with this key prefix")

	s3Cmd.AddCommand(s3LsCmd)
	RootCmd.AddCommand(s3Cmd)
}
