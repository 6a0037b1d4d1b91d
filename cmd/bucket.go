package cmd

import (
	"fmt"
	"sort"

	"aisgo/ais"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bucketCmd groups all bucket-level operations
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage cluster buckets",
}

var (
	bucketProvider string
	bucketWait     bool

	lsPrefix   string
	lsProps    string
	lsPageSize int

	cpPrefix     string
	cpDryRun     bool
	cpForce      bool
	cpToProvider string

	etlName   string
	etlExt    map[string]string
	evictKeep bool
)

var bucketCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new bucket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))

		if err := bck.Create(cmd.Context()); err != nil {
			logg.Fatal("Failed to create bucket", zap.Error(err))
		}
		fmt.Printf("Created bucket %s\n", bck.Name())
	},
}

var bucketRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Destroy a bucket and all of its objects",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))

		if err := bck.Delete(cmd.Context()); err != nil {
			logg.Fatal("Failed to delete bucket", zap.Error(err))
		}
		fmt.Printf("Deleted bucket %s\n", args[0])
	},
}

var bucketMvCmd = &cobra.Command{
	Use:   "mv [name] [new-name]",
	Short: "Rename a bucket",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0])

		jobID, err := bck.Rename(cmd.Context(), args[1])
		if err != nil {
			logg.Fatal("Failed to rename bucket", zap.Error(err))
		}
		fmt.Printf("Rename started, job %s\n", jobID)
		if bucketWait {
			waitForJob(cmd, client, logg, jobID)
		}
	},
}

var bucketEvictCmd = &cobra.Command{
	Use:   "evict [name]",
	Short: "Evict a remote bucket's cached objects",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))

		if err := bck.Evict(cmd.Context(), evictKeep); err != nil {
			logg.Fatal("Failed to evict bucket", zap.Error(err))
		}
		fmt.Printf("Evicted bucket %s\n", args[0])
	},
}

var bucketLsCmd = &cobra.Command{
	Use:   "ls [name]",
	Short: "List buckets, or the objects of one bucket",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()

		if len(args) == 0 {
			bcks, err := client.ListBuckets(cmd.Context(), ais.Provider(bucketProvider))
			if err != nil {
				logg.Fatal("Failed to list buckets", zap.Error(err))
			}
			for _, bck := range bcks {
				fmt.Printf("%s://%s\n", bck.Provider, bck.Name)
			}
			return
		}

		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))
		it := bck.ListObjectsIter(cmd.Context(), lsPrefix, lsProps, lsPageSize)
		count := 0
		for it.Next() {
			entry := it.Value()
			fmt.Printf("%-10s %s\n", humanize.IBytes(uint64(entry.Size)), entry.Name)
			count++
		}
		if err := it.Err(); err != nil {
			logg.Fatal("Failed to list objects", zap.Error(err))
		}
		fmt.Printf("Total: %d\n", count)
	},
}

var bucketCpCmd = &cobra.Command{
	Use:   "cp [name] [dest-name]",
	Short: "Copy a bucket's objects into another bucket",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))
		dst := ais.Bck{Name: args[1], Provider: ais.Provider(cpToProvider)}

		jobID, err := bck.Copy(cmd.Context(), dst, &ais.CopyBckMsg{
			Prefix: cpPrefix,
			DryRun: cpDryRun,
			Force:  cpForce,
		})
		if err != nil {
			logg.Fatal("Failed to copy bucket", zap.Error(err))
		}
		fmt.Printf("Copy started, job %s\n", jobID)
		if bucketWait {
			waitForJob(cmd, client, logg, jobID)
		}
	},
}

var bucketTransformCmd = &cobra.Command{
	Use:   "transform [name] [dest-name]",
	Short: "Transform a bucket's objects into another bucket through an ETL",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))
		dst := ais.Bck{Name: args[1], Provider: ais.Provider(cpToProvider)}

		jobID, err := bck.Transform(cmd.Context(), etlName, dst, &ais.TransformBckMsg{
			Prefix: cpPrefix,
			DryRun: cpDryRun,
			Force:  cpForce,
			Ext:    etlExt,
		})
		if err != nil {
			logg.Fatal("Failed to transform bucket", zap.Error(err))
		}
		fmt.Printf("Transform started, job %s\n", jobID)
		if bucketWait {
			waitForJob(cmd, client, logg, jobID)
		}
	},
}

var bucketHeadCmd = &cobra.Command{
	Use:   "head [name]",
	Short: "Show a bucket's properties",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(bucketProvider)))

		header, err := bck.Head(cmd.Context())
		if err != nil {
			logg.Fatal("Failed to head bucket", zap.Error(err))
		}

		keys := make([]string, 0, len(header))
		for k := range header {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-24s %s\n", k, header.Get(k))
		}
	},
}

func init() {
	bucketCmd.PersistentFlags().StringVar(&bucketProvider, "provider", "ais", "bucket backend provider")

	bucketLsCmd.Flags().StringVar(&lsPrefix, "prefix", "", "only list objects with this name prefix")
	bucketLsCmd.Flags().StringVar(&lsProps, "props", "", "object properties to request")
	bucketLsCmd.Flags().IntVar(&lsPageSize, "page-size", 0, "listing page size (0 = cluster default)")

	bucketEvictCmd.Flags().BoolVar(&evictKeep, "keep-md", false, "keep the bucket metadata on the cluster")

	for _, c := range []*cobra.Command{bucketCpCmd, bucketTransformCmd} {
		c.Flags().StringVar(&cpPrefix, "prefix", "", "only act on objects with this name prefix")
		c.Flags().BoolVar(&cpDryRun, "dry-run", false, "report what would happen without doing it")
		c.Flags().BoolVar(&cpForce, "force", false, "run even when a conflicting job is running")
		c.Flags().StringVar(&cpToProvider, "to-provider", "ais", "destination bucket provider")
	}
	bucketTransformCmd.Flags().StringVar(&etlName, "etl", "", "name of the ETL to run")
	bucketTransformCmd.Flags().StringToStringVar(&etlExt, "ext", nil, "extension mapping, e.g. jpg=png")
	_ = bucketTransformCmd.MarkFlagRequired("etl")

	for _, c := range []*cobra.Command{bucketMvCmd, bucketCpCmd, bucketTransformCmd} {
		c.Flags().BoolVar(&bucketWait, "wait", false, "wait for the started job to finish")
	}

	bucketCmd.AddCommand(bucketCreateCmd, bucketRmCmd, bucketMvCmd, bucketEvictCmd,
		bucketLsCmd, bucketCpCmd, bucketTransformCmd, bucketHeadCmd)
	RootCmd.AddCommand(bucketCmd)
}
