package cmd

import (
	"fmt"
	"io"
	"os"

	"aisgo/ais"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// objectCmd groups all object-level operations
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects",
}

var (
	objectProvider string
	getOut         string
)

var objectPutCmd = &cobra.Command{
	Use:   "put [bucket] [object] [file]",
	Short: "Upload a file as an object",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(objectProvider)))

		if err := bck.Object(args[1]).PutFile(cmd.Context(), args[2]); err != nil {
			logg.Fatal("Failed to put object", zap.Error(err))
		}
		fmt.Printf("Put %s/%s\n", args[0], args[1])
	},
}

var objectPutDirCmd = &cobra.Command{
	Use:   "put-dir [bucket] [directory]",
	Short: "Upload every file in a directory",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(objectProvider)))

		names, err := bck.PutFiles(cmd.Context(), args[1])
		if err != nil {
			logg.Fatal("Failed to put directory", zap.Error(err))
		}
		for _, name := range names {
			fmt.Printf("Put %s/%s\n", args[0], name)
		}
		fmt.Printf("Uploaded %d objects\n", len(names))
	},
}

var objectGetCmd = &cobra.Command{
	Use:   "get [bucket] [object]",
	Short: "Download an object",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(objectProvider)))

		body, attrs, err := bck.Object(args[1]).Get(cmd.Context())
		if err != nil {
			logg.Fatal("Failed to get object", zap.Error(err))
		}
		defer body.Close()

		if getOut == "-" {
			if _, err := io.Copy(os.Stdout, body); err != nil {
				logg.Fatal("Failed to write object", zap.Error(err))
			}
			return
		}

		file, err := os.Create(getOut)
		if err != nil {
			logg.Fatal("Failed to create output file", zap.Error(err))
		}
		defer file.Close()
		if _, err := io.Copy(file, body); err != nil {
			logg.Fatal("Failed to write object", zap.Error(err))
		}
		fmt.Printf("Got %s/%s (%s) -> %s\n", args[0], args[1], humanize.IBytes(uint64(attrs.Size)), getOut)
	},
}

var objectHeadCmd = &cobra.Command{
	Use:   "head [bucket] [object]",
	Short: "Show an object's properties",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(objectProvider)))

		header, err := bck.Object(args[1]).Head(cmd.Context())
		if err != nil {
			logg.Fatal("Failed to head object", zap.Error(err))
		}
		for k, vs := range header {
			for _, v := range vs {
				fmt.Printf("%-24s %s\n", k, v)
			}
		}
	},
}

var objectRmCmd = &cobra.Command{
	Use:   "rm [bucket] [object]",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		bck := client.Bucket(args[0], ais.WithProvider(ais.Provider(objectProvider)))

		if err := bck.Object(args[1]).Delete(cmd.Context()); err != nil {
			logg.Fatal("Failed to delete object", zap.Error(err))
		}
		fmt.Printf("Deleted %s/%s\n", args[0], args[1])
	},
}

func init() {
	objectCmd.PersistentFlags().StringVar(&objectProvider, "provider", "ais", "bucket backend provider")
	objectGetCmd.Flags().StringVar(&getOut, "out", "-", "output file, - for stdout")

	objectCmd.AddCommand(objectPutCmd, objectPutDirCmd, objectGetCmd, objectHeadCmd, objectRmCmd)
	RootCmd.AddCommand(objectCmd)
}
