package cmd_test

import (
	"testing"

	"aisgo/cmd"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered under %q", name, parent.Name())
	return nil
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "aisgo", cmd.RootCmd.Name())
	for _, name := range []string{"bucket", "object", "job", "s3", "health"} {
		findCommand(t, cmd.RootCmd, name)
	}
}

func TestBucketCommand(t *testing.T) {
	bucket := findCommand(t, cmd.RootCmd, "bucket")
	for _, name := range []string{"create", "rm", "mv", "evict", "ls", "cp", "transform", "head"} {
		findCommand(t, bucket, name)
	}

	provider := bucket.PersistentFlags().Lookup("provider")
	assert.NotNil(t, provider)
	assert.Equal(t, "ais", provider.DefValue)

	ls := findCommand(t, bucket, "ls")
	for _, flag := range []string{"prefix", "props", "page-size"} {
		assert.NotNil(t, ls.Flags().Lookup(flag))
	}

	evict := findCommand(t, bucket, "evict")
	keepMD := evict.Flags().Lookup("keep-md")
	assert.NotNil(t, keepMD)
	assert.Equal(t, "false", keepMD.DefValue)

	for _, name := range []string{"mv", "cp", "transform"} {
		c := findCommand(t, bucket, name)
		assert.NotNil(t, c.Flags().Lookup("wait"))
	}

	transform := findCommand(t, bucket, "transform")
	assert.NotNil(t, transform.Flags().Lookup("etl"))
	assert.NotNil(t, transform.Flags().Lookup("ext"))
}

func TestObjectCommand(t *testing.T) {
	object := findCommand(t, cmd.RootCmd, "object")
	for _, name := range []string{"put", "put-dir", "get", "head", "rm"} {
		findCommand(t, object, name)
	}

	out := findCommand(t, object, "get").Flags().Lookup("out")
	assert.NotNil(t, out)
	assert.Equal(t, "-", out.DefValue)
}

func TestJobCommand(t *testing.T) {
	job := findCommand(t, cmd.RootCmd, "job")
	findCommand(t, job, "status")
	findCommand(t, job, "wait")
}
