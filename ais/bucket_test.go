package ais_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"aisgo/ais"
	"aisgo/ais/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const bckName = "bck"

func newTestBucket(opts ...ais.BucketOption) (*mocks.Client, *ais.Bucket) {
	rc := new(mocks.Client)
	return rc, ais.NewBucket(rc, bckName, opts...)
}

func aisParams() url.Values {
	return url.Values{"provider": []string{"ais"}}
}

func okResponse() *ais.Response {
	return &ais.Response{StatusCode: http.StatusOK}
}

func TestNewBucket(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		_, bck := newTestBucket()
		assert.Equal(t, bckName, bck.Name())
		assert.Equal(t, ais.ProviderAIS, bck.Provider())
	})

	t.Run("WithProvider", func(t *testing.T) {
		_, bck := newTestBucket(ais.WithProvider(ais.ProviderAmazon))
		assert.Equal(t, ais.ProviderAmazon, bck.Provider())
		assert.True(t, bck.Provider().IsRemote())
	})

	t.Run("WithNamespace", func(t *testing.T) {
		ns := ais.Namespace{UUID: "uuid", Name: "ns"}
		_, bck := newTestBucket(ais.WithNamespace(ns))
		assert.Equal(t, &ns, bck.Bck().Namespace)
	})
}

func TestBucketCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rc, bck := newTestBucket()
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", aisParams(),
			ais.ActionMsg{Action: "create-bck"}).Return(okResponse(), nil)

		err := bck.Create(context.Background())
		assert.NoError(t, err)
		rc.AssertExpectations(t)
	})

	t.Run("RemoteProviderRejected", func(t *testing.T) {
		rc, bck := newTestBucket(ais.WithProvider(ais.ProviderAmazon))

		err := bck.Create(context.Background())
		var provErr *ais.InvalidProviderError
		assert.ErrorAs(t, err, &provErr)
		assert.Equal(t, ais.ProviderAmazon, provErr.Provider)
		assert.Empty(t, rc.Calls)
	})
}

func TestBucketDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rc, bck := newTestBucket()
		rc.On("Request", mock.Anything, http.MethodDelete, "buckets/bck", aisParams(),
			ais.ActionMsg{Action: "destroy-bck"}).Return(okResponse(), nil)

		err := bck.Delete(context.Background())
		assert.NoError(t, err)
		rc.AssertExpectations(t)
	})

	t.Run("RemoteProviderRejected", func(t *testing.T) {
		rc, bck := newTestBucket(ais.WithProvider(ais.ProviderAmazon))

		err := bck.Delete(context.Background())
		var provErr *ais.InvalidProviderError
		assert.ErrorAs(t, err, &provErr)
		assert.Empty(t, rc.Calls)
	})
}

func TestBucketRename(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rc, bck := newTestBucket()
		params := aisParams()
		params.Set("bck_to", "ais/@#/new_bck/")
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
			ais.ActionMsg{Action: "move-bck"}).
			Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("job-123")}, nil)

		jobID, err := bck.Rename(context.Background(), "new_bck")
		assert.NoError(t, err)
		assert.Equal(t, "job-123", jobID)
		assert.Equal(t, "new_bck", bck.Name())
		rc.AssertExpectations(t)
	})

	t.Run("FailureKeepsName", func(t *testing.T) {
		rc, bck := newTestBucket()
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway down"))

		_, err := bck.Rename(context.Background(), "new_bck")
		assert.Error(t, err)
		assert.Equal(t, bckName, bck.Name())
	})

	t.Run("RemoteProviderRejected", func(t *testing.T) {
		rc, bck := newTestBucket(ais.WithProvider(ais.ProviderGoogle))

		_, err := bck.Rename(context.Background(), "new_bck")
		var provErr *ais.InvalidProviderError
		assert.ErrorAs(t, err, &provErr)
		assert.Empty(t, rc.Calls)
	})
}

func TestBucketEvict(t *testing.T) {
	tests := []struct {
		name   string
		keepMD bool
		want   string
	}{
		{"KeepMetadata", true, "True"},
		{"DropMetadata", false, "False"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, bck := newTestBucket(ais.WithProvider(ais.ProviderAmazon))
			params := url.Values{"provider": []string{"aws"}, "keep_md": []string{tt.want}}
			rc.On("Request", mock.Anything, http.MethodDelete, "buckets/bck", params,
				ais.ActionMsg{Action: "evict-remote-bck"}).Return(okResponse(), nil)

			err := bck.Evict(context.Background(), tt.keepMD)
			assert.NoError(t, err)
			rc.AssertExpectations(t)
		})
	}

	t.Run("AISProviderRejected", func(t *testing.T) {
		rc, bck := newTestBucket()

		err := bck.Evict(context.Background(), false)
		var provErr *ais.InvalidProviderError
		assert.ErrorAs(t, err, &provErr)
		assert.Empty(t, rc.Calls)
	})
}

func TestBucketHead(t *testing.T) {
	rc, bck := newTestBucket()
	header := http.Header{"Ais-Bucket-Name": []string{bckName}}
	rc.On("Request", mock.Anything, http.MethodHead, "buckets/bck", aisParams(), nil).
		Return(&ais.Response{StatusCode: http.StatusOK, Header: header}, nil)

	got, err := bck.Head(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, header, got)
	rc.AssertExpectations(t)
}

func TestBucketCopy(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		rc, bck := newTestBucket()
		params := aisParams()
		params.Set("bck_to", "ais/@#/dst/")
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
			ais.ActionMsg{Action: "copy-bck", Value: ais.CopyBckMsg{}}).
			Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("copy-job")}, nil)

		jobID, err := bck.Copy(context.Background(), ais.Bck{Name: "dst"}, nil)
		assert.NoError(t, err)
		assert.Equal(t, "copy-job", jobID)
		rc.AssertExpectations(t)
	})

	t.Run("RemoteDestination", func(t *testing.T) {
		rc, bck := newTestBucket()
		params := aisParams()
		params.Set("bck_to", "aws/@#/dst/")
		msg := ais.CopyBckMsg{Prefix: "imgs/", DryRun: true, Force: true}
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
			ais.ActionMsg{Action: "copy-bck", Value: msg}).
			Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("copy-job")}, nil)

		_, err := bck.Copy(context.Background(), ais.Bck{Name: "dst", Provider: ais.ProviderAmazon}, &msg)
		assert.NoError(t, err)
		rc.AssertExpectations(t)
	})
}

func TestBucketTransform(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		rc, bck := newTestBucket()
		params := aisParams()
		params.Set("bck_to", "ais/@#/dst/")
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
			ais.ActionMsg{Action: "etl-bck", Value: ais.TransformBckMsg{ID: "etl_name"}}).
			Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("etl-job")}, nil)

		jobID, err := bck.Transform(context.Background(), "etl_name", ais.Bck{Name: "dst"}, nil)
		assert.NoError(t, err)
		assert.Equal(t, "etl-job", jobID)
		rc.AssertExpectations(t)
	})

	t.Run("WithExtMapping", func(t *testing.T) {
		rc, bck := newTestBucket()
		params := aisParams()
		params.Set("bck_to", "ais/@#/dst/")
		expected := ais.TransformBckMsg{
			ID:     "etl_name",
			Prefix: "raw/",
			Force:  true,
			DryRun: true,
			Ext:    map[string]string{"jpg": "webp"},
		}
		rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
			ais.ActionMsg{Action: "etl-bck", Value: expected}).
			Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("etl-job")}, nil)

		_, err := bck.Transform(context.Background(), "etl_name", ais.Bck{Name: "dst"},
			&ais.TransformBckMsg{Prefix: "raw/", Force: true, DryRun: true, Ext: map[string]string{"jpg": "webp"}})
		assert.NoError(t, err)
		rc.AssertExpectations(t)
	})

	t.Run("WireShape", func(t *testing.T) {
		noExt, err := json.Marshal(ais.ActionMsg{Action: "etl-bck", Value: ais.TransformBckMsg{ID: "etl_name"}})
		assert.NoError(t, err)
		assert.JSONEq(t,
			`{"action":"etl-bck","value":{"id":"etl_name","prefix":"","force":false,"dry_run":false}}`,
			string(noExt))

		bare, err := json.Marshal(ais.ActionMsg{Action: "create-bck"})
		assert.NoError(t, err)
		assert.JSONEq(t, `{"action":"create-bck"}`, string(bare))
	})
}

func TestBucketObject(t *testing.T) {
	_, bck := newTestBucket()
	obj := bck.Object("name")
	assert.Same(t, bck, obj.Bucket())
	assert.Equal(t, "name", obj.Name())
}

func TestPutFiles(t *testing.T) {
	t.Run("UploadsInOrder", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bravo"), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
		assert.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

		type upload struct {
			path string
			data string
		}
		var uploads []upload

		rc, bck := newTestBucket()
		rc.On("RequestReader", mock.Anything, http.MethodPut, mock.Anything, aisParams(), mock.Anything).
			Run(func(args mock.Arguments) {
				data, err := io.ReadAll(args.Get(4).(io.Reader))
				assert.NoError(t, err)
				uploads = append(uploads, upload{path: args.String(2), data: string(data)})
			}).
			Return(okResponse(), nil)

		names, err := bck.PutFiles(context.Background(), dir)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt"}, names)
		assert.Equal(t, []upload{
			{path: "objects/bck/a.txt", data: "alpha"},
			{path: "objects/bck/b.txt", data: "bravo"},
		}, uploads)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "plain.txt")
		assert.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		rc, bck := newTestBucket()
		_, err := bck.PutFiles(context.Background(), file)
		assert.Error(t, err)
		assert.Empty(t, rc.Calls)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		rc, bck := newTestBucket()
		_, err := bck.PutFiles(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
		assert.Empty(t, rc.Calls)
	})

	t.Run("AbortsOnFirstFailure", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bravo"), 0o644))

		rc, bck := newTestBucket()
		rc.On("RequestReader", mock.Anything, http.MethodPut, "objects/bck/a.txt", mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway down"))

		_, err := bck.PutFiles(context.Background(), dir)
		assert.Error(t, err)
		assert.Len(t, rc.Calls, 1)
	})
}
