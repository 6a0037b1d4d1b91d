package ais_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aisgo/ais"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestObjectHead(t *testing.T) {
	rc, bck := newTestBucket()
	header := http.Header{"Ais-Checksum-Value": []string{"abc123"}}
	rc.On("Request", mock.Anything, http.MethodHead, "objects/bck/obj", aisParams(), nil).
		Return(&ais.Response{StatusCode: http.StatusOK, Header: header}, nil)

	got, err := bck.Object("obj").Head(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, header, got)
	rc.AssertExpectations(t)
}

func TestObjectGet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rc, bck := newTestBucket()
		header := http.Header{
			"Content-Length":     []string{"4"},
			"Ais-Checksum-Value": []string{"abc123"},
			"Ais-Atime":          []string{"2026-08-22T10:00:00Z"},
			"Ais-Version":        []string{"2"},
		}
		rc.On("RequestStream", mock.Anything, http.MethodGet, "objects/bck/obj", aisParams()).
			Return(io.NopCloser(strings.NewReader("data")), header, nil)

		body, attrs, err := bck.Object("obj").Get(context.Background())
		assert.NoError(t, err)
		defer body.Close()

		content, err := io.ReadAll(body)
		assert.NoError(t, err)
		assert.Equal(t, "data", string(content))
		assert.Equal(t, ais.ObjectAttrs{
			Size:     4,
			Checksum: "abc123",
			Atime:    "2026-08-22T10:00:00Z",
			Version:  "2",
		}, attrs)
		rc.AssertExpectations(t)
	})

	t.Run("RequestError", func(t *testing.T) {
		rc, bck := newTestBucket()
		rc.On("RequestStream", mock.Anything, http.MethodGet, "objects/bck/obj", mock.Anything).
			Return(nil, nil, errors.New("gateway down"))

		body, _, err := bck.Object("obj").Get(context.Background())
		assert.Error(t, err)
		assert.Nil(t, body)
	})
}

func TestObjectPut(t *testing.T) {
	rc, bck := newTestBucket()
	var uploaded string
	rc.On("RequestReader", mock.Anything, http.MethodPut, "objects/bck/obj", aisParams(), mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(4).(io.Reader))
			assert.NoError(t, err)
			uploaded = string(data)
		}).
		Return(okResponse(), nil)

	err := bck.Object("obj").Put(context.Background(), strings.NewReader("payload"))
	assert.NoError(t, err)
	assert.Equal(t, "payload", uploaded)
	rc.AssertExpectations(t)
}

func TestObjectPutFile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "obj.txt")
		assert.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

		rc, bck := newTestBucket()
		var uploaded string
		rc.On("RequestReader", mock.Anything, http.MethodPut, "objects/bck/obj", aisParams(), mock.Anything).
			Run(func(args mock.Arguments) {
				data, err := io.ReadAll(args.Get(4).(io.Reader))
				assert.NoError(t, err)
				uploaded = string(data)
			}).
			Return(okResponse(), nil)

		err := bck.Object("obj").PutFile(context.Background(), path)
		assert.NoError(t, err)
		assert.Equal(t, "payload", uploaded)
	})

	t.Run("MissingFile", func(t *testing.T) {
		rc, bck := newTestBucket()
		err := bck.Object("obj").PutFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
		assert.Empty(t, rc.Calls)
	})

	t.Run("DirectoryRejected", func(t *testing.T) {
		rc, bck := newTestBucket()
		err := bck.Object("obj").PutFile(context.Background(), t.TempDir())
		assert.Error(t, err)
		assert.Empty(t, rc.Calls)
	})
}

func TestObjectDelete(t *testing.T) {
	rc, bck := newTestBucket()
	rc.On("Request", mock.Anything, http.MethodDelete, "objects/bck/obj", aisParams(), nil).
		Return(okResponse(), nil)

	err := bck.Object("obj").Delete(context.Background())
	assert.NoError(t, err)
	rc.AssertExpectations(t)
}

func TestObjectPathTracksRename(t *testing.T) {
	rc, bck := newTestBucket()
	obj := bck.Object("obj")

	params := aisParams()
	params.Set("bck_to", "ais/@#/renamed/")
	rc.On("Request", mock.Anything, http.MethodPost, "buckets/bck", params,
		ais.ActionMsg{Action: "move-bck"}).
		Return(&ais.Response{StatusCode: http.StatusOK, Body: []byte("job-1")}, nil)
	rc.On("Request", mock.Anything, http.MethodDelete, "objects/renamed/obj", aisParams(), nil).
		Return(okResponse(), nil)

	_, err := bck.Rename(context.Background(), "renamed")
	assert.NoError(t, err)
	assert.NoError(t, obj.Delete(context.Background()))
	rc.AssertExpectations(t)
}
