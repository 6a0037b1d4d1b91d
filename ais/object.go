package ais

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
)

// Object is a handle for one object in a bucket.
type Object struct {
	bck  *Bucket
	name string
}

// Object returns a handle for the named object. The handle keeps a
// reference to its bucket and reuses its query parameters.
func (b *Bucket) Object(name string) *Object {
	return &Object{bck: b, name: name}
}

// Bucket returns the owning bucket handle.
func (o *Object) Bucket() *Bucket { return o.bck }

// Name returns the object name.
func (o *Object) Name() string { return o.name }

func (o *Object) path() string {
	return pathObjects + "/" + o.bck.Name() + "/" + o.name
}

// ObjectAttrs are cluster-reported object properties parsed from response
// headers.
type ObjectAttrs struct {
	Size     int64
	Checksum string
	Atime    string
	Version  string
}

// Head fetches the object's properties as response headers.
func (o *Object) Head(ctx context.Context) (http.Header, error) {
	resp, err := o.bck.rc.Request(ctx, http.MethodHead, o.path(), o.bck.cloneParams(), nil)
	if err != nil {
		return nil, err
	}
	return resp.Header, nil
}

// Get streams the object's content. The caller must close the reader.
func (o *Object) Get(ctx context.Context) (io.ReadCloser, ObjectAttrs, error) {
	body, header, err := o.bck.rc.RequestStream(ctx, http.MethodGet, o.path(), o.bck.cloneParams())
	if err != nil {
		return nil, ObjectAttrs{}, err
	}
	return body, attrsFromHeader(header), nil
}

// Put uploads the reader's content as the object body.
func (o *Object) Put(ctx context.Context, data io.Reader) error {
	_, err := o.bck.rc.RequestReader(ctx, http.MethodPut, o.path(), o.bck.cloneParams(), data)
	return err
}

// PutFile uploads the file at path as the object body.
func (o *Object) PutFile(ctx context.Context, path string) error {
	if err := validateFile(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return o.Put(ctx, bytes.NewReader(data))
}

// Delete removes the object from the bucket.
func (o *Object) Delete(ctx context.Context) error {
	_, err := o.bck.rc.Request(ctx, http.MethodDelete, o.path(), o.bck.cloneParams(), nil)
	return err
}

func attrsFromHeader(h http.Header) ObjectAttrs {
	size, _ := strconv.ParseInt(h.Get("Content-Length"), 10, 64)
	return ObjectAttrs{
		Size:     size,
		Checksum: h.Get(headerChecksumVal),
		Atime:    h.Get(headerObjAtime),
		Version:  h.Get(headerObjVersion),
	}
}
