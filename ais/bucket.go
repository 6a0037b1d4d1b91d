package ais

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Bucket is a handle for one bucket on the cluster. It carries the baseline
// query parameters every operation starts from; operations copy the
// baseline and add their own keys, they never mutate it.
type Bucket struct {
	rc     RequestClient
	bck    Bck
	qparam url.Values
}

// BucketOption customizes a bucket handle at construction.
type BucketOption func(*Bucket)

// WithProvider sets the backend provider.
func WithProvider(p Provider) BucketOption {
	return func(b *Bucket) { b.bck.Provider = p }
}

// WithNamespace scopes the bucket to a namespace.
func WithNamespace(ns Namespace) BucketOption {
	return func(b *Bucket) { b.bck.Namespace = &ns }
}

// NewBucket builds a bucket handle bound to rc. The provider defaults to
// AIS when no option overrides it.
func NewBucket(rc RequestClient, name string, opts ...BucketOption) *Bucket {
	b := &Bucket{rc: rc, bck: Bck{Name: name, Provider: ProviderAIS}}
	for _, opt := range opts {
		opt(b)
	}
	b.qparam = url.Values{qparamProvider: []string{string(b.bck.Provider)}}
	return b
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.bck.Name }

// Provider returns the backend provider.
func (b *Bucket) Provider() Provider { return b.bck.Provider }

// Bck returns the full bucket identity.
func (b *Bucket) Bck() Bck { return b.bck }

func (b *Bucket) path() string { return pathBuckets + "/" + b.bck.Name }

// cloneParams copies the baseline query parameters for one operation.
func (b *Bucket) cloneParams() url.Values {
	params := make(url.Values, len(b.qparam)+1)
	for k, vs := range b.qparam {
		params[k] = append([]string(nil), vs...)
	}
	return params
}

func (b *Bucket) requireAIS() error {
	if !b.bck.Provider.IsAIS() {
		return &InvalidProviderError{Provider: b.bck.Provider}
	}
	return nil
}

func (b *Bucket) requireRemote() error {
	if !b.bck.Provider.IsRemote() {
		return &InvalidProviderError{Provider: b.bck.Provider}
	}
	return nil
}

// Create registers the bucket on the cluster. AIS buckets only.
func (b *Bucket) Create(ctx context.Context) error {
	if err := b.requireAIS(); err != nil {
		return err
	}
	_, err := b.rc.Request(ctx, http.MethodPost, b.path(), b.cloneParams(), ActionMsg{Action: actCreateBck})
	return err
}

// Delete destroys the bucket and everything in it. AIS buckets only;
// remote buckets are evicted instead.
func (b *Bucket) Delete(ctx context.Context) error {
	if err := b.requireAIS(); err != nil {
		return err
	}
	_, err := b.rc.Request(ctx, http.MethodDelete, b.path(), b.cloneParams(), ActionMsg{Action: actDestroyBck})
	return err
}

// Rename moves the bucket to a new name within the AIS backend and returns
// the ID of the job performing the move. The handle switches to the new
// name only after the cluster accepts the request.
func (b *Bucket) Rename(ctx context.Context, newName string) (string, error) {
	if err := b.requireAIS(); err != nil {
		return "", err
	}
	params := b.cloneParams()
	params.Set(qparamBucketTo, bckToURI(ProviderAIS, newName))

	resp, err := b.rc.Request(ctx, http.MethodPost, b.path(), params, ActionMsg{Action: actMoveBck})
	if err != nil {
		return "", err
	}
	b.bck.Name = newName
	return resp.Text(), nil
}

// Evict drops the cluster's cached copy of a remote bucket. With keepMD the
// cluster keeps the bucket's metadata. Remote buckets only.
func (b *Bucket) Evict(ctx context.Context, keepMD bool) error {
	if err := b.requireRemote(); err != nil {
		return err
	}
	params := b.cloneParams()
	params.Set(qparamKeepBckMD, boolQValue(keepMD))

	_, err := b.rc.Request(ctx, http.MethodDelete, b.path(), params, ActionMsg{Action: actEvictRemoteBck})
	return err
}

// Head fetches the bucket's properties, returned by the cluster as
// response headers.
func (b *Bucket) Head(ctx context.Context) (http.Header, error) {
	resp, err := b.rc.Request(ctx, http.MethodHead, b.path(), b.cloneParams(), nil)
	if err != nil {
		return nil, err
	}
	return resp.Header, nil
}

// Copy replicates the bucket's objects into dst and returns the job ID. An
// empty dst provider means AIS.
func (b *Bucket) Copy(ctx context.Context, dst Bck, msg *CopyBckMsg) (string, error) {
	value := CopyBckMsg{}
	if msg != nil {
		value = *msg
	}
	params := b.cloneParams()
	params.Set(qparamBucketTo, bckToURI(dstProvider(dst), dst.Name))

	resp, err := b.rc.Request(ctx, http.MethodPost, b.path(), params, ActionMsg{Action: actCopyBck, Value: value})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Transform runs the named ETL over the bucket's objects, writing results
// into dst, and returns the job ID. An empty dst provider means AIS.
func (b *Bucket) Transform(ctx context.Context, etlID string, dst Bck, msg *TransformBckMsg) (string, error) {
	value := TransformBckMsg{}
	if msg != nil {
		value = *msg
	}
	value.ID = etlID
	params := b.cloneParams()
	params.Set(qparamBucketTo, bckToURI(dstProvider(dst), dst.Name))

	resp, err := b.rc.Request(ctx, http.MethodPost, b.path(), params, ActionMsg{Action: actETLBck, Value: value})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// ListObjects fetches a single page of the bucket's listing. Fields of msg
// go to the cluster verbatim; UUID and ContinuationToken select the page
// within a listing session. A nil msg requests the first page with
// cluster-side defaults.
func (b *Bucket) ListObjects(ctx context.Context, msg *ListObjectsMsg) (*BucketList, error) {
	value := ListObjectsMsg{}
	if msg != nil {
		value = *msg
	}
	var page BucketList
	err := b.rc.RequestDeserialize(ctx, http.MethodGet, b.path(), b.cloneParams(),
		ActionMsg{Action: actList, Value: value}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllObjects walks every page of a listing and returns the combined
// entries. Pages are requested sequentially, each addressed by the uuid and
// continuation token of the previous one. Any page error fails the whole
// call.
func (b *Bucket) ListAllObjects(ctx context.Context, prefix, props string, pageSize int) ([]*BucketEntry, error) {
	entries := []*BucketEntry{}
	msg := ListObjectsMsg{Prefix: prefix, Props: props, PageSize: pageSize}
	for {
		page, err := b.ListObjects(ctx, &msg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page.Entries...)
		if page.ContinuationToken == "" {
			return entries, nil
		}
		msg.UUID = page.UUID
		msg.ContinuationToken = page.ContinuationToken
	}
}

// ListObjectsIter returns a lazy iterator over the bucket's objects. No
// request is made before the first Next call.
func (b *Bucket) ListObjectsIter(ctx context.Context, prefix, props string, pageSize int) *ObjectIterator {
	return &ObjectIterator{
		ctx: ctx,
		bck: b,
		msg: ListObjectsMsg{Prefix: prefix, Props: props, PageSize: pageSize},
	}
}

// PutFiles uploads every regular file directly under dir. Object names are
// the file paths relative to dir. The first failed upload aborts the call;
// uploaded names are returned in enumeration order.
func (b *Bucket) PutFiles(ctx context.Context, dir string) ([]string, error) {
	if err := validateDirectory(dir); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := []string{}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		name = filepath.ToSlash(name)
		if err := b.Object(name).PutFile(ctx, path); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// bckToURI renders the destination descriptor the cluster expects under the
// bck_to query key: "<provider>/@#/<name>/".
func bckToURI(provider Provider, name string) string {
	return fmt.Sprintf("%s/@#/%s/", provider, name)
}

func dstProvider(dst Bck) Provider {
	if dst.Provider == "" {
		return ProviderAIS
	}
	return dst.Provider
}

// boolQValue renders booleans the way the cluster's query layer parses
// them: capitalized True/False.
func boolQValue(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
