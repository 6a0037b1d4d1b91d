package ais

import "context"

// ObjectIterator walks a bucket listing page by page, fetching the next
// page only once the buffered one is exhausted. It follows the
// bufio.Scanner pattern:
//
//	it := bck.ListObjectsIter(ctx, "", "", 0)
//	for it.Next() {
//		entry := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type ObjectIterator struct {
	ctx context.Context
	bck *Bucket
	msg ListObjectsMsg

	buf     []*BucketEntry
	pos     int
	cur     *BucketEntry
	fetched bool
	last    bool
	err     error
}

// Next advances to the next entry, requesting a page from the cluster only
// when the buffer runs out and a continuation token is pending. It returns
// false once the listing is exhausted or a page request failed.
func (it *ObjectIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.pos >= len(it.buf) {
		if it.fetched && it.last {
			return false
		}
		if err := it.fetch(); err != nil {
			it.err = err
			return false
		}
	}
	it.cur = it.buf[it.pos]
	it.pos++
	return true
}

// Value returns the entry produced by the last successful Next.
func (it *ObjectIterator) Value() *BucketEntry { return it.cur }

// Err returns the first error encountered while paging, if any.
func (it *ObjectIterator) Err() error { return it.err }

func (it *ObjectIterator) fetch() error {
	page, err := it.bck.ListObjects(it.ctx, &it.msg)
	if err != nil {
		return err
	}
	it.buf = page.Entries
	it.pos = 0
	it.fetched = true
	it.last = page.ContinuationToken == ""
	it.msg.UUID = page.UUID
	it.msg.ContinuationToken = page.ContinuationToken
	return nil
}
