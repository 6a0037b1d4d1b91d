// Package ais is a client SDK for an AIStore-compatible object storage
// cluster.
//
// A Client talks to one gateway and hands out Bucket and Object handles.
// All cluster traffic goes through the RequestClient interface, which makes
// the handles easy to test against ais/mocks.
//
// # Buckets
//
// Bucket handles are cheap and carry no cluster state. The provider
// defaults to AIS; remote backends (aws, gcp, azure, ...) are selected with
// WithProvider. Create and Rename exist for AIS buckets only, Evict for
// remote buckets only; calling them on the wrong kind fails with
// InvalidProviderError before any request is sent.
//
// Rename, Copy and Transform start asynchronous cluster jobs and return the
// job ID. Client.WaitForJob blocks until such a job completes.
//
// # Listing
//
// ListObjects fetches one page. ListAllObjects aggregates all pages
// eagerly. ListObjectsIter returns a lazy iterator that requests a page at
// a time:
//
//	it := bck.ListObjectsIter(ctx, "", "", 0)
//	for it.Next() {
//		fmt.Println(it.Value().Name)
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// # Usage
//
//	client, err := ais.NewClient(ais.Config{Endpoint: "http://localhost:8080"}, logger)
//	bck := client.Bucket("data")
//	err = bck.Create(ctx)
//	names, err := bck.PutFiles(ctx, "./testdata")
package ais
