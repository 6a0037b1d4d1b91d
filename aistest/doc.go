// Package aistest provides an in-memory cluster double for tests.
//
// The double implements the native bucket/object wire protocol at the HTTP
// level, so anything that can take an *http.Client can run against it. It
// never opens a socket: requests are dispatched straight into an in-process
// Fiber app.
//
// Listing pages like the real thing: page size is honored, sessions get a
// uuid, continuation tokens address the next page, and continuing a session
// without its uuid is rejected. Listing props are not interpreted; every
// entry carries name, size, checksum, atime and version.
//
// # Usage
//
//	cluster := aistest.NewCluster()
//	cluster.CreateBucket("ais", "data")
//	cluster.PutObject("ais", "data", "a.txt", []byte("hello"))
//
//	cfg := ais.Config{Endpoint: cluster.URL(), HTTPClient: cluster.Client()}
package aistest
