package s3compat

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Region is the region name the cluster reports to S3 clients.
const Region = "ais"

// compatRoot is the URL prefix the cluster serves the S3 API under.
const compatRoot = "/s3"

// NewClient creates a MinIO client pointed at the cluster's S3-compatibility
// layer. The cluster serves the S3 API under /s3 rather than at the root, so
// the client's transport rewrites request paths on the way out. Bucket
// lookup is forced to path style; virtual-host style cannot carry the
// prefix.
func NewClient(cfg Config) (*minio.Client, error) {
	// MinIO expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       Region,
		BucketLookup: minio.BucketLookupPath,
		Transport:    &prefixTransport{base: transport},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return client, nil
}

// prefixTransport prepends the compatibility-layer root to every outgoing
// request path.
type prefixTransport struct {
	base http.RoundTripper
}

func (t *prefixTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Path != compatRoot && !strings.HasPrefix(req.URL.Path, compatRoot+"/") {
		req = req.Clone(req.Context())
		req.URL.Path = compatRoot + req.URL.Path
		if req.URL.RawPath != "" {
			req.URL.RawPath = compatRoot + req.URL.RawPath
		}
	}
	return t.base.RoundTrip(req)
}
