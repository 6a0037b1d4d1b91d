package ais

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const jobPollInterval = time.Second

// Client is the top-level handle to a cluster.
type Client struct {
	rc     RequestClient
	logger *zap.Logger
}

// NewClient connects a client to the gateway named in cfg.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc, err := NewRequestClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create request client: %w", err)
	}
	return &Client{rc: rc, logger: logger}, nil
}

// Bucket returns a handle for the named bucket. The provider defaults to
// AIS; use WithProvider for remote backends.
func (c *Client) Bucket(name string, opts ...BucketOption) *Bucket {
	return NewBucket(c.rc, name, opts...)
}

// Health checks that the gateway is up.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.rc.Request(ctx, http.MethodGet, pathHealth, nil, nil)
	return err
}

// ListBuckets returns the buckets known to the cluster. An empty provider
// matches every backend.
func (c *Client) ListBuckets(ctx context.Context, provider Provider) ([]Bck, error) {
	params := url.Values{}
	if provider != "" {
		params.Set(qparamProvider, string(provider))
	}
	var bcks []Bck
	if err := c.rc.RequestDeserialize(ctx, http.MethodGet, pathBuckets, params, nil, &bcks); err != nil {
		return nil, err
	}
	return bcks, nil
}

// GetJobStatus fetches the current state of an asynchronous cluster job,
// such as the ones started by bucket rename, copy, and transform.
func (c *Client) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	params := url.Values{qparamWhat: []string{whatJobStatus}}
	msg := jobQueryMsg{ID: jobID}
	var status JobStatus
	if err := c.rc.RequestDeserialize(ctx, http.MethodGet, pathCluster, params, msg, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// WaitForJob polls the job until it finishes. Deadlines come from ctx. An
// aborted job is reported as an error alongside its final status.
func (c *Client) WaitForJob(ctx context.Context, jobID string) (*JobStatus, error) {
	ticker := time.NewTicker(jobPollInterval)
	defer ticker.Stop()

	for {
		status, err := c.GetJobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if status.Aborted {
			return status, fmt.Errorf("job %q aborted", jobID)
		}
		if status.Finished() {
			return status, nil
		}

		c.logger.Debug("waiting for job", zap.String("job_id", jobID))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
