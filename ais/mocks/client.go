package mocks

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"

	"aisgo/ais"
)

// Client is a mock implementation of ais.RequestClient
type Client struct {
	mock.Mock
}

func (m *Client) Request(ctx context.Context, method, path string, params url.Values, msg any) (*ais.Response, error) {
	args := m.Called(ctx, method, path, params, msg)
	if resp, ok := args.Get(0).(*ais.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RequestDeserialize(ctx context.Context, method, path string, params url.Values, msg, out any) error {
	args := m.Called(ctx, method, path, params, msg, out)
	return args.Error(0)
}

func (m *Client) RequestReader(ctx context.Context, method, path string, params url.Values, data io.Reader) (*ais.Response, error) {
	args := m.Called(ctx, method, path, params, data)
	if resp, ok := args.Get(0).(*ais.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) RequestStream(ctx context.Context, method, path string, params url.Values) (io.ReadCloser, http.Header, error) {
	args := m.Called(ctx, method, path, params)
	var body io.ReadCloser
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		body = rc
	}
	var header http.Header
	if h, ok := args.Get(1).(http.Header); ok {
		header = h
	}
	return body, header, args.Error(2)
}
