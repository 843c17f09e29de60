package identity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gateway  = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
	stranger = "ra5nK24KXen9AHvsdFTKHSANinZseWnPcX"
)

func stubService(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/v1/user/" + gateway, "/v1/user/bitstamp":
			_, _ = io.WriteString(w, `{"username":"bitstamp","address":"`+gateway+`","exists":true}`)
		case "/v1/user/" + stranger:
			_, _ = io.WriteString(w, `{"exists":false}`)
		case "/v1/user/teapot":
			w.WriteHeader(http.StatusTeapot)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestResolveAlias(t *testing.T) {
	srv, _ := stubService(t)
	c := New(Config{URL: srv.URL + "/"}, nil)

	name, found, err := c.ResolveAlias(context.Background(), gateway)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bitstamp", name)

	_, found, err = c.ResolveAlias(context.Background(), stranger)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.ResolveAlias(context.Background(), "rNobodyKnowsMe")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResolveAddress(t *testing.T) {
	srv, _ := stubService(t)
	c := New(Config{URL: srv.URL}, nil)

	addr, found, err := c.ResolveAddress(context.Background(), "bitstamp")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, gateway, addr)

	_, found, err = c.ResolveAddress(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPermanentStatusIsNotRetried(t *testing.T) {
	srv, calls := stubService(t)
	c := New(Config{URL: srv.URL, MaxRetries: 3}, nil)

	_, _, err := c.ResolveAlias(context.Background(), "teapot")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTeapot, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"username":"bitstamp","address":"`+gateway+`"}`)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, MaxRetries: 5}, nil)
	name, found, err := c.ResolveAlias(context.Background(), gateway)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bitstamp", name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRateLimitHonorsContext(t *testing.T) {
	srv, _ := stubService(t)
	c := New(Config{URL: srv.URL, RequestsPerSecond: 0.001, Burst: 1}, nil)

	_, _, err := c.ResolveAlias(context.Background(), gateway)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err = c.ResolveAlias(ctx, gateway)
	assert.Error(t, err)
}
