package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/explain"
	"github.com/mDuo13/txsplain/internal/rpc"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ rpc.Observer     = (*Metrics)(nil)
	_ alias.Observer   = (*Metrics)(nil)
	_ explain.Observer = (*Metrics)(nil)
)

func TestObserveCall(t *testing.T) {
	m := New()
	m.ObserveCall("tx", 10*time.Millisecond, nil)
	m.ObserveCall("tx", 10*time.Millisecond, errors.New("boom"))
	m.ObserveCall("tx", time.Second, context.DeadlineExceeded)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcCalls.WithLabelValues("tx", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcCalls.WithLabelValues("tx", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcCalls.WithLabelValues("tx", "canceled")))
}

func TestObserveAliasLookup(t *testing.T) {
	m := New()
	m.ObserveAliasLookup(alias.OutcomeHit)
	m.ObserveAliasLookup(alias.OutcomeHit)
	m.ObserveAliasLookup(alias.OutcomeUnknown)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.aliasLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aliasLookups.WithLabelValues("unknown")))
}

func TestObserveNarration(t *testing.T) {
	m := New()
	m.ObserveNarration(explain.KindOffer, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.narrations.WithLabelValues("offer", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.narrationLength))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveAliasLookup(alias.OutcomeResolved)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `txsplain_alias_lookups_total{outcome="resolved"} 1`)
}
