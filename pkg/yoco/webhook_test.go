package yoco

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_dGVzdC1zaWduaW5nLWtleQ=="

func signedHeaders(t *testing.T, id string, ts time.Time, body []byte) http.Header {
	t.Helper()
	stamp := strconv.FormatInt(ts.Unix(), 10)
	sig, err := Sign(id, stamp, body, testSecret)
	require.NoError(t, err)
	h := http.Header{}
	h.Set(HeaderWebhookID, id)
	h.Set(HeaderWebhookTimestamp, stamp)
	h.Set(HeaderWebhookSignature, sig)
	return h
}

func TestVerifySignatureAccepts(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment.succeeded"}`)
	h := signedHeaders(t, "msg_1", time.Now(), body)
	assert.NoError(t, VerifySignature(h, body, testSecret))
}

func TestVerifySignatureAcceptsAnyListedVersion(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	h := signedHeaders(t, "msg_1", time.Now(), body)
	// an extra unknown scheme in the header must not break matching
	h.Set(HeaderWebhookSignature, "v2,Zm9v "+h.Get(HeaderWebhookSignature))
	assert.NoError(t, VerifySignature(h, body, testSecret))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"amount":15500}`)
	h := signedHeaders(t, "msg_1", time.Now(), body)
	err := VerifySignature(h, []byte(`{"amount":1}`), testSecret)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	h := signedHeaders(t, "msg_1", time.Now(), body)
	other := "whsec_" + base64.StdEncoding.EncodeToString([]byte("another-key"))
	err := VerifySignature(h, body, other)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifySignatureRejectsMissingHeaders(t *testing.T) {
	err := VerifySignature(http.Header{}, []byte(`{}`), testSecret)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	body := []byte(`{}`)
	for _, skew := range []time.Duration{-10 * time.Minute, 10 * time.Minute} {
		h := signedHeaders(t, "msg_1", time.Now().Add(skew), body)
		err := VerifySignature(h, body, testSecret)
		assert.ErrorIs(t, err, ErrStaleTimestamp, fmt.Sprintf("skew %v", skew))
	}
}

func TestParseEvent(t *testing.T) {
	body := []byte(`{
		"id": "evt_abc",
		"type": "checkout.succeeded",
		"payload": {
			"id": "ch_1",
			"status": "succeeded",
			"amount": 15500,
			"currency": "ZAR",
			"metadata": {"orderId": "2f1b7a36-5f0e-4b3e-9a87-3f60a1d1c111", "userId": "7"}
		}
	}`)
	ev, err := ParseEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "evt_abc", ev.ID)
	assert.True(t, ev.Succeeded())
	assert.False(t, ev.Failed())
	assert.Equal(t, int64(15500), ev.Payload.Amount)
	assert.Equal(t, "2f1b7a36-5f0e-4b3e-9a87-3f60a1d1c111", ev.Payload.Metadata.OrderID)
}

func TestParseEventRejects(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"id": `,
		"missing id":   `{"type":"payment.succeeded"}`,
		"missing type": `{"id":"evt_1"}`,
		"unsupported":  `{"id":"evt_1","type":"refund.succeeded"}`,
	}
	for name, body := range cases {
		_, err := ParseEvent([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestEventTypePredicates(t *testing.T) {
	succeed := []string{EventCheckoutSucceeded, EventPaymentSucceeded}
	fail := []string{EventCheckoutFailed, EventCheckoutCancelled, EventPaymentFailed}
	for _, typ := range succeed {
		ev := WebhookEvent{Type: typ}
		assert.True(t, ev.Succeeded(), typ)
		assert.False(t, ev.Failed(), typ)
	}
	for _, typ := range fail {
		ev := WebhookEvent{Type: typ}
		assert.True(t, ev.Failed(), typ)
		assert.False(t, ev.Succeeded(), typ)
	}
}
