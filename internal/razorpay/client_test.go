package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"razorpay-integration/config"
	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID     = "rzp_test_key"
	testKeySecret = "rzp_test_secret"
	testCallback  = "https://shop.example.com/razorpay_payment_status"
)

// fakeSDK stands in for the razorpay-go payment resource.
type fakeSDK struct {
	fetchCalls  atomic.Int64
	refundCalls atomic.Int64

	fetchFunc  func(paymentID string) (map[string]interface{}, error)
	refundFunc func(paymentID string, amount int) (map[string]interface{}, error)
}

func (f *fakeSDK) Fetch(paymentID string, _ map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.fetchCalls.Add(1)
	return f.fetchFunc(paymentID)
}

func (f *fakeSDK) Refund(paymentID string, amount int, _ map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.refundCalls.Add(1)
	return f.refundFunc(paymentID, amount)
}

// newTestServer wraps handler with a probe responder and counts every request
// that is not the credential probe.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/customers" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":0,"items":[]}`))
			return
		}
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID:       testKeyID,
		KeySecret:   testKeySecret,
		BaseURL:     srv.URL,
		CallbackURL: testCallback,
	}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// --- Credential validation ---

func TestNewClient_ProbeSendsBasicAuth(t *testing.T) {
	var probed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probed = true
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "count=1", r.URL.RawQuery)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, testKeyID, user)
		assert.Equal(t, testKeySecret, pass)
		writeJSON(w, http.StatusOK, `{"count":0,"items":[]}`)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID: testKeyID, KeySecret: testKeySecret, BaseURL: srv.URL,
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, probed)
}

func TestNewClient_ProbeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID: "bad", KeySecret: "creds", BaseURL: srv.URL,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, c, "no partially-initialized client on auth failure")
	assert.Equal(t, apperror.CodeAuthentication, apperror.CodeOf(err))
}

func TestNewClient_ProbeRejectedWithoutErrorBody(t *testing.T) {
	// Some gateway failure modes answer with a bare status and no structured
	// error object. The status alone must still fail construction.
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, status, `{}`)
		}))

		c, err := NewClient(context.Background(), config.RazorpayConfig{
			KeyID: "bad", KeySecret: "creds", BaseURL: srv.URL,
		}, zerolog.Nop())

		require.Error(t, err, "construction must fail on a %d probe", status)
		assert.Nil(t, c)
		assert.Equal(t, apperror.CodeAuthentication, apperror.CodeOf(err))
		srv.Close()
	}
}

func TestNewClient_ProbeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c, err := NewClient(context.Background(), config.RazorpayConfig{
		KeyID: testKeyID, KeySecret: testKeySecret, BaseURL: srv.URL,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, apperror.CodeAuthentication, apperror.CodeOf(err))
}

// --- Payment link create ---

func TestGetOrCreatePaymentLink_Create(t *testing.T) {
	var got map[string]interface{}
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_links", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"id":"plink_abc","short_url":"https://rzp.io/l/abc"}`)
	})
	c := newTestClient(t, srv)

	payload, err := c.GetOrCreatePaymentLink(context.Background(), "", &domain.PaymentLinkRequest{
		Amount:         500,
		Description:    "Course fee",
		PayerName:      "A Payer",
		PayerEmail:     "payer@example.com",
		PayerPhone:     "9876543210",
		NotifyViaEmail: true,
		Notes:          map[string]string{"order": "42"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plink_abc", payload.Str("id"))

	// Exact minor-unit conversion, no rounding.
	assert.Equal(t, float64(50000), got["amount"])
	assert.Equal(t, "INR", got["currency"])
	assert.Equal(t, "get", got["callback_method"])
	assert.Equal(t, testCallback, got["callback_url"], "callback defaults to the configured status endpoint")
	assert.Equal(t, "Course fee", got["description"])

	customer := got["customer"].(map[string]interface{})
	assert.Equal(t, "A Payer", customer["name"])
	assert.Equal(t, "payer@example.com", customer["email"])
	assert.Equal(t, "9876543210", customer["phone"])

	notify := got["notify"].(map[string]interface{})
	assert.Equal(t, true, notify["email"])
	assert.Equal(t, false, notify["sms"])

	notes := got["notes"].(map[string]interface{})
	assert.Equal(t, "42", notes["order"])

	// Generated reference id must be a valid UUID.
	ref, ok := got["reference_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(ref)
	assert.NoError(t, err)
}

func TestGetOrCreatePaymentLink_ExplicitReferenceAndCallback(t *testing.T) {
	var got map[string]interface{}
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"id":"plink_abc"}`)
	})
	c := newTestClient(t, srv)

	_, err := c.GetOrCreatePaymentLink(context.Background(), "", &domain.PaymentLinkRequest{
		Amount:      1,
		ReferenceID: "ORDER-77",
		CallbackURL: "https://other.example.com/done",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORDER-77", got["reference_id"])
	assert.Equal(t, "https://other.example.com/done", got["callback_url"])
	assert.Equal(t, float64(100), got["amount"])
	// Nil notes serialize as an empty object, not null.
	assert.Equal(t, map[string]interface{}{}, got["notes"])
}

func TestGetOrCreatePaymentLink_DistinctGeneratedReferenceIDs(t *testing.T) {
	var refs []string
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		refs = append(refs, body["reference_id"].(string))
		writeJSON(w, http.StatusOK, `{"id":"plink_abc"}`)
	})
	c := newTestClient(t, srv)

	for i := 0; i < 2; i++ {
		_, err := c.GetOrCreatePaymentLink(context.Background(), "", &domain.PaymentLinkRequest{Amount: 500})
		require.NoError(t, err)
	}

	require.Len(t, refs, 2)
	assert.NotEqual(t, refs[0], refs[1], "each create without an explicit reference id gets a fresh UUID")
}

func TestGetOrCreatePaymentLink_InvalidAmount(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	})
	c := newTestClient(t, srv)

	for _, req := range []*domain.PaymentLinkRequest{
		nil,
		{},
		{Amount: 0},
		{Amount: -500},
	} {
		_, err := c.GetOrCreatePaymentLink(context.Background(), "", req)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}
	assert.Zero(t, calls.Load())
}

func TestGetOrCreatePaymentLink_Fetch(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/payment_links/plink_xyz", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"id":"plink_xyz","status":"paid"}`)
	})
	c := newTestClient(t, srv)

	// A supplied id wins even when a request is passed; the request (with its
	// invalid amount) is ignored on the fetch path.
	payload, err := c.GetOrCreatePaymentLink(context.Background(), "plink_xyz", &domain.PaymentLinkRequest{Amount: -1})
	require.NoError(t, err)
	assert.Equal(t, "plink_xyz", payload.Str("id"))
	assert.Equal(t, "paid", payload.Str("status"))
}

func TestGetOrCreatePaymentLink_GatewayError(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least INR 1.00"}}`)
	})
	c := newTestClient(t, srv)

	_, err := c.GetOrCreatePaymentLink(context.Background(), "", &domain.PaymentLinkRequest{Amount: 500})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeGatewayReported, appErr.Code)
	assert.Equal(t, "BAD_REQUEST_ERROR- amount must be at least INR 1.00", appErr.Message)
}

func TestGetOrCreatePaymentLink_TransportError(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `not json`)
	})
	c := newTestClient(t, srv)

	_, err := c.GetOrCreatePaymentLink(context.Background(), "", &domain.PaymentLinkRequest{Amount: 500})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeGatewayTransport, appErr.Code)
	assert.Equal(t, "Something Bad Happened", appErr.Message)
	assert.Error(t, appErr.Err, "full detail stays on the wrapped cause")
}

// --- Payment fetch ---

func TestGetPayment_EmptyID(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	sdk := &fakeSDK{}
	c.payments = sdk

	_, err := c.GetPayment(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, sdk.fetchCalls.Load())
}

func TestGetPayment_OK(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	c.payments = &fakeSDK{
		fetchFunc: func(paymentID string) (map[string]interface{}, error) {
			assert.Equal(t, "pay_123", paymentID)
			return map[string]interface{}{"id": "pay_123", "status": "captured"}, nil
		},
	}

	payload, err := c.GetPayment(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "captured", payload.Str("status"))
}

func TestGetPayment_SDKError(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	c.payments = &fakeSDK{
		fetchFunc: func(string) (map[string]interface{}, error) {
			return nil, errors.New("sdk: connection reset")
		},
	}

	_, err := c.GetPayment(context.Background(), "pay_123")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeGatewayTransport, appErr.Code)
	assert.Equal(t, "Something Bad Happened", appErr.Message)
}

// --- Refunds ---

func TestRefundPayment_EmptyID(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	sdk := &fakeSDK{}
	c.payments = sdk

	_, err := c.RefundPayment(context.Background(), "", 100)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, calls.Load())
	assert.Zero(t, sdk.refundCalls.Load())
}

func TestRefundPayment_Full(t *testing.T) {
	var gotBody map[string]interface{}
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/pay_123/refund", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, `{"id":"rfnd_1","payment_id":"pay_123"}`)
	})
	c := newTestClient(t, srv)
	sdk := &fakeSDK{}
	c.payments = sdk

	payload, err := c.RefundPayment(context.Background(), "pay_123", 0)
	require.NoError(t, err)
	assert.Equal(t, "rfnd_1", payload.Str("id"))

	// Full refund transmits no amount field.
	_, hasAmount := gotBody["amount"]
	assert.False(t, hasAmount)
	assert.Zero(t, sdk.refundCalls.Load(), "full refund does not go through the SDK")
}

func TestRefundPayment_Partial(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	c.payments = &fakeSDK{
		refundFunc: func(paymentID string, amount int) (map[string]interface{}, error) {
			assert.Equal(t, "pay_123", paymentID)
			assert.Equal(t, 7500, amount, "partial amount converted to minor units")
			return map[string]interface{}{"id": "rfnd_2", "amount": float64(7500)}, nil
		},
	}

	payload, err := c.RefundPayment(context.Background(), "pay_123", 75)
	require.NoError(t, err)
	assert.Equal(t, "rfnd_2", payload.Str("id"))
	assert.Zero(t, calls.Load(), "partial refund does not use direct HTTP")
}

func TestRefundPayment_GatewayRejectsExcessAmount(t *testing.T) {
	// Refund > original is deferred to the gateway; it comes back as a
	// business error through the normalizer.
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, srv)
	c.payments = &fakeSDK{
		refundFunc: func(string, int) (map[string]interface{}, error) {
			return map[string]interface{}{
				"error": map[string]interface{}{
					"code":        "BAD_REQUEST_ERROR",
					"description": "The refund amount provided is greater than amount captured",
				},
			}, nil
		},
	}

	_, err := c.RefundPayment(context.Background(), "pay_123", 999999)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeGatewayReported, appErr.Code)
	assert.Equal(t, "BAD_REQUEST_ERROR- The refund amount provided is greater than amount captured", appErr.Message)
}
