package razorpay

import (
	"context"
	"net/http"
	"strings"
	"time"

	"razorpay-integration/config"
	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"

	razorpaygo "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

// sdkPayments is the slice of the Razorpay SDK used for payment fetch and
// partial refunds. Satisfied by razorpay-go's *resources.Payment.
type sdkPayments interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client talks to the Razorpay API. Payment link operations and the
// credential probe go over direct HTTP; payment fetch and partial refunds are
// SDK-mediated. Every call funnels through normalize, so callers see one
// uniform failure surface regardless of path.
//
// A Client is stateless apart from its immutable credentials and transport
// handles and is safe for concurrent use.
type Client struct {
	keyID       string
	keySecret   string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
	payments    sdkPayments
	log         zerolog.Logger
}

// NewClient validates the credentials against the gateway and returns a ready
// client. Construction fails atomically: if the probe is rejected no client
// is returned and no SDK handle is initialized.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, log zerolog.Logger) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		keyID:       cfg.KeyID,
		keySecret:   cfg.KeySecret,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log,
	}

	if err := c.validateCredentials(ctx); err != nil {
		return nil, err
	}

	// Only initialize the SDK client once validation succeeds.
	sdk := razorpaygo.NewClient(cfg.KeyID, cfg.KeySecret)
	c.payments = sdk.Payment

	return c, nil
}

// validateCredentials issues a low-cost authenticated read ("list at most one
// customer") with the candidate credentials. Any failure, transport or
// gateway-reported, classifies as an authentication failure.
func (c *Client) validateCredentials(ctx context.Context) error {
	_, err := c.normalize("credentials.validate", func() (domain.Payload, error) {
		return c.doJSON(ctx, http.MethodGet, "/customers?count=1", nil)
	})
	if err != nil {
		return apperror.ErrAuthenticationFailed(err)
	}
	return nil
}
