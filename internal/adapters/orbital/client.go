package orbital

import (
	"context"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
	"github.com/gatewaylabs/orbital-client/pkg/observability"
	"go.uber.org/zap"
)

// ClientConfig holds per-client settings. Set once at construction and
// treated as read-only afterwards, so concurrent Submit calls are safe as
// long as the transport is.
type ClientConfig struct {
	// MerchantID applied to requests that do not carry their own
	MerchantID string

	// Optional overrides for the processor defaults (BIN "000001",
	// timezone "706", currency "840")
	BIN          string
	TimeZoneCode string
	CurrencyCode string

	// Debug enables raw-response logging at Debug level and retention of
	// the raw payload on the result. Never affects control flow.
	Debug bool
}

// Client orchestrates Build -> Transport -> Map for a single gateway.
// One synchronous transport round trip per Submit call; no retries and no
// timeouts are owned at this layer.
type Client struct {
	builder   *RequestBuilder
	transport ports.GatewayTransport
	logger    *zap.Logger
	debug     bool
}

// NewClient creates a gateway client over the given transport
func NewClient(cfg ClientConfig, transport ports.GatewayTransport, logger *zap.Logger) *Client {
	return &Client{
		builder: NewRequestBuilder(BuilderDefaults{
			MerchantID:   cfg.MerchantID,
			BIN:          cfg.BIN,
			TimeZoneCode: cfg.TimeZoneCode,
			CurrencyCode: cfg.CurrencyCode,
		}),
		transport: transport,
		logger:    logger,
		debug:     cfg.Debug,
	}
}

// Submit runs one transaction through the gateway.
//
// Build errors are returned as errors before the transport is contacted;
// the same request must not be retried unchanged. A transport failure with
// no response yields a failed TransactionResult whose status message ends
// in "No response.". A GATEWAY_ERROR (malformed reply, open circuit) is
// returned as an error. A decline is a normal result with Success=false
// and all diagnostic fields populated.
func (c *Client) Submit(ctx context.Context, req *domain.TransactionRequest) (*domain.TransactionResult, error) {
	start := time.Now()

	procReq, err := c.builder.Build(req)
	if err != nil {
		c.logger.Error("Failed to build processor request",
			zap.String("action", string(req.Action)),
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		observability.RecordTransaction(string(req.Action), "build_error", time.Since(start))
		return nil, err
	}

	c.logger.Info("Submitting gateway transaction",
		zap.String("action", string(req.Action)),
		zap.String("order_id", req.OrderID),
		zap.String("account", req.MaskedCardNumber()),
		zap.String("amount", procReq.Amount),
	)

	resp, err := c.transport.Process(ctx, procReq)
	if err != nil && domain.IsDomainError(err, domain.ErrorCodeGatewayError) {
		// A malformed reply or an open circuit is a hard gateway error, not
		// the legacy no-response path: the gateway did answer, or was never
		// asked.
		c.logger.Error("Gateway error",
			zap.String("action", string(req.Action)),
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		observability.RecordTransaction(string(req.Action), "gateway_error", time.Since(start))
		return nil, err
	}
	if resp == nil {
		// Terminal no-response path: the transport error text, if any, is
		// carried into the status message.
		msg := "No response."
		if err != nil {
			msg = err.Error() + " No response."
		}
		c.logger.Error("No response from gateway",
			zap.String("action", string(req.Action)),
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		observability.RecordTransaction(string(req.Action), "no_response", time.Since(start))
		return &domain.TransactionResult{
			Success:       false,
			StatusMessage: msg,
		}, nil
	}

	result := MapResponse(resp)

	if c.debug {
		result.RawResponse = resp.Raw
		c.logger.Debug("Raw gateway response",
			zap.String("order_id", req.OrderID),
			zap.String("raw", resp.Raw),
		)
	}

	outcome := "declined"
	if result.Success {
		outcome = "approved"
	}
	observability.RecordTransaction(string(req.Action), outcome, time.Since(start))

	logFields := []zap.Field{
		zap.String("action", string(req.Action)),
		zap.String("order_id", req.OrderID),
		zap.String("tx_ref_num", result.TransactionID),
		zap.Bool("approved", result.Success),
		zap.String("status", result.StatusMessage),
	}
	if resp.AVSRespCode != "" {
		logFields = append(logFields, zap.String("avs_result", DescribeAVS(resp.AVSRespCode)))
	}
	if resp.CVV2RespCode != "" {
		logFields = append(logFields, zap.String("cvv2_result", DescribeCVV2(resp.CVV2RespCode)))
	}
	c.logger.Info("Gateway transaction completed", logFields...)

	return result, nil
}
