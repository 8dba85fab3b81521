package orbital

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
	"github.com/gatewaylabs/orbital-client/pkg/resilience"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TransportConfig contains configuration for the HTTP gateway transport
type TransportConfig struct {
	// Base URL for HTTPS POST submissions
	// Sandbox: https://orbitalvar1.gateway.example.net/transactions
	// Production: https://orbital1.gateway.example.net/transactions
	BaseURL string

	// HTTP client timeout per attempt
	Timeout time.Duration

	// TLS configuration
	InsecureSkipVerify bool

	// Retry configuration. Retries live below the transport boundary; the
	// client above performs exactly one Process call per submission.
	MaxRetries      int
	RetryableErrors []string // Error substrings that trigger a retry
}

// DefaultTransportConfig returns default configuration per environment
func DefaultTransportConfig(environment string) *TransportConfig {
	baseURL := "https://orbital1.gateway.example.net/transactions"
	if environment == "sandbox" {
		baseURL = "https://orbitalvar1.gateway.example.net/transactions"
	}

	return &TransportConfig{
		BaseURL:            baseURL,
		Timeout:            30 * time.Second,
		InsecureSkipVerify: environment == "sandbox",
		MaxRetries:         3,
		RetryableErrors:    []string{"timeout", "connection", "temporary"},
	}
}

// httpTransport implements the GatewayTransport port over HTTPS form-POST
// with XML field responses
type httpTransport struct {
	config     *TransportConfig
	httpClient *http.Client
	logger     *zap.Logger
	breaker    *gobreaker.CircuitBreaker
	backoff    resilience.BackoffStrategy
}

// NewHTTPTransport creates the default HTTP gateway transport
func NewHTTPTransport(config *TransportConfig, logger *zap.Logger) ports.GatewayTransport {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "orbital-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Gateway circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &httpTransport{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		logger:  logger,
		breaker: breaker,
		backoff: resilience.DefaultExponentialBackoff(),
	}
}

// Process sends the built request to the gateway and parses the reply.
// Each call builds its own form payload and HTTP request, so concurrent
// use is safe.
func (t *httpTransport) Process(ctx context.Context, req *ports.ProcessorRequest) (*ports.ProcessorResponse, error) {
	submissionID := uuid.NewString()

	t.logger.Info("Processing gateway transaction",
		zap.String("submission_id", submissionID),
		zap.String("message_type", string(req.MessageType)),
		zap.String("order_id", req.OrderID),
		zap.String("amount", req.Amount),
	)

	formData := t.buildFormData(req)
	encoded := formData.Encode()

	result, err := t.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for attempt := 0; attempt <= t.config.MaxRetries; attempt++ {
			if attempt > 0 {
				delay := t.backoff.NextDelay(attempt - 1)
				t.logger.Info("Retrying gateway request",
					zap.String("submission_id", submissionID),
					zap.Int("attempt", attempt),
					zap.Duration("backoff_delay", delay),
				)
				select {
				case <-ctx.Done():
					return nil, classifyNetworkError(ctx.Err())
				case <-time.After(delay):
				}
			}

			resp, err := t.doAttempt(ctx, encoded, submissionID)
			if err != nil {
				lastErr = err
				if t.isRetryable(err) && attempt < t.config.MaxRetries {
					t.logger.Warn("Retryable gateway error",
						zap.String("submission_id", submissionID),
						zap.Int("attempt", attempt),
						zap.Error(err),
					)
					continue
				}
				return nil, err
			}
			return resp, nil
		}
		return nil, fmt.Errorf("failed after %d retries: %w", t.config.MaxRetries, lastErr)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			t.logger.Warn("Circuit breaker rejected gateway request",
				zap.String("submission_id", submissionID),
				zap.String("breaker_state", t.breaker.State().String()),
			)
			return nil, domain.WrapError(domain.ErrorCodeGatewayError, "gateway circuit open", err)
		}
		return nil, err
	}

	return result.(*ports.ProcessorResponse), nil
}

// doAttempt performs a single HTTP round trip. The request is rebuilt per
// attempt because the body reader is consumed by each send.
func (t *httpTransport) doAttempt(ctx context.Context, encodedForm, submissionID string) (*ports.ProcessorResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.BaseURL, strings.NewReader(encodedForm))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyNetworkError(err)
	}

	t.logger.Info("Received gateway response",
		zap.String("submission_id", submissionID),
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("body_length", len(body)),
	)

	resp, err := t.parseResponse(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeGatewayError, "invalid gateway response", err)
	}
	return resp, nil
}

// classifyNetworkError maps a transport-level failure onto the domain error
// taxonomy. Timeouts are distinguished from unreachable-gateway failures so
// callers can tell a slow gateway from a silent one.
func classifyNetworkError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrorCodeGatewayTimeout, "gateway request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.WrapError(domain.ErrorCodeGatewayTimeout, "gateway request timed out", err)
	}
	return domain.WrapError(domain.ErrorCodeGatewayNoResponse, "no response from gateway", err)
}

// buildFormData constructs URL-encoded form data for the HTTPS POST.
// Optional fields are only attached when set; the account number is never
// logged.
func (t *httpTransport) buildFormData(req *ports.ProcessorRequest) url.Values {
	data := url.Values{}

	data.Set("MESSAGE_TYPE", string(req.MessageType))
	data.Set("BIN", req.BIN)
	data.Set("MERCHANT_ID", req.MerchantID)
	data.Set("ORDER_ID", req.OrderID)
	data.Set("AMOUNT", req.Amount)
	data.Set("TIME_ZONE_CODE", req.TimeZoneCode)
	data.Set("COMMENTS", req.Comments)

	if req.TraceNumber != "" {
		data.Set("TRACE_NUMBER", req.TraceNumber)
	}
	if req.AccountNum != "" {
		data.Set("ACCOUNT_NUM", req.AccountNum)
	}
	if req.ExpDate != "" {
		data.Set("EXP_DATE", req.ExpDate)
	}
	if req.CurrencyCode != "" {
		data.Set("CURRENCY_CODE", req.CurrencyCode)
	}
	if req.TxRefNum != "" {
		data.Set("TX_REF_NUM", req.TxRefNum)
	}

	if req.BillTo != nil {
		data.Set("AVS_NAME", req.BillTo.Name)
		data.Set("AVS_ADDRESS_1", req.BillTo.Address1)
		data.Set("AVS_ADDRESS_2", req.BillTo.Address2)
		data.Set("AVS_CITY", req.BillTo.City)
		data.Set("AVS_STATE", req.BillTo.State)
		data.Set("AVS_ZIP", req.BillTo.Zip)
		data.Set("AVS_COUNTRY", req.BillTo.Country)
		data.Set("AVS_PHONE", req.BillTo.Phone)
	}

	return data
}

// gatewayResponse represents the XML reply structure: the gateway returns
// responses in <FIELD KEY="xxx">value</FIELD> format
type gatewayResponse struct {
	XMLName xml.Name      `xml:"RESPONSE"`
	Fields  gatewayFields `xml:"FIELDS"`
}

type gatewayFields struct {
	Fields []gatewayField `xml:"FIELD"`
}

type gatewayField struct {
	Key   string `xml:"KEY,attr"`
	Value string `xml:",chardata"`
}

// parseResponse parses the XML field reply into a ProcessorResponse.
// Optional fields missing from the reply stay empty.
func (t *httpTransport) parseResponse(body []byte) (*ports.ProcessorResponse, error) {
	var gwResp gatewayResponse
	if err := xml.Unmarshal(body, &gwResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal XML: %w", err)
	}

	fieldMap := make(map[string]string, len(gwResp.Fields.Fields))
	for _, field := range gwResp.Fields.Fields {
		fieldMap[field.Key] = field.Value
	}

	respCode := fieldMap["RESP_CODE"]
	if respCode == "" {
		return nil, fmt.Errorf("RESP_CODE is missing from response")
	}

	statusMessage := fieldMap["STATUS_MSG"]
	if statusMessage == "" {
		statusMessage = GetResponseCode(respCode).Description
	}

	return &ports.ProcessorResponse{
		Approved:      GetResponseCode(respCode).IsApproved,
		RespCode:      respCode,
		StatusMessage: statusMessage,
		TxRefNum:      fieldMap["TX_REF_NUM"],
		AuthCode:      fieldMap["AUTH_CODE"],
		AVSRespCode:   fieldMap["AVS_RESP_CODE"],
		CVV2RespCode:  fieldMap["CVV2_RESP_CODE"],
		ProcessedAt:   time.Now(),
		Raw:           string(body),
	}, nil
}

// isRetryable determines if an error should trigger a retry
func (t *httpTransport) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	for _, retryable := range t.config.RetryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}
