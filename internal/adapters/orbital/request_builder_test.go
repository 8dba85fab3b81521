package orbital

import (
	"testing"

	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *RequestBuilder {
	return NewRequestBuilder(BuilderDefaults{MerchantID: "700000123456"})
}

func authRequest() *domain.TransactionRequest {
	return &domain.TransactionRequest{
		Action:      domain.ActionAuthorizationOnly,
		OrderID:     "order-1",
		CardNumber:  "4111111111111111",
		ExpDate:     "1227",
		AmountCents: 2999,
	}
}

func TestBuildAuthorizationOnly(t *testing.T) {
	builder := newTestBuilder()
	req := authRequest()
	req.BillTo = &domain.BillTo{
		Name:     "Jane Cardholder",
		Address1: "123 Main St",
		City:     "Springfield",
		State:    "IL",
		Zip:      "62704",
	}

	out, err := builder.Build(req)
	require.NoError(t, err)

	assert.Equal(t, ports.MessageTypeAuthOnly, out.MessageType)
	assert.Equal(t, "700000123456", out.MerchantID)
	assert.Equal(t, "4111111111111111", out.AccountNum)
	assert.Equal(t, "1227", out.ExpDate)
	assert.Equal(t, "840", out.CurrencyCode)
	require.NotNil(t, out.BillTo)
	assert.Equal(t, "Jane Cardholder", out.BillTo.Name)
	assert.Equal(t, "62704", out.BillTo.Zip)
	// Absent bill-to fields pass through empty, not defaulted
	assert.Equal(t, "", out.BillTo.Country)
}

func TestBuildAuthorizationAndCapture(t *testing.T) {
	builder := newTestBuilder()
	req := authRequest()
	req.Action = domain.ActionAuthorizationAndCapture

	out, err := builder.Build(req)
	require.NoError(t, err)

	assert.Equal(t, ports.MessageTypeAuthCapture, out.MessageType)
	assert.Equal(t, "840", out.CurrencyCode)
	assert.Equal(t, "1227", out.ExpDate)
}

func TestBuildCapture(t *testing.T) {
	builder := newTestBuilder()

	out, err := builder.Build(&domain.TransactionRequest{
		Action:      domain.ActionCapture,
		OrderID:     "order-2",
		TxRefNum:    "T100",
		AmountCents: 2999,
	})
	require.NoError(t, err)

	assert.Equal(t, ports.MessageTypeMarkForCapture, out.MessageType)
	assert.Equal(t, "T100", out.TxRefNum)
	assert.Nil(t, out.BillTo)
	assert.Empty(t, out.ExpDate)
	assert.Empty(t, out.CurrencyCode)
}

func TestBuildCaptureRequiresTxRefNum(t *testing.T) {
	builder := newTestBuilder()

	out, err := builder.Build(&domain.TransactionRequest{
		Action:  domain.ActionCapture,
		OrderID: "order-2",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, domain.IsBuildError(err))
	assert.Equal(t, domain.ErrorCodeMissingField, domain.GetErrorCode(err))
}

func TestBuildCredit(t *testing.T) {
	builder := newTestBuilder()

	out, err := builder.Build(&domain.TransactionRequest{
		Action:      domain.ActionCredit,
		OrderID:     "order-3",
		CardNumber:  "4111111111111111",
		AmountCents: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, ports.MessageTypeRefund, out.MessageType)
	assert.Equal(t, "840", out.CurrencyCode)
	assert.Equal(t, "000000000500", out.Amount)
	assert.Nil(t, out.BillTo)
	assert.Empty(t, out.ExpDate)
}

func TestBuildUnsupportedAction(t *testing.T) {
	builder := newTestBuilder()

	out, err := builder.Build(&domain.TransactionRequest{
		Action:  domain.Action("Bogus"),
		OrderID: "order-4",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, domain.ErrorCodeUnsupportedAction, domain.GetErrorCode(err))
}

func TestBuildAmountFormatting(t *testing.T) {
	builder := newTestBuilder()

	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "000000000000"},
		{"small", 5, "000000000005"},
		{"typical", 2999, "000000002999"},
		{"large", 999999999999, "999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authRequest()
			req.AmountCents = tt.cents

			out, err := builder.Build(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Amount)
			assert.Len(t, out.Amount, 12)
		})
	}
}

func TestBuildAmountOutOfRange(t *testing.T) {
	builder := newTestBuilder()

	for _, cents := range []int64{-1, 1000000000000} {
		req := authRequest()
		req.AmountCents = cents

		out, err := builder.Build(req)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.Equal(t, domain.ErrorCodeInvalidAmount, domain.GetErrorCode(err))
	}
}

func TestBuildTraceNumberGate(t *testing.T) {
	builder := newTestBuilder()

	tests := []struct {
		name  string
		trace string
		want  string
	}{
		{"numeric trace attached verbatim", "4567", "4567"},
		{"alphanumeric trace silently omitted", "A123", ""},
		{"empty trace omitted", "", ""},
		{"trace with spaces omitted", "45 67", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authRequest()
			req.TraceNumber = tt.trace

			out, err := builder.Build(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.TraceNumber)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	builder := newTestBuilder()

	out, err := builder.Build(authRequest())
	require.NoError(t, err)

	assert.Equal(t, "000001", out.BIN)
	assert.Equal(t, "706", out.TimeZoneCode)
	assert.Equal(t, "", out.Comments)
}

func TestBuildDefaultsOverridablePerRequest(t *testing.T) {
	builder := newTestBuilder()
	req := authRequest()
	req.BIN = "000002"
	req.TimeZoneCode = "101"
	req.CurrencyCode = "124"

	out, err := builder.Build(req)
	require.NoError(t, err)

	assert.Equal(t, "000002", out.BIN)
	assert.Equal(t, "101", out.TimeZoneCode)
	assert.Equal(t, "124", out.CurrencyCode)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	builder := newTestBuilder()
	req := authRequest()
	req.BillTo = &domain.BillTo{Name: "Jane"}

	out, err := builder.Build(req)
	require.NoError(t, err)

	// The caller's request keeps its zero values and its own bill-to
	assert.Equal(t, "", req.BIN)
	assert.Equal(t, "", req.MerchantID)
	out.BillTo.Name = "changed"
	assert.Equal(t, "Jane", req.BillTo.Name)
}

func TestBuildMerchantIDFromRequestWins(t *testing.T) {
	builder := newTestBuilder()
	req := authRequest()
	req.MerchantID = "999999999999"

	out, err := builder.Build(req)
	require.NoError(t, err)
	assert.Equal(t, "999999999999", out.MerchantID)
}
