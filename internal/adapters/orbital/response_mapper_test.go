package orbital

import (
	"testing"

	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
	"github.com/stretchr/testify/assert"
)

func TestMapResponseApproved(t *testing.T) {
	result := MapResponse(&ports.ProcessorResponse{
		Approved:      true,
		RespCode:      "00",
		StatusMessage: "Approved",
		TxRefNum:      "T1",
		AuthCode:      "OK200",
		AVSRespCode:   "Y",
		CVV2RespCode:  "M",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "T1", result.TransactionID)
	assert.Equal(t, "OK200", result.AuthorizationCode)
	assert.Equal(t, "Y", result.AVSResponse)
	assert.Equal(t, "M", result.CVV2Response)
	assert.Equal(t, "Approved", result.StatusMessage)
}

func TestMapResponseDeclinedKeepsDiagnostics(t *testing.T) {
	result := MapResponse(&ports.ProcessorResponse{
		Approved:      false,
		RespCode:      "05",
		StatusMessage: "DO NOT HONOR",
		TxRefNum:      "T2",
		AVSRespCode:   "N",
		CVV2RespCode:  "N",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "T2", result.TransactionID)
	assert.Equal(t, "N", result.AVSResponse)
	assert.Equal(t, "N", result.CVV2Response)
	assert.Equal(t, "DO NOT HONOR", result.StatusMessage)
}

func TestMapResponseMissingOptionalsStayEmpty(t *testing.T) {
	result := MapResponse(&ports.ProcessorResponse{
		Approved: false,
		RespCode: "05",
	})

	assert.Empty(t, result.TransactionID)
	assert.Empty(t, result.AuthorizationCode)
	assert.Empty(t, result.AVSResponse)
	assert.Empty(t, result.CVV2Response)
	// Status falls back to the response-code table description
	assert.Equal(t, "Do not honor", result.StatusMessage)
}

func TestMapResponseNeverRetainsRawByDefault(t *testing.T) {
	result := MapResponse(&ports.ProcessorResponse{
		Approved: true,
		RespCode: "00",
		Raw:      "<RESPONSE/>",
	})

	assert.Empty(t, result.RawResponse)
}
