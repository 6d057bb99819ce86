package handler

import (
	"io"
	"net/http"

	"dealer-payment-service/internal/adapter/http/dto"
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderWebhookSignature carries the optional HMAC signature over the
// raw webhook body.
const HeaderWebhookSignature = "X-Signature"

// CallbackHandler terminates gateway callbacks. These endpoints speak
// each gateway's acknowledgement contract, not the caller API envelope:
// a misshaped answer here makes the gateway retry forever.
type CallbackHandler struct {
	reconSvc ports.ReconciliationService
	log      zerolog.Logger
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(reconSvc ports.ReconciliationService, log zerolog.Logger) *CallbackHandler {
	return &CallbackHandler{reconSvc: reconSvc, log: log}
}

// VNPayIPN handles GET /api/v1/callbacks/vnpay/ipn. The gateway keeps
// redelivering until it reads RspCode "00" or "02", so every branch
// answers HTTP 200 with the code that stops or continues the retry loop.
func (h *CallbackHandler) VNPayIPN(c *gin.Context) {
	result := h.reconSvc.HandleVNPayIPN(c.Request.Context(), queryParams(c))
	c.JSON(http.StatusOK, vnpayAck(result))
}

// VNPayReturn handles GET /api/v1/callbacks/vnpay/return. This is the
// browser landing after payment; it reports state and never mutates.
func (h *CallbackHandler) VNPayReturn(c *gin.Context) {
	result := h.reconSvc.HandleVNPayReturn(c.Request.Context(), queryParams(c))

	resp := dto.VNPayReturnResponse{Message: result.Message}
	if result.Transaction != nil {
		resp.Code = result.Transaction.Code
		resp.Status = string(result.Transaction.Status)
	}
	status := http.StatusOK
	if result.Outcome == ports.OutcomeBadSignature {
		status = http.StatusUnauthorized
	}
	c.JSON(status, resp)
}

// SePayWebhook handles POST /api/v1/callbacks/sepay. The gateway
// retries on any non-2xx answer, so only persistence faults return 5xx.
func (h *CallbackHandler) SePayWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.SePayWebhookResponse{Success: false, Message: "cannot read body"})
		return
	}

	result := h.reconSvc.HandleSePayWebhook(
		c.Request.Context(),
		payload,
		c.GetHeader("Authorization"),
		c.GetHeader(HeaderWebhookSignature),
	)

	switch {
	case result.Applied():
		c.JSON(http.StatusOK, dto.SePayWebhookResponse{Success: true, Message: result.Message})
	case result.Outcome == ports.OutcomeBadSignature:
		c.JSON(http.StatusUnauthorized, dto.SePayWebhookResponse{Success: false, Message: result.Message})
	case result.Outcome == ports.OutcomeRetry:
		c.JSON(http.StatusInternalServerError, dto.SePayWebhookResponse{Success: false, Message: result.Message})
	default:
		c.JSON(http.StatusBadRequest, dto.SePayWebhookResponse{Success: false, Message: result.Message})
	}
}

// queryParams flattens the callback query string into the untrusted
// parameter map. Only the first value of a repeated key is kept.
func queryParams(c *gin.Context) domain.CallbackParams {
	params := domain.CallbackParams{}
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// vnpayAck maps the reconciliation outcome onto the gateway's fixed
// response-code vocabulary.
func vnpayAck(result *ports.CallbackResult) dto.VNPayIPNResponse {
	switch result.Outcome {
	case ports.OutcomeConfirmed, ports.OutcomeFailureRecorded:
		return dto.VNPayIPNResponse{RspCode: "00", Message: "Confirm Success"}
	case ports.OutcomeAlreadyConfirmed:
		return dto.VNPayIPNResponse{RspCode: "02", Message: "Order already confirmed"}
	case ports.OutcomeNotFound:
		return dto.VNPayIPNResponse{RspCode: "01", Message: "Order not found"}
	case ports.OutcomeAmountMismatch:
		return dto.VNPayIPNResponse{RspCode: "04", Message: "Invalid amount"}
	case ports.OutcomeBadSignature:
		return dto.VNPayIPNResponse{RspCode: "97", Message: "Invalid signature"}
	default:
		return dto.VNPayIPNResponse{RspCode: "99", Message: "Unknown error"}
	}
}
