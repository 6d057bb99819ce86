package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dealer-payment-service/config"
	"dealer-payment-service/internal/adapter/http/dto"
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"
	"dealer-payment-service/internal/core/ports/mocks"
	"dealer-payment-service/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testHandlerSePayConfig() config.SePayConfig {
	return config.SePayConfig{
		Enabled:       true,
		AccountNumber: "0123456789",
		AccountName:   "DEALER CO",
		BankCode:      "VCB",
		QRBaseURL:     "https://img.vietqr.io/image",
	}
}

// --- Payment Handler Tests ---

func TestCreatePayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	orderID := uuid.New()
	txID := uuid.New()
	expires := time.Now().Add(15 * time.Minute)

	mockPayment.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreatePaymentRequest) (*ports.PaymentArtifact, error) {
			assert.Equal(t, orderID, req.OrderID)
			assert.Equal(t, domain.GatewayVNPay, req.Gateway)
			assert.Equal(t, ports.PurposeDeposit, req.Purpose)
			return &ports.PaymentArtifact{
				TransactionID: txID,
				Code:          "VNP20250315103000",
				Gateway:       domain.GatewayVNPay,
				Amount:        50000,
				OrderInfo:     "dat coc don hang",
				PayURL:        "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_Amount=5000000",
				ExpiresAt:     &expires,
			}, nil
		})

	body, _ := json.Marshal(dto.CreatePaymentRequest{
		OrderID:   orderID.String(),
		Gateway:   "vnpay",
		Purpose:   "deposit",
		OrderInfo: "dat coc don hang",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "VNP20250315103000", data["code"])
	assert.Equal(t, "vnpay", data["gateway"])
	assert.Contains(t, data["pay_url"], "vpcpay.html")
}

func TestCreatePayment_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	// Empty body => binding error, service never called.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_BadGatewayValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	body, _ := json.Marshal(dto.CreatePaymentRequest{
		OrderID:   uuid.New().String(),
		Gateway:   "paypal",
		Purpose:   "deposit",
		OrderInfo: "dat coc",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_MalformedOrderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/",
		bytes.NewReader([]byte(`{"order_id":"not-a-uuid","gateway":"vnpay","purpose":"deposit","order_info":"x"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	mockPayment.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrNotFound("Order"))

	body, _ := json.Marshal(dto.CreatePaymentRequest{
		OrderID:   uuid.New().String(),
		Gateway:   "sepay",
		Purpose:   "invoice",
		OrderInfo: "thanh toan",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	now := time.Now().UTC()
	mockPayment.EXPECT().GetStatus(gomock.Any(), "VNP20250315103000").Return(&domain.Transaction{
		ID:        uuid.New(),
		Code:      "VNP20250315103000",
		Gateway:   domain.GatewayVNPay,
		Amount:    50000,
		Status:    domain.TransactionStatusSuccess,
		CreatedAt: now,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "code", Value: "VNP20250315103000"}}

	h.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "VNP20250315103000", data["code"])
	assert.Equal(t, "SUCCESS", data["status"])
}

func TestGetStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	mockPayment.EXPECT().GetStatus(gomock.Any(), "VNP00000000000000").
		Return(nil, apperror.ErrTransactionNotFound())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "code", Value: "VNP00000000000000"}}

	h.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQR_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	mockPayment.EXPECT().GetStatus(gomock.Any(), "SEPAY20250315103000").Return(&domain.Transaction{
		ID:        uuid.New(),
		Code:      "SEPAY20250315103000",
		Gateway:   domain.GatewaySePay,
		Amount:    50000,
		OrderInfo: "dat coc don hang",
		Status:    domain.TransactionStatusPending,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "code", Value: "SEPAY20250315103000"}}

	h.GetQR(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestGetQR_RejectsRedirectGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(mockPayment, testHandlerSePayConfig())

	mockPayment.EXPECT().GetStatus(gomock.Any(), "VNP20250315103000").Return(&domain.Transaction{
		Code:    "VNP20250315103000",
		Gateway: domain.GatewayVNPay,
		Amount:  50000,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "code", Value: "VNP20250315103000"}}

	h.GetQR(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Callback Handler Tests ---

func newCallbackHandler(t *testing.T) (*CallbackHandler, *mocks.MockReconciliationService) {
	ctrl := gomock.NewController(t)
	mockRecon := mocks.NewMockReconciliationService(ctrl)
	return NewCallbackHandler(mockRecon, zerolog.Nop()), mockRecon
}

func TestVNPayIPN_AckMapping(t *testing.T) {
	cases := []struct {
		outcome ports.CallbackOutcome
		rspCode string
	}{
		{ports.OutcomeConfirmed, "00"},
		{ports.OutcomeFailureRecorded, "00"},
		{ports.OutcomeAlreadyConfirmed, "02"},
		{ports.OutcomeNotFound, "01"},
		{ports.OutcomeAmountMismatch, "04"},
		{ports.OutcomeBadSignature, "97"},
		{ports.OutcomeRetry, "99"},
	}

	for _, tc := range cases {
		t.Run(string(tc.outcome), func(t *testing.T) {
			h, mockRecon := newCallbackHandler(t)
			mockRecon.EXPECT().HandleVNPayIPN(gomock.Any(), gomock.Any()).
				Return(&ports.CallbackResult{Outcome: tc.outcome})

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?vnp_TxnRef=VNP1", nil)

			h.VNPayIPN(c)

			// The gateway only reads the body code; HTTP is always 200.
			assert.Equal(t, http.StatusOK, w.Code)
			var resp dto.VNPayIPNResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.rspCode, resp.RspCode)
		})
	}
}

func TestVNPayIPN_PassesQueryParams(t *testing.T) {
	h, mockRecon := newCallbackHandler(t)

	mockRecon.EXPECT().HandleVNPayIPN(gomock.Any(), domain.CallbackParams{
		"vnp_TxnRef": "VNP20250315103000",
		"vnp_Amount": "5000000",
	}).Return(&ports.CallbackResult{Outcome: ports.OutcomeConfirmed})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/?vnp_TxnRef=VNP20250315103000&vnp_Amount=5000000", nil)

	h.VNPayIPN(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVNPayReturn_ReportsTransaction(t *testing.T) {
	h, mockRecon := newCallbackHandler(t)

	mockRecon.EXPECT().HandleVNPayReturn(gomock.Any(), gomock.Any()).
		Return(&ports.CallbackResult{
			Outcome: ports.OutcomePending,
			Message: "payment pending confirmation",
			Transaction: &domain.Transaction{
				Code:   "VNP20250315103000",
				Status: domain.TransactionStatusPending,
			},
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?vnp_TxnRef=VNP20250315103000", nil)

	h.VNPayReturn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.VNPayReturnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VNP20250315103000", resp.Code)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestVNPayReturn_BadSignature(t *testing.T) {
	h, mockRecon := newCallbackHandler(t)

	mockRecon.EXPECT().HandleVNPayReturn(gomock.Any(), gomock.Any()).
		Return(&ports.CallbackResult{Outcome: ports.OutcomeBadSignature, Message: "invalid signature"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?vnp_TxnRef=x", nil)

	h.VNPayReturn(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSePayWebhook_StatusMapping(t *testing.T) {
	cases := []struct {
		outcome  ports.CallbackOutcome
		httpCode int
		success  bool
	}{
		{ports.OutcomeConfirmed, http.StatusOK, true},
		{ports.OutcomeAlreadyConfirmed, http.StatusOK, true},
		{ports.OutcomeIgnored, http.StatusOK, true},
		{ports.OutcomeBadSignature, http.StatusUnauthorized, false},
		{ports.OutcomeRetry, http.StatusInternalServerError, false},
		{ports.OutcomeNotFound, http.StatusBadRequest, false},
		{ports.OutcomeAmountMismatch, http.StatusBadRequest, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.outcome), func(t *testing.T) {
			h, mockRecon := newCallbackHandler(t)
			mockRecon.EXPECT().HandleSePayWebhook(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&ports.CallbackResult{Outcome: tc.outcome})

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/",
				bytes.NewReader([]byte(`{"transferType":"in"}`)))

			h.SePayWebhook(c)

			assert.Equal(t, tc.httpCode, w.Code)
			var resp dto.SePayWebhookResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.success, resp.Success)
		})
	}
}

func TestSePayWebhook_ForwardsHeadersAndBody(t *testing.T) {
	h, mockRecon := newCallbackHandler(t)

	payload := []byte(`{"id":123,"transferType":"in"}`)
	mockRecon.EXPECT().
		HandleSePayWebhook(gomock.Any(), payload, "Apikey test-key", "deadbeef").
		Return(&ports.CallbackResult{Outcome: ports.OutcomeConfirmed})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Authorization", "Apikey test-key")
	c.Request.Header.Set(HeaderWebhookSignature, "deadbeef")

	h.SePayWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Len(t, deps, 2)
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	redisDep := resp["dependencies"].(map[string]interface{})["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redisDep["status"])
}
