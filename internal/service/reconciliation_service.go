package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"dealer-payment-service/config"
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// amountTolerance absorbs up to one minor unit of rounding drift
	// between the callback amount and the stored amount.
	amountTolerance = int64(1)

	// ackTTL bounds how long a processed callback's acknowledgement is
	// kept for answering redeliveries from cache.
	ackTTL = 24 * time.Hour

	sePayDateLayout = "2006-01-02 15:04:05"
)

// sePayCodeRe matches the idempotency code at the start of a remittance
// content string: the SEPAY prefix followed by a yyyyMMddHHmmss stamp.
var sePayCodeRe = regexp.MustCompile(`^(SEPAY\d{14})\b`)

// ReconciliationServiceImpl implements ports.ReconciliationService.
// The two gateway entry points differ only in signature scheme and
// idempotency-code extraction; resolution, the amount check, the state
// transition and the cascade are shared.
type ReconciliationServiceImpl struct {
	txRepo      ports.TransactionRepository
	depositRepo ports.DepositRepository
	invoiceRepo ports.InvoiceRepository
	orderRepo   ports.OrderRepository
	transactor  ports.DBTransactor
	vnpVerifier ports.ParamSigner
	sepVerifier ports.PayloadVerifier
	ackCache    ports.CallbackAckCache
	notifier    ports.Notifier // nil = notifications disabled
	vnpCfg      config.VNPayConfig
	sepCfg      config.SePayConfig
	loc         *time.Location
	log         zerolog.Logger
	now         func() time.Time
}

// NewReconciliationService creates a new ReconciliationServiceImpl.
func NewReconciliationService(
	txRepo ports.TransactionRepository,
	depositRepo ports.DepositRepository,
	invoiceRepo ports.InvoiceRepository,
	orderRepo ports.OrderRepository,
	transactor ports.DBTransactor,
	vnpVerifier ports.ParamSigner,
	sepVerifier ports.PayloadVerifier,
	ackCache ports.CallbackAckCache,
	notifier ports.Notifier,
	vnpCfg config.VNPayConfig,
	sepCfg config.SePayConfig,
	loc *time.Location,
	log zerolog.Logger,
) *ReconciliationServiceImpl {
	return &ReconciliationServiceImpl{
		txRepo:      txRepo,
		depositRepo: depositRepo,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		transactor:  transactor,
		vnpVerifier: vnpVerifier,
		sepVerifier: sepVerifier,
		ackCache:    ackCache,
		notifier:    notifier,
		vnpCfg:      vnpCfg,
		sepCfg:      sepCfg,
		loc:         loc,
		log:         log,
		now:         time.Now,
	}
}

// notification is the gateway-neutral view of one inbound callback
// after trust checks and field extraction.
type notification struct {
	gateway    domain.Gateway
	code       string
	amount     int64
	success    bool
	gatewayRef string
	bankCode   *string
	cardType   *string
	respCode   string
	signature  *string
	payDate    time.Time
}

// HandleVNPayIPN processes the asynchronous VNPay webhook.
func (s *ReconciliationServiceImpl) HandleVNPayIPN(ctx context.Context, params domain.CallbackParams) *ports.CallbackResult {
	n, res := s.parseVNPay(params)
	if res != nil {
		return res
	}
	return s.reconcile(ctx, n)
}

// HandleVNPayReturn processes the synchronous browser redirect. It runs
// the same trust, resolution and amount checks but never flips status:
// payment application belongs to the IPN path alone.
func (s *ReconciliationServiceImpl) HandleVNPayReturn(ctx context.Context, params domain.CallbackParams) *ports.CallbackResult {
	n, res := s.parseVNPay(params)
	if res != nil {
		return res
	}

	txn, err := s.txRepo.GetByCode(ctx, n.code)
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("return: transaction lookup failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	if txn == nil {
		return &ports.CallbackResult{Outcome: ports.OutcomeNotFound, Message: "transaction not found"}
	}
	if !txn.AmountMatches(n.amount, amountTolerance) {
		s.log.Warn().Str("code", n.code).Int64("reported", n.amount).Int64("stored", txn.Amount).
			Msg("return: amount mismatch, flagged as suspicious")
		return &ports.CallbackResult{Outcome: ports.OutcomeAmountMismatch, Message: "amount mismatch", Transaction: txn}
	}

	switch txn.Status {
	case domain.TransactionStatusSuccess:
		return &ports.CallbackResult{Outcome: ports.OutcomeAlreadyConfirmed, Message: "payment confirmed", Transaction: txn}
	case domain.TransactionStatusFailed:
		return &ports.CallbackResult{Outcome: ports.OutcomeFailureRecorded, Message: "payment failed", Transaction: txn}
	default:
		return &ports.CallbackResult{Outcome: ports.OutcomePending, Message: "payment pending confirmation", Transaction: txn}
	}
}

// parseVNPay performs the VNPay-specific steps: signature verification
// and field extraction. A non-nil result short-circuits processing.
func (s *ReconciliationServiceImpl) parseVNPay(params domain.CallbackParams) (notification, *ports.CallbackResult) {
	sig := params.Get(vnpFieldSecureHash)
	if !s.vnpVerifier.Verify(params, sig) {
		s.log.Warn().Str("txn_ref", params.Get("vnp_TxnRef")).Msg("vnpay: signature verification failed")
		return notification{}, &ports.CallbackResult{Outcome: ports.OutcomeBadSignature, Message: "invalid signature"}
	}

	code := params.Get("vnp_TxnRef")
	if code == "" {
		return notification{}, &ports.CallbackResult{Outcome: ports.OutcomeNotFound, Message: "missing transaction reference"}
	}

	// VNPay reports the amount scaled x100.
	rawAmount, ok := params.Int64("vnp_Amount")
	if !ok {
		return notification{}, &ports.CallbackResult{Outcome: ports.OutcomeAmountMismatch, Message: "unparseable amount"}
	}

	respCode := params.Get("vnp_ResponseCode")
	success := respCode == "00"
	if ts := params.Get("vnp_TransactionStatus"); ts != "" && ts != "00" {
		success = false
	}

	payDate := s.now()
	if raw := params.Get("vnp_PayDate"); raw != "" {
		if t, err := time.ParseInLocation(codeTimestampLayout, raw, s.loc); err == nil {
			payDate = t
		}
	}

	n := notification{
		gateway:    domain.GatewayVNPay,
		code:       code,
		amount:     rawAmount / 100,
		success:    success,
		gatewayRef: params.Get("vnp_TransactionNo"),
		respCode:   respCode,
		payDate:    payDate,
	}
	if v := params.Get("vnp_BankCode"); v != "" {
		n.bankCode = &v
	}
	if v := params.Get("vnp_CardType"); v != "" {
		n.cardType = &v
	}
	if sig != "" {
		n.signature = &sig
	}
	return n, nil
}

// HandleSePayWebhook processes the bank-transfer webhook. The raw JSON
// body is verified before any field is read, then flattened with gjson;
// the idempotency code is parsed out of the remittance content.
func (s *ReconciliationServiceImpl) HandleSePayWebhook(ctx context.Context, payload []byte, authorization, signature string) *ports.CallbackResult {
	if !s.sepVerifier.VerifyAPIKey(authorization) {
		s.log.Warn().Msg("sepay: api key verification failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeBadSignature, Message: "invalid api key"}
	}
	if s.sepVerifier.SignatureRequired() && !s.sepVerifier.VerifyPayload(payload, signature) {
		s.log.Warn().Msg("sepay: payload signature verification failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeBadSignature, Message: "invalid signature"}
	}
	if !gjson.ValidBytes(payload) {
		return &ports.CallbackResult{Outcome: ports.OutcomeNotFound, Message: "malformed payload"}
	}

	body := gjson.ParseBytes(payload)

	// Only incoming transfers settle payments.
	if t := body.Get("transferType").String(); t != "" && t != "in" {
		return &ports.CallbackResult{Outcome: ports.OutcomeIgnored, Message: "not an incoming transfer"}
	}

	content := body.Get("content").String()
	m := sePayCodeRe.FindStringSubmatch(content)
	if m == nil {
		s.log.Warn().Str("content", content).Msg("sepay: remittance content carries no transaction code")
		return &ports.CallbackResult{Outcome: ports.OutcomeNotFound, Message: "unresolvable remittance content"}
	}

	payDate := s.now()
	if raw := body.Get("transactionDate").String(); raw != "" {
		if t, err := time.ParseInLocation(sePayDateLayout, raw, s.loc); err == nil {
			payDate = t
		}
	}

	gatewayRef := body.Get("referenceCode").String()
	if gatewayRef == "" {
		gatewayRef = body.Get("id").String()
	}

	n := notification{
		gateway:    domain.GatewaySePay,
		code:       m[1],
		amount:     body.Get("transferAmount").Int(),
		success:    true, // A received bank transfer is inherently successful
		gatewayRef: gatewayRef,
		respCode:   "00",
		payDate:    payDate,
	}
	if v := body.Get("gateway").String(); v != "" {
		n.bankCode = &v
	}
	if signature != "" {
		n.signature = &signature
	}
	return s.reconcile(ctx, n)
}

// reconcile runs the shared state machine: resolve, idempotency
// short-circuit, amount check, conditional terminal transition, cascade.
// The first callback to win the conditional update applies the change;
// every other delivery observes the terminal state and no-ops.
func (s *ReconciliationServiceImpl) reconcile(ctx context.Context, n notification) *ports.CallbackResult {
	// Fast path: a previously committed acknowledgement answers the
	// redelivery without touching postgres. Best-effort only.
	if cached := s.cachedAck(ctx, n.code); cached != nil {
		return cached
	}

	txn, err := s.txRepo.GetByCode(ctx, n.code)
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: transaction lookup failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	if txn == nil {
		s.log.Warn().Str("code", n.code).Str("gateway", string(n.gateway)).
			Msg("reconcile: callback for unknown transaction")
		return &ports.CallbackResult{Outcome: ports.OutcomeNotFound, Message: "transaction not found"}
	}

	// At-least-once delivery: a settled transaction answers success with
	// no reprocessing.
	if txn.Status == domain.TransactionStatusSuccess {
		return &ports.CallbackResult{Outcome: ports.OutcomeAlreadyConfirmed, Message: "order already confirmed", Transaction: txn}
	}
	if txn.Status == domain.TransactionStatusFailed {
		return &ports.CallbackResult{Outcome: ports.OutcomeFailureRecorded, Message: "payment already recorded as failed", Transaction: txn}
	}

	if !txn.AmountMatches(n.amount, amountTolerance) {
		s.log.Warn().Str("code", n.code).Int64("reported", n.amount).Int64("stored", txn.Amount).
			Msg("reconcile: amount mismatch, flagged as suspicious")
		return &ports.CallbackResult{Outcome: ports.OutcomeAmountMismatch, Message: "invalid amount", Transaction: txn}
	}

	var result *ports.CallbackResult
	if n.success {
		result = s.applySuccess(ctx, txn, n)
	} else {
		result = s.applyFailure(ctx, txn, n)
	}

	if result.Applied() {
		s.storeAck(ctx, n.code, result)
	}
	return result
}

// applySuccess performs the terminal SUCCESS transition and the cascade
// in one unit of work.
func (s *ReconciliationServiceImpl) applySuccess(ctx context.Context, txn *domain.Transaction, n notification) *ports.CallbackResult {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: begin tx failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	outcome := ports.TransactionOutcome{
		GatewayRef:    n.gatewayRef,
		BankCode:      n.bankCode,
		CardType:      n.cardType,
		ResponseCode:  n.respCode,
		SignatureSeen: n.signature,
		TransactionAt: n.payDate.UTC(),
	}
	won, err := s.txRepo.MarkSuccess(ctx, dbTx, txn.ID, outcome)
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: mark success failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	if !won {
		// A concurrent delivery already settled this transaction.
		settled, err := s.txRepo.GetByCode(ctx, n.code)
		if err != nil || settled == nil {
			return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
		}
		return &ports.CallbackResult{Outcome: ports.OutcomeAlreadyConfirmed, Message: "order already confirmed", Transaction: settled}
	}

	if err := s.cascade(ctx, dbTx, txn, n.gateway); err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: cascade failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: commit failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}

	txn.Status = domain.TransactionStatusSuccess
	txn.GatewayRef = &n.gatewayRef
	txn.BankCode = n.bankCode
	txn.CardType = n.cardType
	txn.ResponseCode = &n.respCode
	at := n.payDate.UTC()
	txn.TransactionAt = &at

	s.log.Info().
		Str("code", n.code).
		Str("gateway", string(n.gateway)).
		Int64("amount", txn.Amount).
		Str("gateway_ref", n.gatewayRef).
		Msg("payment reconciled")

	// Fire-and-forget; a notification failure never rolls back the
	// financial write.
	if s.notifier != nil {
		s.notifier.PaymentSucceeded(ctx, txn)
	}

	return &ports.CallbackResult{Outcome: ports.OutcomeConfirmed, Message: "confirm success", Transaction: txn}
}

// applyFailure records a gateway-reported failure. No cascade runs.
func (s *ReconciliationServiceImpl) applyFailure(ctx context.Context, txn *domain.Transaction, n notification) *ports.CallbackResult {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: begin tx failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	won, err := s.txRepo.MarkFailed(ctx, dbTx, txn.ID, n.respCode, n.payDate.UTC())
	if err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: mark failed failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}
	if !won {
		settled, err := s.txRepo.GetByCode(ctx, n.code)
		if err != nil || settled == nil {
			return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
		}
		if settled.Status == domain.TransactionStatusSuccess {
			return &ports.CallbackResult{Outcome: ports.OutcomeAlreadyConfirmed, Message: "order already confirmed", Transaction: settled}
		}
		return &ports.CallbackResult{Outcome: ports.OutcomeFailureRecorded, Message: "payment failed", Transaction: settled}
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Str("code", n.code).Msg("reconcile: commit failed")
		return &ports.CallbackResult{Outcome: ports.OutcomeRetry, Message: "temporary error"}
	}

	txn.Status = domain.TransactionStatusFailed
	txn.ResponseCode = &n.respCode

	s.log.Info().Str("code", n.code).Str("response_code", n.respCode).Msg("payment failure recorded")
	return &ports.CallbackResult{Outcome: ports.OutcomeFailureRecorded, Message: "payment failed", Transaction: txn}
}

// cascade propagates a successful transaction into its deposit or
// invoice and, transitively, the order. All writes share dbTx with the
// transaction transition so a partial cascade cannot be observed.
func (s *ReconciliationServiceImpl) cascade(ctx context.Context, dbTx pgx.Tx, txn *domain.Transaction, gateway domain.Gateway) error {
	switch {
	case txn.SettlesDeposit():
		dep, err := s.depositRepo.GetByID(ctx, *txn.DepositID)
		if err != nil {
			return fmt.Errorf("load deposit: %w", err)
		}
		if dep == nil {
			return fmt.Errorf("deposit %s not found", txn.DepositID)
		}
		if _, err := s.depositRepo.MarkPaid(ctx, dbTx, dep.ID); err != nil {
			return fmt.Errorf("mark deposit paid: %w", err)
		}
		// AWAITING_DEPOSIT -> IN_PROGRESS; the conditional advance is a
		// no-op for orders already further along.
		if _, err := s.orderRepo.Advance(ctx, dbTx, dep.OrderID, domain.OrderStatusInProgress); err != nil {
			return fmt.Errorf("advance order: %w", err)
		}

	case txn.SettlesInvoice():
		inv, err := s.invoiceRepo.GetByID(ctx, *txn.InvoiceID)
		if err != nil {
			return fmt.Errorf("load invoice: %w", err)
		}
		if inv == nil {
			return fmt.Errorf("invoice %s not found", txn.InvoiceID)
		}
		if _, err := s.invoiceRepo.MarkPaid(ctx, dbTx, inv.ID); err != nil {
			return fmt.Errorf("mark invoice paid: %w", err)
		}
		if _, err := s.orderRepo.Advance(ctx, dbTx, inv.OrderID, s.paidOrderStatus(gateway)); err != nil {
			return fmt.Errorf("advance order: %w", err)
		}

	default:
		return fmt.Errorf("transaction %s settles neither deposit nor invoice", txn.ID)
	}
	return nil
}

// paidOrderStatus returns the per-gateway terminal order status for a
// paid invoice. The divergence between gateways is a deliberate policy
// knob; see config.
func (s *ReconciliationServiceImpl) paidOrderStatus(gateway domain.Gateway) domain.OrderStatus {
	if gateway == domain.GatewaySePay {
		return domain.OrderStatus(s.sepCfg.PaidOrderStatus)
	}
	return domain.OrderStatus(s.vnpCfg.PaidOrderStatus)
}

func (s *ReconciliationServiceImpl) cachedAck(ctx context.Context, code string) *ports.CallbackResult {
	if s.ackCache == nil {
		return nil
	}
	raw, err := s.ackCache.Get(ctx, code)
	if err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("ack cache read failed, falling through to db")
		return nil
	}
	if raw == nil {
		return nil
	}
	var cached ports.CallbackResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil
	}
	// A cached acknowledgement always answers a redelivery.
	if cached.Outcome == ports.OutcomeConfirmed {
		cached.Outcome = ports.OutcomeAlreadyConfirmed
	}
	return &cached
}

func (s *ReconciliationServiceImpl) storeAck(ctx context.Context, code string, result *ports.CallbackResult) {
	if s.ackCache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.ackCache.Set(ctx, code, raw, ackTTL); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("ack cache write failed")
	}
}
