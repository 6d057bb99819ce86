package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"dealer-payment-service/config"
	"dealer-payment-service/internal/core/domain"
	"dealer-payment-service/internal/core/ports"
	"dealer-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const codeTimestampLayout = "20060102150405"

// PaymentServiceImpl implements ports.PaymentService. It builds the
// gateway payable artifact and persists the PENDING transaction plus
// its deposit/invoice anchor in one unit of work.
type PaymentServiceImpl struct {
	orderRepo   ports.OrderRepository
	depositRepo ports.DepositRepository
	invoiceRepo ports.InvoiceRepository
	txRepo      ports.TransactionRepository
	transactor  ports.DBTransactor
	vnpSigner   ports.ParamSigner
	vnpCfg      config.VNPayConfig
	sepCfg      config.SePayConfig
	payCfg      config.PaymentConfig
	loc         *time.Location
	log         zerolog.Logger
	now         func() time.Time
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	orderRepo ports.OrderRepository,
	depositRepo ports.DepositRepository,
	invoiceRepo ports.InvoiceRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	vnpSigner ports.ParamSigner,
	vnpCfg config.VNPayConfig,
	sepCfg config.SePayConfig,
	payCfg config.PaymentConfig,
	loc *time.Location,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		orderRepo:   orderRepo,
		depositRepo: depositRepo,
		invoiceRepo: invoiceRepo,
		txRepo:      txRepo,
		transactor:  transactor,
		vnpSigner:   vnpSigner,
		vnpCfg:      vnpCfg,
		sepCfg:      sepCfg,
		payCfg:      payCfg,
		loc:         loc,
		log:         log,
		now:         time.Now,
	}
}

// CreatePayment validates the request, derives the idempotency code,
// records the PENDING transaction and returns the payable artifact.
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, req ports.CreatePaymentRequest) (*ports.PaymentArtifact, error) {
	switch req.Gateway {
	case domain.GatewayVNPay:
		if !s.vnpCfg.Enabled {
			return nil, apperror.ErrUnknownGateway(string(req.Gateway))
		}
	case domain.GatewaySePay:
		if !s.sepCfg.Enabled {
			return nil, apperror.ErrUnknownGateway(string(req.Gateway))
		}
	default:
		return nil, apperror.ErrUnknownGateway(string(req.Gateway))
	}

	if req.Amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Amount == 0 && req.Purpose != ports.PurposeDeposit {
		return nil, apperror.ErrInvalidAmount()
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}

	amount := req.Amount
	if amount == 0 {
		// Deposit intent with no explicit amount: policy fraction of the
		// order's final amount.
		amount = int64(math.Round(float64(order.FinalAmount) * s.payCfg.DepositFraction))
	}
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Gateway == domain.GatewaySePay && amount < s.sepCfg.MinAmount {
		return nil, apperror.ErrBelowMinimumAmount(amount, s.sepCfg.MinAmount)
	}

	now := s.now().In(s.loc)
	code := req.Gateway.CodePrefix() + now.Format(codeTimestampLayout)

	txn := &domain.Transaction{
		ID:        uuid.New(),
		Code:      code,
		Gateway:   req.Gateway,
		Amount:    amount,
		Currency:  s.currencyFor(req.Gateway),
		Status:    domain.TransactionStatusPending,
		OrderInfo: req.OrderInfo,
		ClientIP:  req.ClientIP,
		CreatedAt: now.UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	switch req.Purpose {
	case ports.PurposeDeposit:
		method := domain.PaymentMethodVNPay
		if req.Gateway == domain.GatewaySePay {
			method = domain.PaymentMethodBankTransfer
		}
		dep := &domain.Deposit{
			ID:        uuid.New(),
			OrderID:   order.ID,
			Amount:    amount,
			Method:    method,
			Status:    domain.DepositStatusPending,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}
		if err := s.depositRepo.Create(ctx, dbTx, dep); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("create deposit: %w", err))
		}
		txn.DepositID = &dep.ID

	case ports.PurposeInvoice:
		inv, err := s.invoiceRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("load invoice: %w", err))
		}
		if inv == nil {
			inv = &domain.Invoice{
				ID:          uuid.New(),
				OrderID:     order.ID,
				Code:        domain.BuildInvoiceCode(order.ID, now),
				TotalAmount: order.FinalAmount,
				Status:      domain.InvoiceStatusDraft,
				CreatedAt:   now.UTC(),
				UpdatedAt:   now.UTC(),
			}
			if err := s.invoiceRepo.Create(ctx, dbTx, inv); err != nil {
				return nil, apperror.ErrDatabaseError(fmt.Errorf("create invoice: %w", err))
			}
		}
		txn.InvoiceID = &inv.ID

	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown payment purpose %q", req.Purpose))
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	artifact := &ports.PaymentArtifact{
		TransactionID: txn.ID,
		Code:          code,
		Gateway:       req.Gateway,
		Amount:        amount,
		OrderInfo:     req.OrderInfo,
	}
	if req.Gateway == domain.GatewayVNPay {
		expires := now.Add(s.vnpCfg.ExpireIn)
		artifact.PayURL = s.buildVNPayURL(code, amount, req.OrderInfo, req.BankCode, req.ClientIP, now, expires)
		expUTC := expires.UTC()
		artifact.ExpiresAt = &expUTC
	} else {
		artifact.RemittanceContent = buildRemittanceContent(code, req.OrderInfo)
		artifact.QRImageURL = s.buildSePayQRURL(amount, artifact.RemittanceContent)
	}

	s.log.Info().
		Str("code", code).
		Str("gateway", string(req.Gateway)).
		Str("purpose", string(req.Purpose)).
		Int64("amount", amount).
		Str("order_id", order.ID.String()).
		Msg("payment created")

	return artifact, nil
}

// GetStatus returns the current transaction state for an idempotency
// code, without side effects.
func (s *PaymentServiceImpl) GetStatus(ctx context.Context, code string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

func (s *PaymentServiceImpl) currencyFor(g domain.Gateway) string {
	if g == domain.GatewayVNPay && s.vnpCfg.Currency != "" {
		return s.vnpCfg.Currency
	}
	return "VND"
}

// buildVNPayURL assembles the signed redirect URL. The amount is scaled
// x100 into an integer as the gateway requires.
func (s *PaymentServiceImpl) buildVNPayURL(code string, amount int64, orderInfo, bankCode, clientIP string, createAt, expireAt time.Time) string {
	params := map[string]string{
		"vnp_Version":    s.vnpCfg.Version,
		"vnp_Command":    "pay",
		"vnp_TmnCode":    s.vnpCfg.MerchantCode,
		"vnp_Amount":     strconv.FormatInt(amount*100, 10),
		"vnp_CurrCode":   s.vnpCfg.Currency,
		"vnp_TxnRef":     code,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  "other",
		"vnp_Locale":     s.vnpCfg.Locale,
		"vnp_ReturnUrl":  s.vnpCfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": createAt.Format(codeTimestampLayout),
		"vnp_ExpireDate": expireAt.Format(codeTimestampLayout),
	}
	if bankCode != "" {
		params["vnp_BankCode"] = bankCode
	}

	signature := s.vnpSigner.Sign(params)

	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set(vnpFieldSecureHash, signature)
	return s.vnpCfg.PayURL + "?" + q.Encode()
}

// buildRemittanceContent embeds the idempotency code as the leading
// token so the payer's transfer description becomes the correlation key.
func buildRemittanceContent(code, orderInfo string) string {
	if orderInfo == "" {
		return code
	}
	return code + " " + orderInfo
}

// buildSePayQRURL renders the VietQR image URL for the configured
// receiving account.
func (s *PaymentServiceImpl) buildSePayQRURL(amount int64, content string) string {
	return fmt.Sprintf("%s/%s-%s-compact2.png?amount=%d&addInfo=%s&accountName=%s",
		s.sepCfg.QRBaseURL,
		s.sepCfg.BankCode,
		s.sepCfg.AccountNumber,
		amount,
		url.QueryEscape(content),
		url.QueryEscape(s.sepCfg.AccountName),
	)
}
