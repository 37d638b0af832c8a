package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"strconv"
	"time"

	"spiritual-guidance-be/internal/constant"
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// creditPackage is a purchasable credit bundle. Prices are in IDR as
// Midtrans expects whole rupiah amounts.
type creditPackage struct {
	Credits int
	Price   int64
	Label   string
}

var creditPackages = map[string]creditPackage{
	"starter": {Credits: 10, Price: 50000, Label: "Starter Pack (10 credits)"},
	"seeker":  {Credits: 25, Price: 100000, Label: "Seeker Pack (25 credits)"},
	"mystic":  {Credits: 60, Price: 200000, Label: "Mystic Pack (60 credits)"},
}

type ICreditService interface {
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error)
	GetTransactions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditTransactionResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.TopUpCheckoutRequest) (*dto.TopUpCheckoutResponse, error)
	HandleTopUpNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type creditService struct {
	uowFactory  unitofwork.RepositoryFactory
	serverKey   string
	midtransEnv midtrans.EnvironmentType
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory, midtransServerKey string, midtransProduction bool) ICreditService {
	env := midtrans.Sandbox
	if midtransProduction {
		env = midtrans.Production
	}
	return &creditService{
		uowFactory:  uowFactory,
		serverKey:   midtransServerKey,
		midtransEnv: env,
	}
}

func (s *creditService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	balance, err := uow.UserRepository().GetCreditBalance(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.CreditBalanceResponse{
		UserId:  userId,
		Balance: balance,
	}, nil
}

func (s *creditService) GetTransactions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditTransactionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txs, err := uow.UserRepository().FindCreditTransactions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.CreditTransactionResponse
	for _, t := range txs {
		item := &dto.CreditTransactionResponse{
			Id:        t.Id,
			Type:      string(t.TransactionType),
			Amount:    t.Amount,
			CreatedAt: t.CreatedAt,
		}
		if t.ServiceUsed != nil {
			item.ServiceUsed = *t.ServiceUsed
		}
		if t.Notes != nil {
			item.Notes = *t.Notes
		}
		res = append(res, item)
	}
	return res, nil
}

// Checkout opens a Midtrans Snap transaction for a credit bundle. Credits are
// granted later by the webhook once the payment settles, so nothing is
// written to the ledger here.
func (s *creditService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.TopUpCheckoutRequest) (*dto.TopUpCheckoutResponse, error) {
	pkg, ok := creditPackages[req.Package]
	if !ok {
		return nil, &dto.ClientInputError{Message: fmt.Sprintf("unknown credit package %q", req.Package)}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &dto.NotFoundError{Resource: "user"}
	}

	var sClient snap.Client
	sClient.New(s.serverKey, s.midtransEnv)

	// The order id doubles as the idempotency key on the webhook side
	orderId := uuid.New()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId.String(),
			GrossAmt: pkg.Price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.Package,
				Price: pkg.Price,
				Qty:   1,
				Name:  pkg.Label,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
		CustomField1:    userId.String(),
		CustomField2:    strconv.Itoa(pkg.Credits),
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.TopUpCheckoutResponse{
		OrderId:         orderId,
		Credits:         pkg.Credits,
		GrossAmount:     pkg.Price,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

// HandleTopUpNotification processes a Midtrans settlement and grants the
// purchased credits. Replayed notifications are detected through the order id
// stored on the grant transaction.
func (s *creditService) HandleTopUpNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	fmt.Printf("\n[WEBHOOK] ========== Processing Top-Up Notification ==========\n")
	fmt.Printf("[WEBHOOK] OrderId: %s | Status: %s\n", req.OrderId, req.TransactionStatus)

	if s.serverKey == "" {
		fmt.Println("[WEBHOOK ERROR] MIDTRANS_SERVER_KEY not configured")
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))

	if req.SignatureKey != expectedSignature {
		fmt.Printf("[WEBHOOK ERROR] Signature mismatch for OrderId=%s\n", req.OrderId)
		return fmt.Errorf("invalid signature")
	}
	fmt.Printf("[WEBHOOK] Signature validated successfully\n")

	switch req.TransactionStatus {
	case "capture", "settlement":
		// Proceed to grant
	case "pending":
		fmt.Printf("[WEBHOOK] Payment PENDING - no action needed\n")
		return nil
	default:
		fmt.Printf("[WEBHOOK] Status '%s' - no credits granted\n", req.TransactionStatus)
		return nil
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Invalid order_id format: %s\n", req.OrderId)
		return fmt.Errorf("invalid order id format")
	}

	userId, err := uuid.Parse(req.CustomField1)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Invalid user id in custom_field1: %s\n", req.CustomField1)
		return fmt.Errorf("invalid user id")
	}

	credits, err := strconv.Atoi(req.CustomField2)
	if err != nil || credits <= 0 {
		fmt.Printf("[WEBHOOK ERROR] Invalid credit amount in custom_field2: %s\n", req.CustomField2)
		return fmt.Errorf("invalid credit amount")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Idempotency: each order grants at most once
	existing, err := uow.UserRepository().FindCreditTransactions(ctx,
		specification.Filter("related_id", orderId),
		specification.Filter("transaction_type", string(entity.CreditTxGrant)),
	)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("[WEBHOOK] Order %s already granted, skipping\n", req.OrderId)
		return nil
	}

	remaining, err := uow.UserRepository().GrantCredits(ctx, userId, credits)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to grant credits: %v\n", err)
		return err
	}

	notes := constant.NoteTopUp
	creditTx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          userId,
		TransactionType: entity.CreditTxGrant,
		Amount:          credits,
		RelatedId:       &orderId,
		Notes:           &notes,
		CreatedAt:       time.Now(),
	}
	if err := uow.UserRepository().CreateCreditTransaction(ctx, creditTx); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to record grant transaction: %v\n", err)
		return err
	}

	if err := uow.Commit(); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to commit transaction: %v\n", err)
		return err
	}

	fmt.Printf("[WEBHOOK] Granted %d credits to user %s (balance now %d)\n", credits, userId, remaining)
	fmt.Printf("[WEBHOOK] ===================================================\n\n")
	return nil
}
