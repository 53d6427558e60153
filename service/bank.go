package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"LuckyChat/models"
	"LuckyChat/pkg/keylock"
	"LuckyChat/pkg/response"
	"LuckyChat/pkg/strutil"
	"LuckyChat/pkg/utils"
	"LuckyChat/types"

	"gorm.io/gorm"
)

var (
	ErrInvalidTxType       = response.NewError(40005, "无效的交易类型")
	ErrInvalidTxAmount     = response.NewError(40006, "交易金额必须大于0")
	ErrInsufficientBalance = response.NewError(40007, "余额不足")
)

const bankRecentTxLimit = 20

// BankStore 银行账户存取。gorm 实现见 dao.Bank。
type BankStore interface {
	GetAccount(ctx context.Context, userID int64, personaID string) (*models.BankAccount, error)
	SaveAccount(ctx context.Context, account *models.BankAccount) error
	CreateAccount(ctx context.Context, account *models.BankAccount) error
}

// PersonaStore 查询人设的初始余额用
type PersonaStore interface {
	Get(ctx context.Context, userID int64, personaID string) (*models.Persona, error)
}

type IBankService interface {
	Balance(ctx context.Context, userID int64, personaID string) (*types.BankBalance, error)
	Record(ctx context.Context, userID int64, req *types.BankTransactionRequest) (*types.BankBalance, error)
	Transactions(ctx context.Context, userID int64, personaID string, offset, limit int) (*types.BankTransactionPage, error)
}

var _ IBankService = (*BankService)(nil)

type BankService struct {
	store    BankStore
	personas PersonaStore
	locks    *keylock.KeyLock
}

func NewBankService(store BankStore, personas PersonaStore, locks *keylock.KeyLock) *BankService {
	return &BankService{store: store, personas: personas, locks: locks}
}

// Balance 返回余额和最近流水，账户不存在时按人设初始余额惰性开户
func (s *BankService) Balance(ctx context.Context, userID int64, personaID string) (*types.BankBalance, error) {
	personaID = normalizeSession(personaID)

	unlock := s.locks.Lock(bankLockKey(userID, personaID))
	defer unlock()

	account, err := s.loadOrOpen(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}
	return toBankBalance(account), nil
}

// Record 记一笔收入或支出。支出不允许透支。
// 同一账户的并发记账被按键串行化，余额基于锁内新读出的账户计算。
func (s *BankService) Record(ctx context.Context, userID int64, req *types.BankTransactionRequest) (*types.BankBalance, error) {
	if req.Type != models.BankTxIncome && req.Type != models.BankTxExpense {
		return nil, ErrInvalidTxType
	}
	amount := utils.ToCents(req.Amount)
	if amount <= 0 {
		return nil, ErrInvalidTxAmount
	}
	personaID := normalizeSession(req.PersonaID)

	unlock := s.locks.Lock(bankLockKey(userID, personaID))
	defer unlock()

	account, err := s.loadOrOpen(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}

	if req.Type == models.BankTxExpense {
		if account.Balance < amount {
			return nil, ErrInsufficientBalance
		}
		account.Balance -= amount
	} else {
		account.Balance += amount
	}

	tx := models.BankTransaction{
		ID:         strutil.NewTxID(),
		Type:       req.Type,
		Amount:     amount,
		Source:     req.Source,
		SourceName: req.SourceName,
		Note:       req.Note,
		Timestamp:  time.Now().UnixMilli(),
	}
	account.Transactions = append([]models.BankTransaction{tx}, account.Transactions...)

	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return toBankBalance(account), nil
}

// Transactions 按 offset/limit 翻页查询流水，最新在前
func (s *BankService) Transactions(ctx context.Context, userID int64, personaID string, offset, limit int) (*types.BankTransactionPage, error) {
	personaID = normalizeSession(personaID)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = bankRecentTxLimit
	}
	if limit > 200 {
		limit = 200
	}

	account, err := s.store.GetAccount(ctx, userID, personaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.BankTransactionPage{Transactions: []models.BankTransaction{}}, nil
		}
		return nil, err
	}

	total := len(account.Transactions)
	if offset >= total {
		return &types.BankTransactionPage{Transactions: []models.BankTransaction{}, Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]models.BankTransaction, end-offset)
	copy(page, account.Transactions[offset:end])
	return &types.BankTransactionPage{
		Transactions: page,
		Total:        total,
		HasMore:      end < total,
	}, nil
}

// loadOrOpen 在持锁状态下读账户，不存在则按人设初始余额开户并落一笔初始流水
func (s *BankService) loadOrOpen(ctx context.Context, userID int64, personaID string) (*models.BankAccount, error) {
	account, err := s.store.GetAccount(ctx, userID, personaID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var initial int64
	if persona, perr := s.personas.Get(ctx, userID, personaID); perr == nil {
		initial = persona.InitialBalance
	}

	account = &models.BankAccount{
		UserID:    userID,
		PersonaID: personaID,
		Balance:   initial,
		Currency:  "CNY",
	}
	if initial > 0 {
		account.Transactions = []models.BankTransaction{{
			ID:        strutil.NewTxID(),
			Type:      models.BankTxIncome,
			Amount:    initial,
			Source:    "init",
			Note:      "初始资金",
			Timestamp: time.Now().UnixMilli(),
		}}
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func bankLockKey(userID int64, personaID string) string {
	return "bank:" + strconv.FormatInt(userID, 10) + ":" + personaID
}

func toBankBalance(account *models.BankAccount) *types.BankBalance {
	recent := account.Transactions
	if len(recent) > bankRecentTxLimit {
		recent = recent[:bankRecentTxLimit]
	}
	out := make([]models.BankTransaction, len(recent))
	copy(out, recent)
	return &types.BankBalance{
		Balance:      utils.ToYuan(account.Balance),
		Currency:     account.Currency,
		PersonaID:    account.PersonaID,
		Transactions: out,
	}
}
