package service

import (
	"context"
	"errors"
	"fmt"

	"investment-bot-backend/internal/common/logger"
	txmodels "investment-bot-backend/internal/features/transaction/models"
	txrepo "investment-bot-backend/internal/features/transaction/repository"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

const (
	// Currency and Network describe the simulated wallet rails.
	Currency = "USDT"
	Network  = "TRC20"

	MinWithdrawal = 10.0
	// WithdrawalFeeRate is charged on top of the withdrawn amount.
	WithdrawalFeeRate = 0.005
)

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrBelowMinWithdrawal  = errors.New("amount is below the withdrawal minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Balance is the wallet snapshot returned to clients. Locked is capital
// currently sitting in active investments.
type Balance struct {
	Available float64     `json:"available"`
	Locked    float64     `json:"locked"`
	Total     float64     `json:"total"`
	Address   AddressInfo `json:"address"`
}

type AddressInfo struct {
	Address  string `json:"address"`
	Currency string `json:"currency"`
	Network  string `json:"network"`
}

// Receipt describes a completed deposit or withdrawal.
type Receipt struct {
	Reference string  `json:"reference"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	Balance   float64 `json:"balance"`
	Status    string  `json:"status"`
}

type WalletService interface {
	Balance(ctx context.Context, user *usermodels.User) *Balance
	Deposit(ctx context.Context, user *usermodels.User, amount float64) (*Receipt, error)
	Withdraw(ctx context.Context, user *usermodels.User, amount float64) (*Receipt, error)
}

type walletService struct {
	users        userrepo.UserRepository
	transactions txrepo.TransactionRepository
}

func NewWalletService(users userrepo.UserRepository, transactions txrepo.TransactionRepository) WalletService {
	return &walletService{
		users:        users,
		transactions: transactions,
	}
}

func (s *walletService) Balance(_ context.Context, user *usermodels.User) *Balance {
	return &Balance{
		Available: user.AvailableBalance,
		Locked:    user.TotalInvested,
		Total:     user.AvailableBalance + user.TotalInvested,
		Address: AddressInfo{
			Address:  user.WalletAddress,
			Currency: Currency,
			Network:  Network,
		},
	}
}

// Deposit credits the account immediately. No on-chain settlement happens;
// the wallet is simulated end to end.
func (s *walletService) Deposit(ctx context.Context, user *usermodels.User, amount float64) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user.AvailableBalance += amount
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	tx := &txmodels.Transaction{
		UserID:      user.ID.Hex(),
		Type:        txmodels.TypeDeposit,
		Amount:      amount,
		Status:      "completed",
		Description: fmt.Sprintf("Deposit to %s", user.WalletAddress),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Recording deposit transaction failed")
	}

	return &Receipt{
		Reference: tx.Reference,
		Type:      txmodels.TypeDeposit,
		Amount:    amount,
		Balance:   user.AvailableBalance,
		Status:    "completed",
	}, nil
}

// Withdraw debits amount plus the fee. The fee is charged on top, so the
// caller must cover amount*(1+WithdrawalFeeRate).
func (s *walletService) Withdraw(ctx context.Context, user *usermodels.User, amount float64) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < MinWithdrawal {
		return nil, ErrBelowMinWithdrawal
	}

	fee := amount * WithdrawalFeeRate
	if user.AvailableBalance < amount+fee {
		return nil, ErrInsufficientBalance
	}

	user.AvailableBalance -= amount + fee
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	tx := &txmodels.Transaction{
		UserID:      user.ID.Hex(),
		Type:        txmodels.TypeWithdrawal,
		Amount:      amount,
		Fee:         fee,
		Status:      "completed",
		Description: fmt.Sprintf("Withdrawal from %s", user.WalletAddress),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Recording withdrawal transaction failed")
	}

	return &Receipt{
		Reference: tx.Reference,
		Type:      txmodels.TypeWithdrawal,
		Amount:    amount,
		Fee:       fee,
		Balance:   user.AvailableBalance,
		Status:    "completed",
	}, nil
}
