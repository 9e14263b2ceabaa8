package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	txmodels "investment-bot-backend/internal/features/transaction/models"
	usermodels "investment-bot-backend/internal/features/user/models"
)

type fakeUserRepo struct {
	updateErr   error
	updateCalls int
}

func (f *fakeUserRepo) Create(context.Context, *usermodels.User) error { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*usermodels.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) GetByTelegramID(context.Context, int64) (*usermodels.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) GetByReferralCode(context.Context, string) (*usermodels.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) Update(context.Context, *usermodels.User) error {
	f.updateCalls++
	return f.updateErr
}
func (f *fakeUserRepo) ReferralCodeExists(context.Context, string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) WalletAddressExists(context.Context, string) (bool, error) {
	return false, nil
}

type fakeTxRepo struct {
	created []*txmodels.Transaction
}

func (f *fakeTxRepo) Create(_ context.Context, tx *txmodels.Transaction) error {
	tx.Reference = "ref-1"
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTxRepo) ListByUser(context.Context, string, int64, int64) ([]*txmodels.Transaction, int64, error) {
	return nil, 0, nil
}

func testUser(balance float64) *usermodels.User {
	return &usermodels.User{
		ID:               primitive.NewObjectID(),
		WalletAddress:    "TABCDEFGHJKMNPQRSTUVWXYZabcdefghjk",
		AvailableBalance: balance,
		TotalInvested:    50,
	}
}

func TestBalance_SplitsAvailableAndLocked(t *testing.T) {
	svc := NewWalletService(&fakeUserRepo{}, &fakeTxRepo{})
	user := testUser(120)

	b := svc.Balance(context.Background(), user)

	assert.Equal(t, 120.0, b.Available)
	assert.Equal(t, 50.0, b.Locked)
	assert.Equal(t, 170.0, b.Total)
	assert.Equal(t, user.WalletAddress, b.Address.Address)
	assert.Equal(t, Currency, b.Address.Currency)
	assert.Equal(t, Network, b.Address.Network)
}

func TestDeposit_CreditsBalanceAndRecordsTransaction(t *testing.T) {
	users := &fakeUserRepo{}
	txs := &fakeTxRepo{}
	svc := NewWalletService(users, txs)
	user := testUser(10)

	receipt, err := svc.Deposit(context.Background(), user, 90)
	require.NoError(t, err)

	assert.Equal(t, 100.0, user.AvailableBalance)
	assert.Equal(t, 100.0, receipt.Balance)
	assert.Equal(t, "ref-1", receipt.Reference)
	assert.Equal(t, 1, users.updateCalls)
	require.Len(t, txs.created, 1)
	assert.Equal(t, txmodels.TypeDeposit, txs.created[0].Type)
	assert.Equal(t, 90.0, txs.created[0].Amount)
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewWalletService(&fakeUserRepo{}, &fakeTxRepo{})

	_, err := svc.Deposit(context.Background(), testUser(10), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Deposit(context.Background(), testUser(10), -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWithdraw_DebitsAmountPlusFee(t *testing.T) {
	users := &fakeUserRepo{}
	txs := &fakeTxRepo{}
	svc := NewWalletService(users, txs)
	user := testUser(200)

	receipt, err := svc.Withdraw(context.Background(), user, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.5, receipt.Fee)
	assert.InDelta(t, 99.5, user.AvailableBalance, 1e-9)
	require.Len(t, txs.created, 1)
	assert.Equal(t, txmodels.TypeWithdrawal, txs.created[0].Type)
	assert.Equal(t, 0.5, txs.created[0].Fee)
}

func TestWithdraw_EnforcesMinimum(t *testing.T) {
	svc := NewWalletService(&fakeUserRepo{}, &fakeTxRepo{})

	_, err := svc.Withdraw(context.Background(), testUser(200), 9.99)
	assert.ErrorIs(t, err, ErrBelowMinWithdrawal)
}

func TestWithdraw_RequiresBalanceCoveringFee(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewWalletService(users, &fakeTxRepo{})
	user := testUser(100)

	// 100 withdrawal needs 100.5 with the fee.
	_, err := svc.Withdraw(context.Background(), user, 100)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 100.0, user.AvailableBalance)
	assert.Zero(t, users.updateCalls)
}
