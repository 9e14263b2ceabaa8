package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investment-bot-backend/internal/common/cache"
	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/features/investment/models"
	"investment-bot-backend/internal/features/investment/repository"
	referralservice "investment-bot-backend/internal/features/referral/service"
	txmodels "investment-bot-backend/internal/features/transaction/models"
	txrepo "investment-bot-backend/internal/features/transaction/repository"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

const (
	plansCacheKey = "investment:plans"
	plansCacheTTL = time.Hour
)

var (
	ErrPlanNotFound        = errors.New("investment plan not found")
	ErrAmountOutOfRange    = errors.New("amount is outside the plan limits")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// plans is the fixed catalog. Returns are locked in at purchase time.
var plans = []*models.Plan{
	{
		ID:               "plan_basic",
		Name:             "Basic Plan",
		Description:      "Perfect for beginners",
		MinAmount:        10,
		MaxAmount:        1000,
		Duration:         30,
		ProfitPercentage: 8,
		TotalReturn:      108,
		RiskLevel:        "low",
		IsActive:         true,
		Features:         []string{"Daily profit accrual", "Principal returned at maturity", "Cancel anytime"},
	},
	{
		ID:               "plan_pro",
		Name:             "Pro Plan",
		Description:      "For experienced investors",
		MinAmount:        100,
		MaxAmount:        5000,
		Duration:         90,
		ProfitPercentage: 30,
		TotalReturn:      130,
		RiskLevel:        "medium",
		IsActive:         true,
		Features:         []string{"Higher returns", "Priority support", "Compound option"},
	},
	{
		ID:               "plan_elite",
		Name:             "Elite Plan",
		Description:      "Maximum returns for serious capital",
		MinAmount:        500,
		MaxAmount:        20000,
		Duration:         180,
		ProfitPercentage: 75,
		TotalReturn:      175,
		RiskLevel:        "high",
		IsActive:         true,
		Features:         []string{"Maximum returns", "Dedicated manager", "Early withdrawal option"},
	},
}

type InvestmentService interface {
	Plans(ctx context.Context) ([]*models.Plan, error)
	History(ctx context.Context, userID string) ([]*models.InvestmentResponse, error)
	Invest(ctx context.Context, user *usermodels.User, planID string, amount float64) (*models.InvestmentResponse, error)
}

type investmentService struct {
	investments  repository.InvestmentRepository
	users        userrepo.UserRepository
	transactions txrepo.TransactionRepository
	referrals    referralservice.ReferralService
	cache        cache.Cache
}

func NewInvestmentService(
	investments repository.InvestmentRepository,
	users userrepo.UserRepository,
	transactions txrepo.TransactionRepository,
	referrals referralservice.ReferralService,
	c cache.Cache,
) InvestmentService {
	return &investmentService{
		investments:  investments,
		users:        users,
		transactions: transactions,
		referrals:    referrals,
		cache:        c,
	}
}

func (s *investmentService) Plans(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	if err := s.cache.Get(ctx, plansCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn().Err(err).Msg("Plans cache read failed")
	}

	if err := s.cache.Set(ctx, plansCacheKey, plans, plansCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Plans cache write failed")
	}
	return plans, nil
}

func (s *investmentService) History(ctx context.Context, userID string) ([]*models.InvestmentResponse, error) {
	investments, err := s.investments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.InvestmentResponse, 0, len(investments))
	for _, inv := range investments {
		out = append(out, inv.ToResponse())
	}
	return out, nil
}

// Invest locks amount into planID for user. The total return is computed once
// here; the investment never re-prices.
func (s *investmentService) Invest(ctx context.Context, user *usermodels.User, planID string, amount float64) (*models.InvestmentResponse, error) {
	plan := planByID(planID)
	if plan == nil || !plan.IsActive {
		return nil, ErrPlanNotFound
	}
	if amount < plan.MinAmount || amount > plan.MaxAmount {
		return nil, ErrAmountOutOfRange
	}
	if user.AvailableBalance < amount {
		return nil, ErrInsufficientBalance
	}

	now := time.Now()
	investment := &models.Investment{
		UserID:       user.ID.Hex(),
		PlanID:       plan.ID,
		Amount:       amount,
		InterestRate: plan.ProfitPercentage,
		TotalReturn:  amount * (1 + plan.ProfitPercentage/100),
		Status:       "active",
		EndsAt:       now.AddDate(0, 0, plan.Duration),
	}
	if err := s.investments.Create(ctx, investment); err != nil {
		return nil, fmt.Errorf("create investment: %w", err)
	}

	user.AvailableBalance -= amount
	user.TotalInvested += amount
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	tx := &txmodels.Transaction{
		UserID:      user.ID.Hex(),
		Type:        txmodels.TypeInvestment,
		Amount:      amount,
		Status:      "completed",
		Description: fmt.Sprintf("Investment in %s", plan.Name),
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Recording investment transaction failed")
	}

	if err := s.referrals.CreditBonus(ctx, user, amount); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Crediting referral bonus failed")
	}

	return investment.ToResponse(), nil
}

func planByID(id string) *models.Plan {
	for _, p := range plans {
		if p.ID == id {
			return p
		}
	}
	return nil
}
