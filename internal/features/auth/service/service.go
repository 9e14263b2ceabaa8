// Package service turns a verified Telegram identity into a durable account
// and a pair of session tokens.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/features/auth/initdata"
	"investment-bot-backend/internal/features/auth/token"
	referralservice "investment-bot-backend/internal/features/referral/service"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

const (
	referralCodeLength = 8
	referralAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Simulated TRC20-style deposit address: prefix plus a base58-flavoured
	// body, generated independently of the referral code scheme.
	walletPrefix     = "T"
	walletBodyLength = 33
	walletAlphabet   = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz123456789"

	defaultFirstName = "Investor"

	// Collisions on an 8-char/36-symbol code are vanishingly rare; hitting
	// this limit means the identifier space is misconfigured or exhausted.
	maxGenerateAttempts = 100
)

var (
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthResult is the payload returned after a successful handshake.
type AuthResult struct {
	User         *usermodels.UserResponse `json:"user"`
	AccessToken  string                   `json:"accessToken"`
	RefreshToken string                   `json:"refreshToken"`
	ExpiresIn    int64                    `json:"expiresIn"`
}

type AuthService interface {
	Authenticate(ctx context.Context, identity *initdata.Identity) (*AuthResult, error)
	Refresh(refreshToken string) (string, error)
}

type authService struct {
	users     userrepo.UserRepository
	referrals referralservice.ReferralService
	tokens    *token.Service
}

func NewAuthService(users userrepo.UserRepository, referrals referralservice.ReferralService, tokens *token.Service) AuthService {
	return &authService{
		users:     users,
		referrals: referrals,
		tokens:    tokens,
	}
}

// Authenticate finds or creates the account for a verified identity and
// mints the session token pair. Re-authentication only syncs mutable profile
// fields; identifiers and monetary counters are never touched here.
func (s *authService) Authenticate(ctx context.Context, identity *initdata.Identity) (*AuthResult, error) {
	user, err := s.users.GetByTelegramID(ctx, identity.ID)
	switch {
	case err == nil:
		if user.Username != identity.Username || user.FirstName != firstNameOf(identity) || user.LastName != identity.LastName {
			user.Username = identity.Username
			user.FirstName = firstNameOf(identity)
			user.LastName = identity.LastName
			if err := s.users.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
		}
	case errors.Is(err, userrepo.ErrNotFound):
		user, err = s.createAccount(ctx, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	accessToken, err := s.tokens.SignAccess(user.ID.Hex(), user.TelegramID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.SignRefresh(user.ID.Hex(), user.TelegramID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token without
// re-contacting Telegram.
func (s *authService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	return s.tokens.SignAccess(claims.Subject, claims.TelegramID)
}

func (s *authService) createAccount(ctx context.Context, identity *initdata.Identity) (*usermodels.User, error) {
	referralCode, err := s.generateReferralCode(ctx)
	if err != nil {
		return nil, err
	}
	walletAddress, err := s.generateWalletAddress(ctx)
	if err != nil {
		return nil, err
	}

	user := &usermodels.User{
		TelegramID:    identity.ID,
		Username:      identity.Username,
		FirstName:     firstNameOf(identity),
		LastName:      identity.LastName,
		WalletAddress: walletAddress,
		ReferralCode:  referralCode,
		IsActive:      true,
	}

	referrer := s.lookupReferrer(ctx, identity)
	if referrer != nil {
		user.ReferredBy = referrer.ID.Hex()
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrDuplicate) {
			// Two first logins raced on the telegram id unique index; the
			// other request won, reuse its account.
			existing, lookupErr := s.users.GetByTelegramID(ctx, identity.ID)
			if lookupErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, lookupErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if referrer != nil {
		if _, err := s.referrals.Link(ctx, referrer.ID.Hex(), user.ID.Hex()); err != nil {
			logger.Warn().Err(err).Int64("telegram_id", identity.ID).Msg("Failed to link referral")
		}
	}

	return user, nil
}

// lookupReferrer resolves the start_param to an inviting account. Unknown
// codes and self-invites are ignored, never fatal to the handshake.
func (s *authService) lookupReferrer(ctx context.Context, identity *initdata.Identity) *usermodels.User {
	if identity.StartParam == "" {
		return nil
	}
	referrer, err := s.users.GetByReferralCode(ctx, identity.StartParam)
	if err != nil || referrer.TelegramID == identity.ID {
		return nil
	}
	return referrer
}

func (s *authService) generateReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := randomString(referralAlphabet, referralCodeLength)
		if err != nil {
			return "", err
		}
		exists, err := s.users.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("referral code space exhausted")
}

func (s *authService) generateWalletAddress(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		body, err := randomString(walletAlphabet, walletBodyLength)
		if err != nil {
			return "", err
		}
		address := walletPrefix + body
		exists, err := s.users.WalletAddressExists(ctx, address)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if !exists {
			return address, nil
		}
	}
	return "", errors.New("wallet address space exhausted")
}

func firstNameOf(identity *initdata.Identity) string {
	if identity.FirstName == "" {
		return defaultFirstName
	}
	return identity.FirstName
}

func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
