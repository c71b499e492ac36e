package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"transfleet/internal/domain"
	"transfleet/internal/redis"
	"transfleet/internal/upstream"
)

// SignInResult is returned to the device after a successful sign-in.
type SignInResult struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

// AuthService signs drivers in and out and serves their profile.
type AuthService struct {
	users      upstream.UserAPI
	sessions   redis.SessionStoreInterface
	cache      redis.CacheStoreInterface
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users upstream.UserAPI, sessions redis.SessionStoreInterface, cache redis.CacheStoreInterface, sessionTTL time.Duration) *AuthService {
	return &AuthService{users: users, sessions: sessions, cache: cache, sessionTTL: sessionTTL}
}

// SignIn exchanges credentials for an access token, resolves the user
// id from the token's claims, warms the profile cache, and stores the
// session. The token is never verified locally; the fleet server is
// the issuer and sole verifier, this side only reads the id claim.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	token, err := s.users.SignIn(ctx, upstream.SignInRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}

	userID, err := userIDFromToken(token)
	if err != nil {
		return nil, err
	}

	session := domain.Session{UserID: userID, Token: token}
	profile, err := s.fetchProfile(ctx, session)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.SetProfile(ctx, userID, profile); cerr != nil {
		log.Printf("profile cache write failed for %s: %v", userID, cerr)
	}

	if err := s.sessions.Set(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &SignInResult{Token: token, Profile: profile}, nil
}

// SignUp registers a new driver account.
func (s *AuthService) SignUp(ctx context.Context, req upstream.SignUpRequest) error {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return ErrInvalidCredentials
	}
	if err := s.users.SignUp(ctx, req); err != nil {
		return fmt.Errorf("sign-up failed: %w", err)
	}
	return nil
}

// SignOut drops the local session and profile cache. The upstream
// sign-out is best effort; a dead upstream must not keep the driver
// signed in locally.
func (s *AuthService) SignOut(ctx context.Context, session domain.Session) error {
	if err := s.users.SignOut(ctx, session); err != nil {
		log.Printf("upstream sign-out failed for %s: %v", session.UserID, err)
	}
	if err := s.cache.InvalidateProfile(ctx, session.UserID); err != nil {
		log.Printf("profile cache invalidation failed for %s: %v", session.UserID, err)
	}
	if err := s.sessions.Delete(ctx, session.Token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Profile returns the driver's profile, served from cache when warm.
func (s *AuthService) Profile(ctx context.Context, session domain.Session) (*domain.Profile, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	if profile, err := s.cache.GetProfile(ctx, session.UserID); err == nil && profile != nil {
		return profile, nil
	}

	profile, err := s.fetchProfile(ctx, session)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.SetProfile(ctx, session.UserID, profile); cerr != nil {
		log.Printf("profile cache write failed for %s: %v", session.UserID, cerr)
	}
	return profile, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, session domain.Session) (*domain.Profile, error) {
	user, err := s.users.GetUserDetail(ctx, session, session.UserID)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to fetch user detail: %w", err)
	}

	profile := &domain.Profile{User: *user}
	dv, err := s.users.GetDriverVehicle(ctx, session, session.UserID)
	if err != nil {
		// A user without driver/vehicle records still has a profile.
		if !errors.Is(err, upstream.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch driver vehicle: %w", err)
		}
		return profile, nil
	}
	profile.Driver = dv.Driver
	profile.Vehicle = dv.Vehicle
	return profile, nil
}

// userIDFromToken reads the "id" claim out of the access token without
// verifying the signature.
func userIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: undecodable access token", ErrInvalidCredentials)
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: access token carries no user id", ErrInvalidCredentials)
	}
	return id, nil
}
