package usecase

import (
	"context"
	"time"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/internal/service"
	"uiu-clinic-api/pkg/apperror"
	"uiu-clinic-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Resolve(ctx context.Context, accessToken string) (*entity.User, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		auditService: auditService,
		jwtService:   jwtService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.userRepo.ExistsByUIUID(ctx, tx, req.UIUID)
	if err != nil {
		u.log.Warnf("Failed to check UIU ID: %+v", err)
		return nil, apperror.Internal("failed to register user", err)
	}
	if exists {
		return nil, ErrUIUIDAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, apperror.Internal("failed to register user", err)
	}

	user := &entity.User{
		UIUID:    req.UIUID,
		Username: req.UIUID,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     entity.RoleForUIUID(req.UIUID),
		Phone:    req.Phone,
		IsActive: true,
	}
	user.SetFullName(req.Name)

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		// Lost a race with a concurrent registration of the same ID.
		if isDuplicateKeyError(err, "uiu_id") || isDuplicateKeyError(err, "username") {
			return nil, ErrUIUIDAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, apperror.Internal("failed to register user", err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.UIUID, converter.UserToResponse(user)); err != nil {
		return nil, apperror.Internal("failed to register user", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Internal("failed to register user", err)
	}

	u.log.Infof("Registered user %s as %s", user.UIUID, user.Role)

	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Find user by UIU ID (read-only, no transaction needed)
	user, err := u.userRepo.FindByUIUID(ctx, u.db, req.UIUID)
	if err != nil {
		u.log.Warnf("Failed to find user by UIU ID: %+v", err)
		return nil, apperror.Internal("failed to log in", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Checked after the password so a deactivated account is only revealed to its owner.
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	resp, err := u.issue(user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, map[string]interface{}{
		"uiu_id": user.UIUID,
	}); err != nil {
		u.log.Warnf("Failed to record login of %s: %+v", user.UIUID, err)
	}

	return resp, nil
}

// Logout revokes whichever of the two tokens parses. It never fails: a malformed token or an
// unreachable blacklist is logged and ignored, so repeated logouts are harmless.
func (u *authUsecase) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var userID *uuid.UUID

	if claims := u.revoke(ctx, accessToken, jwt.AccessToken); claims != nil {
		userID = &claims.UserID
	}
	if claims := u.revoke(ctx, refreshToken, jwt.RefreshToken); claims != nil && userID == nil {
		userID = &claims.UserID
	}

	if userID != nil {
		if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), userID, entity.AuditActionUserLogout, nil); err != nil {
			u.log.Warnf("Failed to record logout of %s: %+v", userID, err)
		}
	}

	return nil
}

func (u *authUsecase) revoke(ctx context.Context, token string, tokenType jwt.TokenType) *jwt.Claims {
	if token == "" {
		return nil
	}

	claims, err := u.jwtService.ValidateTokenOfType(token, tokenType)
	if err != nil {
		u.log.Warnf("Logout ignored unusable %s token: %+v", tokenType, err)
		return nil
	}

	if err := u.tokenRepo.Blacklist(ctx, string(tokenType), claims.TokenID, claims.RemainingLifetime(time.Now())); err != nil {
		u.log.Warnf("Failed to blacklist %s token: %+v", tokenType, err)
	}

	return claims
}

// RefreshToken rotates a refresh token: the presented one is blacklisted and a new pair issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateTokenOfType(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := u.tokenRepo.IsBlacklisted(ctx, string(jwt.RefreshToken), claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token blacklist: %+v", err)
		return nil, apperror.Internal("failed to refresh token", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := u.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.tokenRepo.Blacklist(ctx, string(jwt.RefreshToken), claims.TokenID, claims.RemainingLifetime(time.Now())); err != nil {
		u.log.Warnf("Failed to blacklist old refresh token: %+v", err)
		return nil, apperror.Internal("failed to refresh token", err)
	}

	pair, err := u.jwtService.GeneratePair(subjectOf(user))
	if err != nil {
		u.log.Warnf("Failed to generate tokens: %+v", err)
		return nil, apperror.Internal("failed to refresh token", err)
	}

	return converter.TokenPairToResponse(pair), nil
}

// Resolve maps a bearer access token to its active user. The blacklist is consulted on every
// call and an unreachable blacklist fails the call.
func (u *authUsecase) Resolve(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := u.jwtService.ValidateTokenOfType(accessToken, jwt.AccessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := u.tokenRepo.IsBlacklisted(ctx, string(jwt.AccessToken), claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check access token blacklist: %+v", err)
		return nil, apperror.Internal("failed to verify token", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return u.activeUser(ctx, claims.UserID)
}

func (u *authUsecase) activeUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Internal("failed to verify token", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (u *authUsecase) issue(user *entity.User) (*dto.AuthResponse, error) {
	pair, err := u.jwtService.GeneratePair(subjectOf(user))
	if err != nil {
		u.log.Warnf("Failed to generate tokens: %+v", err)
		return nil, apperror.Internal("failed to issue tokens", err)
	}

	return &dto.AuthResponse{
		User:   converter.UserToResponse(user),
		Tokens: converter.TokenPairToResponse(pair),
	}, nil
}

func subjectOf(user *entity.User) jwt.Subject {
	return jwt.Subject{
		UserID: user.ID,
		UIUID:  user.UIUID,
		Role:   string(user.Role),
	}
}
