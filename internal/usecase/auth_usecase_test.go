package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/pkg/apperror"
	"uiu-clinic-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryTokenRepository keeps the blacklist in a map so logout and resolve see the same state.
type memoryTokenRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{revoked: make(map[string]time.Duration)}
}

func (r *memoryTokenRepository) Blacklist(ctx context.Context, tokenType string, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenType+":"+tokenID] = ttl
	return nil
}

func (r *memoryTokenRepository) IsBlacklisted(ctx context.Context, tokenType string, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenType+":"+tokenID]
	return ok, nil
}

type authFixture struct {
	db        *gorm.DB
	userRepo  *MockUserRepository
	tokenRepo *memoryTokenRepository
	audit     *MockAuditService
	jwt       *jwt.JWTService
	usecase   AuthUsecase
}

func newAuthFixture(t *testing.T, db *gorm.DB) *authFixture {
	f := &authFixture{
		db:        db,
		userRepo:  new(MockUserRepository),
		tokenRepo: newMemoryTokenRepository(),
		audit:     new(MockAuditService),
		jwt:       newTestJWTService(),
	}
	f.usecase = NewAuthUsecase(db, newTestLogger(), f.userRepo, f.tokenRepo, f.audit, f.jwt)
	return f
}

func (f *authFixture) tokensFor(t *testing.T, user *entity.User) *jwt.TokenPair {
	t.Helper()
	pair, err := f.jwt.GeneratePair(subjectOf(user))
	require.NoError(t, err)
	return pair
}

func registerRequest(uiuID string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		UIUID:           uiuID,
		Name:            "Rahim Uddin",
		Email:           "rahim@uiu.ac.bd",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	db, sqlMock := newMockDB(t)
	f := newAuthFixture(t, db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	f.userRepo.On("ExistsByUIUID", mock.Anything, mock.Anything, "0112310001").Return(false, nil)
	f.userRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionUserRegister, "user", "0112310001", mock.Anything).Return(nil)

	resp, err := f.usecase.Register(context.Background(), registerRequest("0112310001"))

	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "0112310001", resp.User.UIUID)
	assert.Equal(t, "student", resp.User.Role)
	assert.Equal(t, "Rahim Uddin", resp.User.Name)
	assert.True(t, resp.User.IsActive)

	require.NotNil(t, resp.Tokens)
	claims, err := f.jwt.ValidateTokenOfType(resp.Tokens.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	_, err = f.jwt.ValidateTokenOfType(resp.Tokens.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)

	created := f.userRepo.Calls[1].Arguments.Get(2).(*entity.User)
	assert.Equal(t, "Rahim", created.FirstName)
	assert.Equal(t, "Uddin", created.LastName)
	assert.Equal(t, "0112310001", created.Username)
	assert.NotEqual(t, "password123", created.Password)

	f.userRepo.AssertExpectations(t)
	f.audit.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthUsecase_Register_DerivesRole(t *testing.T) {
	tests := []struct {
		uiuID string
		want  string
	}{
		{uiuID: "STAFF001", want: "staff"},
		{uiuID: "DOC-12", want: "staff"},
		{uiuID: "ADMIN-1", want: "admin"},
		{uiuID: "admin", want: "admin"},
		{uiuID: "0221234", want: "student"},
	}

	for _, tt := range tests {
		t.Run(tt.uiuID, func(t *testing.T) {
			db, sqlMock := newMockDB(t)
			f := newAuthFixture(t, db)

			sqlMock.ExpectBegin()
			sqlMock.ExpectCommit()
			f.userRepo.On("ExistsByUIUID", mock.Anything, mock.Anything, tt.uiuID).Return(false, nil)
			f.userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

			resp, err := f.usecase.Register(context.Background(), registerRequest(tt.uiuID))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.User.Role)
		})
	}
}

func TestAuthUsecase_Register_PasswordMismatch(t *testing.T) {
	db, sqlMock := newMockDB(t)
	f := newAuthFixture(t, db)

	req := registerRequest("0112310001")
	req.ConfirmPassword = "different123"

	resp, err := f.usecase.Register(context.Background(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthUsecase_Register_DuplicateUIUID(t *testing.T) {
	db, sqlMock := newMockDB(t)
	f := newAuthFixture(t, db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	f.userRepo.On("ExistsByUIUID", mock.Anything, mock.Anything, "0112310001").Return(true, nil)

	_, err := f.usecase.Register(context.Background(), registerRequest("0112310001"))

	assert.ErrorIs(t, err, ErrUIUIDAlreadyExists)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthUsecase_Register_DuplicateUIUIDRace(t *testing.T) {
	db, sqlMock := newMockDB(t)
	f := newAuthFixture(t, db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	f.userRepo.On("ExistsByUIUID", mock.Anything, mock.Anything, "0112310001").Return(false, nil)
	f.userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_uiu_id"})

	_, err := f.usecase.Register(context.Background(), registerRequest("0112310001"))

	assert.ErrorIs(t, err, ErrUIUIDAlreadyExists)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthUsecase_Register_StoreFailure(t *testing.T) {
	db, sqlMock := newMockDB(t)
	f := newAuthFixture(t, db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	f.userRepo.On("ExistsByUIUID", mock.Anything, mock.Anything, "0112310001").Return(false, errors.New("connection refused"))

	_, err := f.usecase.Register(context.Background(), registerRequest("0112310001"))

	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthUsecase_Login(t *testing.T) {
	student := newUser("0112310001", entity.RoleStudent)
	student.Password = hashPassword(t, "password123")

	inactive := newUser("0112310002", entity.RoleStudent)
	inactive.Password = hashPassword(t, "password123")
	inactive.IsActive = false

	tests := []struct {
		name     string
		uiuID    string
		password string
		user     *entity.User
		wantErr  error
	}{
		{name: "success", uiuID: student.UIUID, password: "password123", user: student},
		{name: "wrong password", uiuID: student.UIUID, password: "wrong-password", user: student, wantErr: ErrInvalidCredentials},
		{name: "unknown uiu id", uiuID: "0119999999", password: "password123", wantErr: ErrInvalidCredentials},
		{name: "deactivated account", uiuID: inactive.UIUID, password: "password123", user: inactive, wantErr: ErrAccountDeactivated},
		{name: "deactivated account wrong password", uiuID: inactive.UIUID, password: "nope", user: inactive, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newMockDB(t)
			f := newAuthFixture(t, db)

			if tt.user != nil {
				f.userRepo.On("FindByUIUID", mock.Anything, mock.Anything, tt.uiuID).Return(tt.user, nil)
			} else {
				f.userRepo.On("FindByUIUID", mock.Anything, mock.Anything, tt.uiuID).Return(nil, nil)
			}
			f.audit.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionUserLogin, mock.Anything).Return(nil)

			resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{UIUID: tt.uiuID, Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				f.audit.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.user.UIUID, resp.User.UIUID)
			assert.NotEmpty(t, resp.Tokens.AccessToken)
			assert.NotEmpty(t, resp.Tokens.RefreshToken)
			assert.Equal(t, int64(900), resp.Tokens.ExpiresIn)
			f.audit.AssertExpectations(t)
		})
	}
}

func TestAuthUsecase_AuditFailureIsLoggedNotReturned(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)
	log, hook := logtest.NewNullLogger()
	f.usecase = NewAuthUsecase(db, log, f.userRepo, f.tokenRepo, f.audit, f.jwt)

	student := newUser("0112310001", entity.RoleStudent)
	student.Password = hashPassword(t, "password123")
	f.userRepo.On("FindByUIUID", mock.Anything, mock.Anything, student.UIUID).Return(student, nil)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, &student.ID, mock.Anything, mock.Anything).Return(errors.New("audit table locked"))

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{UIUID: student.UIUID, Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "Failed to record login of 0112310001")

	hook.Reset()
	err = f.usecase.Logout(context.Background(), resp.Tokens.AccessToken, resp.Tokens.RefreshToken)
	assert.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "Failed to record logout")
}

func TestAuthUsecase_Login_DeactivatedIsForbidden(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	user := newUser("0112310002", entity.RoleStudent)
	user.Password = hashPassword(t, "password123")
	user.IsActive = false
	f.userRepo.On("FindByUIUID", mock.Anything, mock.Anything, user.UIUID).Return(user, nil)

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{UIUID: user.UIUID, Password: "password123"})

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestAuthUsecase_Resolve(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	user := newUser("0112310001", entity.RoleStudent)
	pair := f.tokensFor(t, user)
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)

	resolved, err := f.usecase.Resolve(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = f.usecase.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = f.usecase.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.usecase.Resolve(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUsecase_Resolve_InactiveOrMissingUser(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	inactive := newUser("0112310001", entity.RoleStudent)
	inactive.IsActive = false
	ghost := newUser("0112310009", entity.RoleStudent)

	f.userRepo.On("FindByID", mock.Anything, mock.Anything, inactive.ID).Return(inactive, nil)
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, ghost.ID).Return(nil, nil)

	_, err := f.usecase.Resolve(context.Background(), f.tokensFor(t, inactive).AccessToken)
	assert.ErrorIs(t, err, ErrUserInactive)

	_, err = f.usecase.Resolve(context.Background(), f.tokensFor(t, ghost).AccessToken)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthUsecase_Resolve_FailsClosedWhenBlacklistUnreachable(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)
	f.tokenRepo.err = errors.New("redis: connection refused")

	user := newUser("0112310001", entity.RoleStudent)

	_, err := f.usecase.Resolve(context.Background(), f.tokensFor(t, user).AccessToken)

	assert.True(t, apperror.Is(err, apperror.KindInternal))
	f.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_LogoutRevokesAccessToken(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	user := newUser("0112310001", entity.RoleStudent)
	pair := f.tokensFor(t, user)
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, &user.ID, entity.AuditActionUserLogout, mock.Anything).Return(nil)

	_, err := f.usecase.Resolve(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(context.Background(), pair.AccessToken, pair.RefreshToken))

	_, err = f.usecase.Resolve(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	for key, ttl := range f.tokenRepo.revoked {
		assert.Positive(t, ttl, key)
	}
	assert.Len(t, f.tokenRepo.revoked, 2)
}

func TestAuthUsecase_Logout_AlwaysSucceeds(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)
	user := newUser("0112310001", entity.RoleStudent)
	pair := f.tokensFor(t, user)
	f.audit.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NoError(t, f.usecase.Logout(context.Background(), "", ""))
	assert.NoError(t, f.usecase.Logout(context.Background(), "garbage", "more-garbage"))
	// An access token in the refresh slot is not a refresh token.
	assert.NoError(t, f.usecase.Logout(context.Background(), "", pair.AccessToken))
	assert.Empty(t, f.tokenRepo.revoked)

	assert.NoError(t, f.usecase.Logout(context.Background(), "", pair.RefreshToken))
	assert.NoError(t, f.usecase.Logout(context.Background(), "", pair.RefreshToken))
	assert.Len(t, f.tokenRepo.revoked, 1)

	f.tokenRepo.err = errors.New("redis: connection refused")
	assert.NoError(t, f.usecase.Logout(context.Background(), pair.AccessToken, pair.RefreshToken))
}

func TestAuthUsecase_RefreshToken_Rotates(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	user := newUser("STAFF001", entity.RoleStaff)
	pair := f.tokensFor(t, user)
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)

	resp, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, resp.RefreshToken)

	claims, err := f.jwt.ValidateTokenOfType(resp.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "STAFF", claims.Role)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthUsecase_RefreshToken_Rejects(t *testing.T) {
	db, _ := newMockDB(t)
	f := newAuthFixture(t, db)

	inactive := newUser("0112310001", entity.RoleStudent)
	inactive.IsActive = false
	pair := f.tokensFor(t, inactive)
	f.userRepo.On("FindByID", mock.Anything, mock.Anything, inactive.ID).Return(inactive, nil)

	_, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "junk"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrUserInactive)
	assert.Empty(t, f.tokenRepo.revoked)
}
