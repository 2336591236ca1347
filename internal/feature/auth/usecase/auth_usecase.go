package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"product_backend/internal/feature/auth/domain/entity"
)

// minPasswordLength はパスワードの最低文字数です。
const minPasswordLength = 8

// dummyBcryptHash はユーザー未検出時のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に実行されることを保証します。
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// 同じメールアドレスが既に存在する場合はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスでユーザーを取得します。
	// 存在しない場合はErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer は認証成功後のJWT発行を抽象化します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みJWTを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return u.users.Create(ctx, &entity.User{Email: email, Password: string(hashed)})
}

// Login はユーザーを認証し、成功時にJWTを返します。
// ユーザーが存在しない場合でもbcrypt比較を実行し、応答時間の差で
// 登録済みメールアドレスを推測されないようにします。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, findErr := u.users.FindByEmail(ctx, email)

	hash := dummyBcryptHash
	if findErr == nil {
		hash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if findErr != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
