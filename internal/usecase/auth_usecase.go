package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"cartservice/internal/domain/model"
	"cartservice/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	LoginTypeJWT   = "jwt"
	LoginTypeBasic = "basic"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type RegisterOutput struct {
	UserID string `json:"userId"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type TokenOutput struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

// JWTのclaims（subはユーザーID）
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	idGen    IDGenerator
	clock    Clock
	secret   []byte
	tokenTTL time.Duration
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clock,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

var errUserExists = ErrValidation("User with such username already exists")

// 会員登録。パスワードはbcryptで保存
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return RegisterOutput{}, ErrValidation("username and password are required")
	}

	//重複チェック
	existing, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return RegisterOutput{}, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return RegisterOutput{}, errUserExists
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("hash password: %w", err)
	}

	now := u.clock.Now()
	user := &model.User{
		ID:        u.idGen.NewID(),
		Username:  username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	//同時登録はunique indexで弾かれる
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return RegisterOutput{}, errUserExists
		}
		return RegisterOutput{}, err
	}

	return RegisterOutput{UserID: user.ID}, nil
}

// username/passwordを検証してユーザーIDを返す。ユーザーは作らない
func (u *AuthUsecase) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrUnauthorized
	}

	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(user.Password, password); err != nil {
		return "", ErrUnauthorized
	}
	return user.ID, nil
}

// typeはjwt（既定）かbasic
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput, loginType string) (TokenOutput, error) {
	userID, err := u.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return TokenOutput{}, err
	}

	if strings.EqualFold(loginType, LoginTypeBasic) {
		raw := in.Username + ":" + in.Password
		return TokenOutput{
			TokenType:   "Basic",
			AccessToken: base64.StdEncoding.EncodeToString([]byte(raw)),
		}, nil
	}

	token, err := u.issueToken(userID, in.Username)
	if err != nil {
		return TokenOutput{}, fmt.Errorf("sign token: %w", err)
	}
	return TokenOutput{TokenType: "Bearer", AccessToken: token}, nil
}

func (u *AuthUsecase) issueToken(userID, username string) (string, error) {
	now := u.clock.Now()
	claims := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

// Bearerトークンを検証してユーザーIDを返す（HS256のみ）
func (u *AuthUsecase) VerifyToken(raw string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return u.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.clock.Now),
	)
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
