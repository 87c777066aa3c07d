package usecase

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 管理APIのログイン。運用者は一人なのでパスワードはbcryptハッシュで環境変数に置く。
type AdminAuthUsecase struct {
	passwordHash []byte
	secret       []byte
	accessTTL    time.Duration
}

func NewAdminAuthUsecase(passwordHash string, jwtSecret string, accessTTL time.Duration) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		passwordHash: []byte(passwordHash),
		secret:       []byte(jwtSecret),
		accessTTL:    accessTTL,
	}
}

// Login はパスワード照合に成功したらADMINロールのJWTを返す
func (u *AdminAuthUsecase) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "ADMIN",
		"iat":  now.Unix(),
		"exp":  now.Add(u.accessTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.secret)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return signed, nil
}
