package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"escolta/internal/domain/models"
)

// NewToken issues an HS256 token carrying the user id, email and admin
// flag. The same secret signs both access and refresh tokens.
func NewToken(user models.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID.String()
	claims["email"] = user.Email
	claims["is_admin"] = user.IsAdmin
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(duration).Unix()

	return token.SignedString([]byte(secret))
}
