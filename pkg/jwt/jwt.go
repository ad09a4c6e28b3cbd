package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Los roles viajan en el token ya normalizados (mayúsculas, sin espacios) para
// que la autorización por rol no consulte la base de datos en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	Usuario string   `json:"usuario"`
	Nombres string   `json:"nombres"`
	Roles   []string `json:"roles"`
}

// ErrTokenExpired reexporta el error de expiración para que el middleware
// pueda distinguirlo en los logs sin importar golang-jwt directamente.
var ErrTokenExpired = jwt.ErrTokenExpired

// Generate genera un token JWT firmado HS256 con la identidad y los roles del usuario.
// sub es el id numérico del usuario en formato string.
func Generate(secret, sub, usuario, nombres string, roles []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Usuario: usuario,
		Nombres: nombres,
		Roles:   roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia del token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta;
// el llamador puede distinguir expiración con errors.Is(err, ErrTokenExpired).
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
