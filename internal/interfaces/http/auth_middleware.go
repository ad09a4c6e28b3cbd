package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dicri-gt/sii-dicri-api/internal/application/auth"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	pkgjwt "github.com/dicri-gt/sii-dicri-api/pkg/jwt"
	"github.com/dicri-gt/sii-dicri-api/pkg/logger"
)

// Locals key de la identidad autenticada en Fiber.
const localIdentity = "identity"

// AuthMiddleware valida el Bearer Token y deja la identidad en c.Locals.
// Token expirado y token inválido responden el mismo 401 hacia afuera, pero
// se distinguen en el log.
func AuthMiddleware(jwtSecret string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return responderError(c, fiber.StatusUnauthorized, "Token requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return responderError(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		claims, err := pkgjwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, pkgjwt.ErrTokenExpired) {
				log.Debug().Str("path", c.Path()).Msg("token expirado")
			} else {
				log.Warn().Str("path", c.Path()).Err(err).Msg("token inválido")
			}
			return responderError(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		ident, err := auth.IdentityDesdeClaims(claims)
		if err != nil {
			log.Warn().Str("path", c.Path()).Err(err).Msg("claims inconsistentes")
			return responderError(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		c.Locals(localIdentity, ident)
		return c.Next()
	}
}

// RequireRol exige que la identidad tenga al menos uno de los roles dados.
// Se monta después de AuthMiddleware.
func RequireRol(roles ...entity.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := GetIdentity(c)
		if !ok {
			return responderError(c, fiber.StatusUnauthorized, "Token requerido")
		}
		if !ident.Roles.AlgunoDe(roles...) {
			return responderError(c, fiber.StatusForbidden, "No autorizado")
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad autenticada de la petición.
func GetIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	ident, ok := c.Locals(localIdentity).(auth.Identity)
	return ident, ok
}
