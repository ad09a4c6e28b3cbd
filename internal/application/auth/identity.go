package auth

import (
	"fmt"
	"strconv"

	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
	pkgjwt "github.com/dicri-gt/sii-dicri-api/pkg/jwt"
)

// Identity es la identidad autenticada de la petición. Se construye una sola
// vez en el middleware a partir de los claims verificados y se pasa explícita
// a los casos de uso; ningún componente la muta.
type Identity struct {
	Sub     int64
	Usuario string
	Nombres string
	Roles   entity.Roles
}

// IdentityDesdeClaims proyecta los claims del token en una identidad tipada.
func IdentityDesdeClaims(c *pkgjwt.Claims) (Identity, error) {
	sub, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("claim sub inválido: %w", err)
	}
	return Identity{
		Sub:     sub,
		Usuario: c.Usuario,
		Nombres: c.Nombres,
		Roles:   entity.RolesDesdeStrings(c.Roles),
	}, nil
}
