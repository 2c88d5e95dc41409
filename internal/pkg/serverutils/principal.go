package serverutils

import (
	"errors"

	"ebook-studio-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// GetPrincipal turns the locals set by the JWT middleware into a typed identity.
func GetPrincipal(ctx *fiber.Ctx) (entity.Principal, error) {
	raw, ok := ctx.Locals(LocalUserID).(string)
	if !ok || raw == "" {
		return entity.Principal{}, ErrUnauthenticated
	}
	owner, err := entity.ParseOwnerID(raw)
	if err != nil {
		return entity.Principal{}, ErrUnauthenticated
	}
	email, _ := ctx.Locals(LocalEmail).(string)
	role, _ := ctx.Locals(LocalRole).(string)
	if role == "" {
		role = string(entity.UserRoleAuthor)
	}
	return entity.Principal{Owner: owner, Email: email, Role: entity.UserRole(role)}, nil
}
