package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
	"contractflow.backend/internal/interfaces/http/response"
	"contractflow.backend/pkg/jwt"
	"contractflow.backend/pkg/logger"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	UserRoleHeader = "x-user-role"
	UserIDHeader   = "x-user-id"
	UserNameHeader = "x-user-name"

	ActorKey = "actor"
)

// ActorConfig is the identity applied when a request does not name one
type ActorConfig struct {
	DefaultRole  entities.Role
	DefaultID    string
	DefaultName  string
	AllowHeaders bool
}

// ActorMiddleware resolves who is calling. A bearer token wins over the
// x-user-* headers; without either the configured default actor is used.
// The role is not verified against any directory.
func ActorMiddleware(cfg ActorConfig, jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := entities.Actor{ID: cfg.DefaultID, Name: cfg.DefaultName, Role: cfg.DefaultRole}

		if header := c.GetHeader(AuthorizationHeader); header != "" && jwtService != nil {
			if !strings.HasPrefix(header, BearerPrefix) {
				response.Error(c, domainerrors.Unauthorized("invalid authorization format. Use: Bearer <token>"))
				c.Abort()
				return
			}
			claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, BearerPrefix))
			if err != nil {
				msg := "invalid token"
				if err == jwt.ErrExpiredToken {
					msg = "token has expired"
				}
				response.Error(c, domainerrors.Unauthorized(msg))
				c.Abort()
				return
			}
			actor = entities.Actor{
				ID:   claims.ActorID(),
				Name: claims.Name,
				Role: normalizeRole(claims.Role, cfg.DefaultRole),
			}
		} else if cfg.AllowHeaders {
			actor.Role = normalizeRole(c.GetHeader(UserRoleHeader), cfg.DefaultRole)
			if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
				actor.ID = id
			}
			if name := strings.TrimSpace(c.GetHeader(UserNameHeader)); name != "" {
				actor.Name = name
			}
		}

		c.Set(ActorKey, actor)
		c.Request = c.Request.WithContext(logger.ContextWithActorID(c.Request.Context(), actor.ID))
		c.Next()
	}
}

// GetActor returns the actor resolved for this request
func GetActor(c *gin.Context) (entities.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}

func normalizeRole(raw string, fallback entities.Role) entities.Role {
	role := strings.ToLower(strings.TrimSpace(raw))
	if role == "" {
		return fallback
	}
	return entities.Role(role)
}
