package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Claims are the custom token claims issued for staff users. Ids are decimal
// strings; pressing_id and plant_id are absent when the role has none.
type Claims struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	PressingID string `json:"pressing_id,omitempty"`
	PlantID    string `json:"plant_id,omitempty"`
}

// Validate rejects tokens carrying a role this service does not know.
func (c *Claims) Validate(_ context.Context) error {
	_, err := identity.ParseRole(c.Role)
	return err
}

type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// NewAuthMiddleware verifies the HS256 bearer token of every request and
// stores the resulting identity.Actor in the echo context. A missing or
// invalid token, or claims that do not make a valid actor, end the request
// with 401.
func NewAuthMiddleware(cfg AuthConfig, logger *slog.Logger) (echo.MiddlewareFunc, error) {
	if cfg.Secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}

	keyFunc := func(context.Context) (any, error) {
		return []byte(cfg.Secret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.Issuer,
		[]string{cfg.Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &Claims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	logger = logger.With("component", "auth")

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.DebugContext(r.Context(), "Rejected token", "error", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":401,"message":"invalid or missing token"}`))
	}

	checkJWT := echo.WrapMiddleware(jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	).CheckJWT)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return checkJWT(func(ctx echo.Context) error {
			claims, ok := ctx.Request().Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "invalid or missing token"})
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				logger.DebugContext(ctx.Request().Context(), "Rejected claims", "error", err)
				return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "invalid token claims"})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		})
	}, nil
}

func actorFromClaims(claims *validator.ValidatedClaims) (identity.Actor, error) {
	custom, ok := claims.CustomClaims.(*Claims)
	if !ok {
		return identity.Actor{}, errs.NewValueIsRequiredError("role")
	}

	role, err := identity.ParseRole(custom.Role)
	if err != nil {
		return identity.Actor{}, err
	}
	pressingID, err := optionalID("pressing_id", custom.PressingID)
	if err != nil {
		return identity.Actor{}, err
	}
	plantID, err := optionalID("plant_id", custom.PlantID)
	if err != nil {
		return identity.Actor{}, err
	}

	return identity.NewActor(claims.RegisteredClaims.Subject, custom.Name, role, pressingID, plantID)
}

// actorFrom returns the caller put in place by the auth middleware.
func actorFrom(ctx echo.Context) (identity.Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(identity.Actor)
	if !ok {
		return identity.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return actor, nil
}

func optionalID(name, value string) (*kernel.ID, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // absent id
	}
	id, err := kernel.ParseID(value)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}
