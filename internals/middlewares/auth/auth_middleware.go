// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	authRepo "emptrack_backend/internals/features/users/auth/repository"
	helpers "emptrack_backend/internals/helpers"
)

var (
	ErrUserInactive = errors.New("user inactive")
)

// AuthJWTOpts configures AuthJWT. Secret is required; the checkers are optional.
type AuthJWTOpts struct {
	Secret string

	// BlacklistChecker reports whether the raw token was revoked (logout).
	BlacklistChecker func(ctx context.Context, token string) (bool, error)

	// ActiveChecker returns gorm.ErrRecordNotFound for unknown users and
	// ErrUserInactive for deactivated ones.
	ActiveChecker func(ctx context.Context, userID uuid.UUID) error

	// AllowCookieFallback reads the access_token cookie when no Authorization header is sent.
	AllowCookieFallback bool

	// Leeway on exp
	Skew time.Duration
}

// AuthJWT verifies an HS256 access token and stores user_id, userRole,
// user_name and raw_token in Locals.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	if opts.Skew == 0 {
		opts.Skew = 30 * time.Second
	}

	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c, opts.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if opts.Secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// ✅ Blacklist (logout)
		if opts.BlacklistChecker != nil {
			revoked, err := opts.BlacklistChecker(c.UserContext(), tokenString)
			if err != nil {
				log.Println("[ERROR] blacklist check:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if revoked {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{
			SkipClaimsValidation: true,
			ValidMethods:         []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()},
		}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(opts.Secret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, opts.Skew); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		// ✅ Account still active
		if opts.ActiveChecker != nil {
			if err := opts.ActiveChecker(c.UserContext(), userID); err != nil {
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
				case errors.Is(err, ErrUserInactive):
					return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
				default:
					log.Println("[ERROR] active check:", err)
					return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
				}
			}
		}

		// ✅ Inject locals
		c.Locals(helpers.LocUserID, userID.String())
		helpers.SetRawAccessToken(c, tokenString)
		storeBasicClaimsToLocals(c, claims)

		return c.Next()
	}
}

// AuthMiddleware wires AuthJWT to the database: token blacklist and users.is_active.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return AuthJWT(AuthJWTOpts{
		Secret: configs.JWTSecret,
		BlacklistChecker: func(ctx context.Context, token string) (bool, error) {
			return authRepo.IsTokenBlacklisted(ctx, db, token)
		},
		ActiveChecker: func(ctx context.Context, userID uuid.UUID) error {
			return ensureUserActive(ctx, db, userID)
		},
		AllowCookieFallback: true,
	})
}
