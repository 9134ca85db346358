package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/constants"
	authHelper "emptrack_backend/internals/features/users/auth/helper"
	authRepo "emptrack_backend/internals/features/users/auth/repository"
	userDTO "emptrack_backend/internals/features/users/user/dto"
	userModel "emptrack_backend/internals/features/users/user/model"
	helpers "emptrack_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

type RegisterRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Password   string  `json:"password" validate:"required,min=8,max=72"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

var validate = helpers.NewValidator()

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Normalize()
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, helpers.ValidationFieldErrors(err))
	}
	if err := authHelper.ValidatePasswordStrength(input.Password); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	}

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Name:       input.Name,
		Email:      input.Email,
		Password:   passwordHash,
		Role:       roleForEmail(input.Email),
		Position:   input.Position,
		Department: input.Department,
		IsActive:   true,
	}
	if err := authRepo.CreateUser(c.UserContext(), db, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || helpers.IsUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		log.Printf("[ERROR] register %s: %v", input.Email, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registration successful", userDTO.FromModel(&user))
}

// roleForEmail: addresses listed in ADMIN_EMAILS register as admin
func roleForEmail(email string) string {
	for _, e := range strings.Split(configs.GetEnv("ADMIN_EMAILS"), ",") {
		if strings.EqualFold(strings.TrimSpace(e), email) && email != "" {
			return constants.RoleAdmin
		}
	}
	return constants.RoleEmployee
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validate.Struct(&input); err != nil {
		return helpers.JsonValidationError(c, helpers.ValidationFieldErrors(err))
	}

	user, err := authRepo.FindUserByEmail(c.UserContext(), db, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	// 🔥 password before account state
	switch err := authenticate(user, input.Password); {
	case errors.Is(err, ErrInvalidCredentials):
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrAccountInactive):
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	return issueToken(c, *user)
}

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountInactive       = errors.New("account deactivated")
	ErrGoogleEmailUnverified = errors.New("google account email is not verified")
)

// authenticate: password first, account state only after a correct password.
func authenticate(user *userModel.UserModel, password string) error {
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return ErrInvalidCredentials
	}
	if !user.IsActive {
		return ErrAccountInactive
	}
	return nil
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helpers.JsonError(c, fiber.StatusNotImplemented, "Google login is not configured")
	}

	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	// 🔥 verified email only
	email, googleID, err := googleIdentity(claimSet)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Google account email is not verified")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByGoogleID(ctx, db, googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// existing account with the same email gets linked, otherwise create one
		user, err = authRepo.FindUserByEmail(ctx, db, email)
		switch {
		case err == nil:
			if lerr := authRepo.LinkGoogleID(ctx, db, user.ID, googleID); lerr != nil {
				log.Printf("[WARN] link google id user=%s: %v", user.ID, lerr)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, herr := authHelper.HashPassword(randomString(24))
			if herr != nil {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
			}
			name := strings.TrimSpace(claimSet.Name)
			if name == "" {
				name = email
			}
			newUser := userModel.UserModel{
				Name:     name,
				Email:    email,
				Password: hashed,
				GoogleID: &googleID,
				Role:     roleForEmail(email),
				IsActive: true,
			}
			if cerr := authRepo.CreateUser(ctx, db, &newUser); cerr != nil {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
			}
			user, err = &newUser, nil
		}
	}
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an admin.")
	}

	return issueToken(c, *user)
}

// googleIdentity: only a verified Google address may link to or create an account.
func googleIdentity(cs *googleAuthIDTokenVerifier.ClaimSet) (email, googleID string, err error) {
	if cs == nil || !cs.EmailVerified {
		return "", "", ErrGoogleEmailUnverified
	}
	email = strings.ToLower(strings.TrimSpace(cs.Email))
	googleID = strings.TrimSpace(cs.Sub)
	if email == "" || googleID == "" {
		return "", "", ErrGoogleEmailUnverified
	}
	return email, googleID, nil
}

/* ==========================
   ISSUE TOKEN
========================== */

func issueToken(c *fiber.Ctx, user userModel.UserModel) error {
	now := nowUTC()
	ttl := accessTTL()
	accessToken, err := SignAccessToken(user, configs.JWTSecret, now, ttl)
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(ttl),
	})

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"user":         userDTO.FromModel(&user),
		"access_token": accessToken,
		"expires_at":   now.Add(ttl),
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpers.GetRawAccessToken(c)
	ttl := RemainingTTL(accessToken, configs.JWTSecret, 2*time.Minute)

	if accessToken != "" {
		if err := authRepo.BlacklistToken(c.UserContext(), db, accessToken, ttl); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout without access token; clearing cookie only")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})

	return helpers.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   UTIL
========================== */

func randomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return strings.Repeat("x", n)
	}
	return hex.EncodeToString(b)
}
