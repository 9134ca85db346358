// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "emptrack_backend/internals/features/users/auth/model"
	userModel "emptrack_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(ctx context.Context, db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, user *userModel.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hashed string) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hashed).Error
}

func LinkGoogleID(ctx context.Context, db *gorm.DB, userID uuid.UUID, googleID string) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Update("google_id", googleID).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken is idempotent: blacklisting the same token twice is a no-op.
func BlacklistToken(ctx context.Context, db *gorm.DB, token string, ttl time.Duration) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&authModel.TokenBlacklist{
			Token:     token,
			ExpiredAt: time.Now().UTC().Add(ttl),
		}).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	var existing authModel.TokenBlacklist
	err := db.WithContext(ctx).Select("id").Where("token = ?", token).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// CleanupExpiredBlacklist hard-deletes rows expired before `before`, at most `limit` per call.
func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time, limit int) (int64, error) {
	res := db.WithContext(ctx).Unscoped().
		Where("id IN (?)", db.Model(&authModel.TokenBlacklist{}).
			Unscoped().
			Select("id").
			Where("expired_at < ?", before).
			Limit(limit)).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
