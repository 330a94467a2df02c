package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAdminUsernameExists = errors.New("admin username already exists")
	ErrAdminNotFound       = errors.New("admin not found")
)

type Admin struct {
	ID string `gorm:"primaryKey"`

	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"not null;default:moderator"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Admin) TableName() string {
	return "admins"
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) Insert(ctx context.Context, admin Admin) (Admin, error) {
	admin.ID = uuid.NewString()

	result := d.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Admin{}, ErrAdminUsernameExists
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) List(ctx context.Context) ([]Admin, error) {
	var admins []Admin

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&admins)
	if result.Error != nil {
		return nil, result.Error
	}

	return admins, nil
}

func (d *AdminDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Admin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

func (d *AdminDAO) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result := d.db.WithContext(ctx).Model(&Admin{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

func (d *AdminDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Admin{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
