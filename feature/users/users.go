package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUserNotFound indicates the username is not in the users table.
var ErrUserNotFound = errors.New("user not found")

// User is an API credential record.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"column:password_hash;size:128;not null" json:"-"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Store persists users.
type Store struct {
	db *gorm.DB
}

// NewStore creates a users store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Upsert creates the user or updates the password of an existing one.
func (s *Store) Upsert(ctx context.Context, username, password string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = User{Username: username}
		if err := user.SetPassword(password); err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	case err != nil:
		return nil, err
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user by username.
func (s *Store) Delete(ctx context.Context, username string) error {
	result := s.db.WithContext(ctx).Where("username = ?", username).Delete(&User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return nil
}

// List returns every user ordered by username.
func (s *Store) List(ctx context.Context) ([]User, error) {
	var list []User
	if err := s.db.WithContext(ctx).Order("username").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// VerifyCredentials implements the auth middleware's Verifier contract.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Store) VerifyCredentials(username, password string) bool {
	var user User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return false
	}
	return user.CheckPassword(password)
}
