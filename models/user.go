package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/utils"
)

type User struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index;not null" json:"business_id"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Username   string    `gorm:"index;size:100;not null" json:"username" binding:"required"`
	Email      string    `gorm:"size:255" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       UserRole  `gorm:"size:2;not null;default:S" json:"role"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Name     string   `json:"name" binding:"required"`
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role"`
}

type LoginInfo struct {
	Token      string `json:"token"`
	UserId     int    `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	BusinessId string `json:"business_id"`
}

// PrepareGive blanks the password hash before the record leaves the API.
func (result *User) PrepareGive() {
	result.Password = ""
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.New("invalid username or password")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("user is inactive")
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, errors.New("invalid username or password")
	}

	role := "Staff"
	if user.Role == UserRoleAdmin {
		role = "Admin"
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	// session lookup for the auth middleware
	if err := config.SetRedisObject("Session:"+fmt.Sprint(user.ID), &user, utils.GetCacheLifespan()); err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token:      token,
		UserId:     user.ID,
		Name:       user.Name,
		Role:       role,
		BusinessId: user.BusinessId,
	}, nil
}

func Logout(ctx context.Context) (bool, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return false, errors.New("not authenticated")
	}
	if err := config.RemoveRedisKey("Session:" + fmt.Sprint(userId)); err != nil {
		return false, err
	}
	return true, nil
}

// GetSessionUser resolves the user for an authenticated request, redis first.
func GetSessionUser(ctx context.Context, userId int) (*User, error) {
	var user *User
	exists, err := config.GetRedisObject("Session:"+fmt.Sprint(userId), &user)
	if err != nil {
		return nil, err
	}
	if exists {
		return user, nil
	}

	db := config.GetDB()
	user = &User{}
	if err := db.WithContext(ctx).First(user, userId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return user, nil
}

func GetAllUsers(ctx context.Context) ([]*User, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	users, err := utils.FetchAllModels[User](ctx, businessId)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PrepareGive()
	}
	return users, nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}
	if err := utils.ValidateUnique[User](ctx, "", "username", input.Username, 0); err != nil {
		return nil, errors.New("username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleStaff
	}

	user := User{
		BusinessId: businessId,
		Name:       input.Name,
		Username:   input.Username,
		Email:      input.Email,
		Password:   string(hashed),
		Role:       role,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func ChangePassword(ctx context.Context, oldPassword string, newPassword string) (*User, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, errors.New("not authenticated")
	}

	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).First(&user, userId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := utils.ComparePassword(user.Password, oldPassword); err != nil {
		return nil, errors.New("incorrect password")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&user).Update("password", string(hashed)).Error; err != nil {
		return nil, err
	}

	// drop any cached session so the old credentials stop working
	if err := config.RemoveRedisKey("Session:" + fmt.Sprint(user.ID)); err != nil {
		return nil, err
	}

	user.PrepareGive()
	return &user, nil
}
