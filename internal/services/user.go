package services

import (
	"errors"
	"time"

	"github.com/DuDupedrosa/memory-game-api/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{db: db, auth: auth}
}

// Register creates an account and logs it straight in, returning the user
// and a fresh token. Email and nickname are both unique.
func (s *UserService) Register(nickName, email, password string) (*models.User, string, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}
	if err := s.db.Where("nick_name = ?", nickName).First(&existing).Error; err == nil {
		return nil, "", ErrNickNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		NickName:     nickName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *UserService) SignIn(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFoundByEmail
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.auth.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", now)

	return &user, token, nil
}

func (s *UserService) GetData(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs resolves player ids into user records for room-membership
// listings.
func (s *UserService) GetUsersByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateProfile(userID, nickName, email string) (*models.User, error) {
	user, err := s.GetData(userID)
	if err != nil {
		return nil, err
	}

	var other models.User
	if err := s.db.Where("email = ?", email).First(&other).Error; err == nil && other.ID != userID {
		return nil, ErrEmailTaken
	}
	if err := s.db.Where("nick_name = ?", nickName).First(&other).Error; err == nil && other.ID != userID {
		return nil, ErrNickNameTaken
	}

	user.NickName = nickName
	user.Email = email
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.GetData(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongCurrentPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)); err == nil {
		return ErrPasswordReused
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password_hash", string(hash)).Error
}
