package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinic-backend/models"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenLifetime = 24 * time.Hour

// AccountService authenticates staff console logins and issues JWTs.
type AccountService struct {
	DB     *gorm.DB
	Secret string
}

func NewAccountService(db *gorm.DB, secret string) *AccountService {
	return &AccountService{DB: db, Secret: secret}
}

// Authenticate verifies the credentials and returns a signed bearer token
// plus the account.
func (s *AccountService) Authenticate(username, password string) (string, *models.StaffAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var account models.StaffAccount
	if err := s.DB.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": account.ID,
		"usr": account.Username,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", nil, err
	}
	return token, &account, nil
}

// Create registers a console account with a bcrypt-hashed password.
func (s *AccountService) Create(fullName, username, password string) (*models.StaffAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := models.StaffAccount{
		FullName: fullName,
		Username: strings.TrimSpace(username),
		Password: string(hash),
	}
	if err := s.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
