// services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"wellness-reward-system/models"
	"wellness-reward-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = time.Hour

type AuthService struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret []byte) *AuthService {
	return &AuthService{DB: db, JWTSecret: jwtSecret}
}

// IssueToken signs a short-lived HS256 token carrying the user identity.
func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// Register creates a local account and returns a bearer token.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		Name        string `json:"name"`
		DataConsent bool   `json:"data_consent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Email and password are required"})
	}

	var existing models.User
	err := s.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "User already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("DB Error checking existing user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Password:     string(hash),
		Name:         req.Name,
		AuthProvider: models.AuthProviderLocal,
		Role:         models.UserRoleStudent,
		DataConsent:  req.DataConsent,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("DB Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(fiber.Map{"token": token})
}

// Login verifies credentials and returns a bearer token.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid request body"})
	}

	var user models.User
	if err := s.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid credentials"})
		}
		log.Printf("DB Error during login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid credentials"})
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(fiber.Map{"token": token})
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "User not found"})
		}
		log.Printf("DB Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(user)
}

// UploadProfilePicture stores the uploaded image in object storage and saves
// the public URL on the user record.
func (s *AuthService) UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if !utils.ObjectStorageEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"msg": "Object storage is not configured"})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "picture file is required"})
	}

	key := fmt.Sprintf("avatars/%s%s", userID, filepath.Ext(fileHeader.Filename))
	url, err := utils.UploadObject(fileHeader, key)
	if err != nil {
		log.Printf("Error uploading profile picture: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Failed to upload picture"})
	}

	if err := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_picture", url).Error; err != nil {
		log.Printf("DB Error saving profile picture URL: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.JSON(fiber.Map{"profile_picture": url, "msg": "Profile picture updated"})
}
