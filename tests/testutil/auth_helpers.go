package testutil

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/middleware"
	"github.com/ningi265/quickspin/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user with the given role and a known password
// ("password123") and returns the record
func CreateTestUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@test.com", name),
		PhoneNumber:  "+1-555-0100",
		Address:      "12 Test Street",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// TokenFor mints a real JWT for the given user
func TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := middleware.GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// Authorize attaches a bearer token for the user to the request
func Authorize(t *testing.T, req *http.Request, user *models.User) {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+TokenFor(t, user))
}

// MockAuthMiddleware simulates an authenticated request without going
// through token parsing. Controller tests use this to pin the caller.
func MockAuthMiddleware(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))
		c.Set("user", user)
		c.Next()
	}
}
