package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alnourclinic/clinic-scheduler/internal/config"
	"github.com/alnourclinic/clinic-scheduler/internal/httperr"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request",
			"بيانات الدخول غير صالحة / Invalid login payload")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var account models.Account
	if err := h.db.Where("username = ?", username).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials",
				"اسم المستخدم أو كلمة المرور غير صحيحة / Invalid username or password")
			return
		}
		httperr.Internal(c, "internal_error",
			"حدث خطأ غير متوقع / Unexpected error")
		return
	}

	if !account.Active {
		httperr.Unauthorized(c, "account_disabled",
			"الحساب معطل / Account is disabled")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials",
			"اسم المستخدم أو كلمة المرور غير صحيحة / Invalid username or password")
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token",
			"تعذر إنشاء رمز الدخول / Could not issue access token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        account.ID,
			"username":  account.Username,
			"full_name": account.FullName,
			"email":     account.Email,
			"phone":     account.Phone,
			"role":      account.Role,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
