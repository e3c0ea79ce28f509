package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler() *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret" // กันล่มในเครื่อง dev (โปรดตั้งใน .env จริง)
	}
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"name": u.Name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	// แนบลิงก์บุคคลไว้ใน token เพื่อให้ middleware ใช้ได้โดยไม่ต้อง query ซ้ำ
	if u.TeacherID != nil {
		claims["teacher_id"] = *u.TeacherID
	}
	if u.StudentID != nil {
		claims["student_id"] = *u.StudentID
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

/* ====================== DTOs ====================== */

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TeacherRegisterReq struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	TeacherCode string `json:"teacher_code"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

/* ====================== Handlers ====================== */

// POST /auth/login — ใช้ได้ทุก role (admin/teacher/student อยู่ตาราง users เดียวกัน)
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	// ครูที่สมัครเองต้องรอ admin อนุมัติ
	if !u.Approved {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "PENDING_APPROVAL"})
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "role": u.Role, "username": u.Username, "name": u.Name},
	})
}

// POST /auth/teachers/register — สมัครเป็นครู สถานะรออนุมัติ
func (h *AuthHandler) TeacherRegister(c echo.Context) error {
	var req TeacherRegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.TeacherCode = strings.TrimSpace(req.TeacherCode)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FirstName = strings.Join(strings.Fields(req.FirstName), " ")
	req.LastName = strings.Join(strings.Fields(req.LastName), " ")
	if req.Username == "" || req.Password == "" || req.TeacherCode == "" ||
		req.FirstName == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	// ตรวจซ้ำ username/email ก่อน
	var dup models.User
	if err := database.DB.Where("username = ?", req.Username).First(&dup).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "USERNAME_EXISTS"})
	}
	var dupT models.Teacher
	if err := database.DB.Where("email = ? OR teacher_code = ?", req.Email, req.TeacherCode).
		First(&dupT).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "TEACHER_EXISTS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		tch := models.Teacher{
			TeacherCode: req.TeacherCode,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       strings.TrimSpace(req.Phone),
		}
		if err := tx.Create(&tch).Error; err != nil {
			return err
		}
		u := models.User{
			Username:  req.Username,
			Password:  string(hash),
			Role:      "teacher",
			Name:      req.FirstName + " " + req.LastName,
			TeacherID: &tch.ID,
			Approved:  false,
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "registered, waiting for admin approval"})
}

// GET /admin/teachers/pending — บัญชีครูที่ยังไม่อนุมัติ
func (h *AuthHandler) PendingTeachers(c echo.Context) error {
	var rows []models.User
	if err := database.DB.
		Where("role = ? AND approved = ?", "teacher", false).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/teachers/:id/approve
func (h *AuthHandler) ApproveTeacher(c echo.Context) error {
	id := c.Param("id")
	res := database.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", id, "teacher").
		Update("approved", true)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
