package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/patiponrmutl/BECollege/database"
	"github.com/patiponrmutl/BECollege/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

// ===== Validation rules (ให้ตรงฟอร์มทะเบียนนักศึกษา) =====
var (
	stuReRoll  = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)
	stuReName  = regexp.MustCompile(`^[ก-๙A-Za-z\s\.]{1,50}$`)
	stuReBatch = regexp.MustCompile(`^[0-9]{4}$`)
	stuReDiv   = regexp.MustCompile(`^[A-Z]{1,2}$`)
	stuRePhone = regexp.MustCompile(`^[0-9\- ]{0,15}$`)
)

type studentPayload struct {
	RollNumber string `json:"roll_number"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ProgramID  uint   `json:"program_id"`
	Semester   int    `json:"semester"`
	Batch      string `json:"batch"`
	Division   string `json:"division"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   *bool  `json:"is_active"` // ไม่ส่งมา = true
}

func (p *studentPayload) normalize() {
	p.RollNumber = strings.TrimSpace(p.RollNumber)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Batch = strings.TrimSpace(p.Batch)
	p.Division = strings.ToUpper(strings.TrimSpace(p.Division))
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}

	if !stuReRoll.MatchString(p.RollNumber) {
		errs["roll_number"] = "roll number must be 1-20 letters/digits/dashes"
	}
	if p.FirstName == "" || !stuReName.MatchString(p.FirstName) {
		errs["first_name"] = "first name must be letters only"
	}
	if p.LastName != "" && !stuReName.MatchString(p.LastName) {
		errs["last_name"] = "last name must be letters only"
	}
	if p.ProgramID == 0 {
		errs["program_id"] = "program is required"
	}
	if p.Semester < 1 || p.Semester > 12 {
		errs["semester"] = "semester must be between 1 and 12"
	}
	if !stuReBatch.MatchString(p.Batch) {
		errs["batch"] = "batch must be a 4-digit year"
	}
	if !stuReDiv.MatchString(p.Division) {
		errs["division"] = "division must be 1-2 uppercase letters"
	}
	if !stuRePhone.MatchString(p.Phone) {
		errs["phone"] = "invalid phone format"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *studentPayload) toModel() models.Student {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return models.Student{
		RollNumber: p.RollNumber,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		ProgramID:  p.ProgramID,
		Semester:   p.Semester,
		Batch:      p.Batch,
		Division:   p.Division,
		Email:      p.Email,
		Phone:      p.Phone,
		IsActive:   active,
	}
}

// ===== Handlers =====

// GET /admin/students?q=&division=&semester=&active=&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	division := strings.TrimSpace(c.QueryParam("division"))
	semester := strings.TrimSpace(c.QueryParam("semester"))
	active := strings.TrimSpace(c.QueryParam("active"))

	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.QueryParam("size"), 20)
	if size < 1 || size > 100 {
		size = 20
	}

	tx := database.DB.Model(&models.Student{})

	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(roll_number) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like)
	}
	if division != "" {
		tx = tx.Where("division = ?", division)
	}
	if semester != "" {
		tx = tx.Where("semester = ?", atoiOr(semester, 0))
	}
	if active != "" {
		b, err := strconv.ParseBool(active)
		if err == nil {
			tx = tx.Where("is_active = ?", b)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Student
	if err := tx.Order("roll_number ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

func (h *StudentHandler) Get(c echo.Context) error {
	id := c.Param("id")
	var s models.Student
	if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	s := p.toModel()
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StudentHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var existing models.Student
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.RollNumber = p.RollNumber
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.ProgramID = p.ProgramID
	existing.Semester = p.Semester
	existing.Batch = p.Batch
	existing.Division = p.Division
	existing.Email = p.Email
	existing.Phone = p.Phone
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}

	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *StudentHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := database.DB.Delete(&models.Student{}, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// ขนาด chunk ของ bulk import — กัน transaction บวมเวลา import ทั้งรุ่น
const importChunkSize = 100

// POST /admin/students/import — รับ array แล้ว insert เป็น chunk ละ 100
// validate ทั้งก้อนก่อน ถ้ามี error สักแถวจะไม่ insert เลย (retry ทั้ง batch ได้)
func (h *StudentHandler) Import(c echo.Context) error {
	var arr []studentPayload
	if err := c.Bind(&arr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	inserted := make([]models.Student, 0, len(arr))
	errFields := []map[string]any{}

	for i := range arr {
		p := arr[i]
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			errFields = append(errFields, map[string]any{"index": i, "fields": errs})
			continue
		}
		inserted = append(inserted, p.toModel())
	}
	if len(errFields) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "BULK_VALIDATION_ERROR",
			"issues": errFields,
		})
	}
	if len(inserted) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "EMPTY_BATCH"})
	}

	if err := database.DB.CreateInBatches(&inserted, importChunkSize).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"inserted": len(inserted)})
}
