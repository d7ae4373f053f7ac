package repositories

import (
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/models"
)

// OrgRepository defines read operations over the campus -> college -> program
// hierarchy. The tree is seeded out of band and only read at request time.
type OrgRepository interface {
	GetCampuses() ([]models.Campus, error)
	GetColleges() ([]models.College, error)
	GetCollegesByCampusID(campusID string) ([]models.College, error)
	GetPrograms() ([]models.Program, error)
	GetProgramsByCollegeID(collegeID string) ([]models.Program, error)
	GetProgramByID(id string) (*models.Program, error)
}

// MySQLOrgRepository implements OrgRepository for MySQL
type MySQLOrgRepository struct {
	db *gorm.DB
}

// NewMySQLOrgRepository creates a new MySQLOrgRepository
func NewMySQLOrgRepository(db *gorm.DB) *MySQLOrgRepository {
	return &MySQLOrgRepository{db: db}
}

func (r *MySQLOrgRepository) GetCampuses() ([]models.Campus, error) {
	var campuses []models.Campus
	if err := r.db.Order("name ASC").Find(&campuses).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return campuses, nil
}

func (r *MySQLOrgRepository) GetColleges() ([]models.College, error) {
	var colleges []models.College
	if err := r.db.Order("name ASC").Find(&colleges).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return colleges, nil
}

func (r *MySQLOrgRepository) GetCollegesByCampusID(campusID string) ([]models.College, error) {
	var colleges []models.College
	if err := r.db.Where("campus_id = ?", campusID).Order("name ASC").Find(&colleges).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return colleges, nil
}

func (r *MySQLOrgRepository) GetPrograms() ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.Order("name ASC").Find(&programs).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return programs, nil
}

func (r *MySQLOrgRepository) GetProgramsByCollegeID(collegeID string) ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.Where("college_id = ?", collegeID).Order("name ASC").Find(&programs).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return programs, nil
}

func (r *MySQLOrgRepository) GetProgramByID(id string) (*models.Program, error) {
	var program models.Program
	if err := r.db.First(&program, "id = ?", id).Error; err != nil {
		return nil, translate(err, "program not found", "")
	}
	return &program, nil
}
