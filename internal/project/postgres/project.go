package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/project"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var p project.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) GetAll() ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByManager(managerID int64) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Where("manager_id = ?", managerID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByClient(clientID int64) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByStatus(status string) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(p *project.Project) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}

// CountByStatus groups active and archived projects alike; the dashboard
// wants the full picture.
func (r *ProjectRepository) CountByStatus() (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&project.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
