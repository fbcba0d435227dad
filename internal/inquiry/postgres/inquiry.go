package postgres

import (
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/inquiry"
)

// InquiryRepository implements the inquiry.Repository interface using GORM
type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(i *inquiry.Inquiry) error {
	return r.db.Create(i).Error
}

func (r *InquiryRepository) GetByID(id int64) (*inquiry.Inquiry, error) {
	var i inquiry.Inquiry
	err := r.db.Where("id = ?", id).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InquiryRepository) GetAll(limit, offset int) ([]*inquiry.Inquiry, error) {
	var inquiries []*inquiry.Inquiry
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&inquiries).Error
	return inquiries, err
}

func (r *InquiryRepository) GetByStatus(status string, limit, offset int) ([]*inquiry.Inquiry, error) {
	var inquiries []*inquiry.Inquiry
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&inquiries).Error
	return inquiries, err
}

func (r *InquiryRepository) Update(i *inquiry.Inquiry) error {
	return r.db.Save(i).Error
}

func (r *InquiryRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&inquiry.Inquiry{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
