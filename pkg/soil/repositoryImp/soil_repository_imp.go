package repositoryImp

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrisight/entities"
	"agrisight/pkg/soil/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(rec *entities.SoilRecord) error {
	if rec.RecordID == "" {
		rec.RecordID = uuid.NewString()
	}
	return r.db.Create(rec).Error
}

// ListByUser returns newest first; limit <= 0 means all.
func (r *soilRepo) ListByUser(uid string, limit int) ([]entities.SoilRecord, error) {
	var rs []entities.SoilRecord
	q := r.db.Where("user_id = ?", uid).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *soilRepo) LatestByUser(uid string) (*entities.SoilRecord, error) {
	var rec entities.SoilRecord
	if err := r.db.Where("user_id = ?", uid).Order("created_at DESC").First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
