package repositoryImp

import (
	"gorm.io/gorm"

	"agrisight/entities"
	"agrisight/pkg/insight/repository"
)

type insightRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.InsightRepository { return &insightRepo{db} }

func (r *insightRepo) Create(rec *entities.InsightRecord) error { return r.db.Create(rec).Error }

// ListByUser returns the most recent records, oldest first, for trend charts.
func (r *insightRepo) ListByUser(uid string, limit int) ([]entities.InsightRecord, error) {
	var rs []entities.InsightRecord
	q := r.db.Where("user_id = ?", uid).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return rs, nil
}
