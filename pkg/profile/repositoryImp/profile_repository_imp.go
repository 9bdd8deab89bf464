package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrisight/entities"
	"agrisight/pkg/profile/repository"
)

type profileRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProfileRepository { return &profileRepo{db} }

// Upsert keeps one profile per user; on conflict every editable column is replaced.
func (r *profileRepo) Upsert(p *entities.FarmerProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"farmer_type", "crops", "location", "current_crop", "harvest_month",
			"water_usage_per_day", "livestock_count", "updated_at",
		}),
	}).Create(p).Error
}

func (r *profileRepo) FindByUser(uid string) (*entities.FarmerProfile, error) {
	var p entities.FarmerProfile
	if err := r.db.Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
