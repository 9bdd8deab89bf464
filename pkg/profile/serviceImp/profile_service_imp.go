package serviceImp

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"agrisight/entities"
	"agrisight/pkg/analysis/types"
	repo "agrisight/pkg/profile/repository"
	"agrisight/pkg/profile/service"
)

var ErrNotFound = errors.New("profile not found")

type profileSvc struct{ r repo.ProfileRepository }

func NewProfileService(r repo.ProfileRepository) service.ProfileService { return &profileSvc{r} }

func (s *profileSvc) SaveProfile(p *entities.FarmerProfile) (*entities.FarmerProfile, error) {
	if err := normalize(p); err != nil {
		return nil, err
	}
	if err := s.r.Upsert(p); err != nil {
		return nil, err
	}
	return s.r.FindByUser(p.UserID)
}

func (s *profileSvc) GetProfile(uid string) (*entities.FarmerProfile, error) {
	p, err := s.r.FindByUser(uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func normalize(p *entities.FarmerProfile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("%w: user id is required", types.ErrInvalidRequest)
	}
	kind, err := types.ParseFarmerKind(p.FarmerType)
	if err != nil {
		return err
	}
	p.FarmerType = string(kind)
	if p.WaterUsagePerDay != nil && *p.WaterUsagePerDay < 0 {
		return fmt.Errorf("%w: water usage cannot be negative", types.ErrInvalidRequest)
	}
	if p.LivestockCount != nil && *p.LivestockCount < 0 {
		return fmt.Errorf("%w: livestock count cannot be negative", types.ErrInvalidRequest)
	}
	crops := make([]string, 0, len(p.Crops))
	for _, c := range p.Crops {
		if c = strings.TrimSpace(c); c != "" {
			crops = append(crops, c)
		}
	}
	p.Crops = crops
	p.Location = strings.TrimSpace(p.Location)
	p.CurrentCrop = strings.TrimSpace(p.CurrentCrop)
	p.HarvestMonth = strings.TrimSpace(p.HarvestMonth)
	return nil
}
