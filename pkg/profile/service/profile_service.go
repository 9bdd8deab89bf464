package service

import "agrisight/entities"

type ProfileService interface {
	SaveProfile(p *entities.FarmerProfile) (*entities.FarmerProfile, error)
	GetProfile(uid string) (*entities.FarmerProfile, error)
}
