package repository

import "agrisight/entities"

type SoilRepository interface {
	Create(r *entities.SoilRecord) error
	ListByUser(uid string, limit int) ([]entities.SoilRecord, error)
	LatestByUser(uid string) (*entities.SoilRecord, error)
}
