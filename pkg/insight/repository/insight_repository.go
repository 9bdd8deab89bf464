package repository

import "agrisight/entities"

type InsightRepository interface {
	Create(r *entities.InsightRecord) error
	ListByUser(uid string, limit int) ([]entities.InsightRecord, error)
}
