package heuristic

import (
	"errors"
	"fmt"
	"math"
)

const (
	BaselineNDVI = 0.4
	RecoveryRate = 0.01 // NDVI units per day
	MinRestDays  = 7
	MaxRestDays  = 365
	grazingFloor = 0.1
)

var ErrInvalidInput = errors.New("heuristic: invalid input")

type PastureInput struct {
	CurrentNDVI     float64 `json:"currentNdvi"`
	GrazingPressure float64 `json:"grazingPressure"` // animals per hectare
}

type PastureOutput struct {
	RestDays int `json:"restDays"`
}

// PastureRest validates the input and returns the rest period for it.
func PastureRest(in PastureInput) (PastureOutput, error) {
	if err := in.Validate(); err != nil {
		return PastureOutput{}, err
	}
	return PastureOutput{RestDays: RestDays(in.CurrentNDVI, in.GrazingPressure)}, nil
}

func (in PastureInput) Validate() error {
	if math.IsNaN(in.CurrentNDVI) || math.IsInf(in.CurrentNDVI, 0) || in.CurrentNDVI < 0 || in.CurrentNDVI > 1 {
		return fmt.Errorf("%w: currentNdvi must be within [0,1], got %v", ErrInvalidInput, in.CurrentNDVI)
	}
	if math.IsNaN(in.GrazingPressure) || math.IsInf(in.GrazingPressure, 0) || in.GrazingPressure < 0 {
		return fmt.Errorf("%w: grazingPressure must be a finite number >= 0, got %v", ErrInvalidInput, in.GrazingPressure)
	}
	return nil
}

// RestDays estimates how long a pasture should rest before grazing resumes.
// The NDVI deficit below baseline sets the recovery time; stocking density
// scales it logarithmically. Result is clamped to [MinRestDays, MaxRestDays].
// Callers must pass finite, non-negative numbers.
func RestDays(currentNDVI, grazingPressure float64) int {
	deficit := math.Max(0, BaselineNDVI-currentNDVI)
	baseDays := deficit / RecoveryRate
	grazingFactor := 1 + math.Log1p(math.Max(grazingFloor, grazingPressure))
	days := int(math.Ceil(baseDays * grazingFactor))
	if days < MinRestDays {
		return MinRestDays
	}
	if days > MaxRestDays {
		return MaxRestDays
	}
	return days
}
