package model

type TrainerStatus string

const (
	TrainerStatusActive   TrainerStatus = "active"
	TrainerStatusInactive TrainerStatus = "inactive"
)

// Trainer запись справочника тренеров
type Trainer struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Status TrainerStatus `json:"status"`
}

func (t Trainer) IsActive() bool {
	return t.Status == TrainerStatusActive
}
