package models

// Service: оплачиваемая позиция проекта, удаляется вместе с проектом
type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ProjectID   uint    `gorm:"not null;index" json:"project_id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`

	Project *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (s *Service) Key() uint      { return s.ID }
func (s *Service) SetKey(id uint) { s.ID = id }
