package models

import "time"

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "Active"
	StatusCompleted ProjectStatus = "Completed"
	StatusInactive  ProjectStatus = "Inactive"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusInactive:
		return true
	}
	return false
}

type Project struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// "P-<id>", заполняется сразу после вставки
	ProjectNumber *string `gorm:"size:32;uniqueIndex" json:"project_number"`

	LeaderID uint      `gorm:"not null;index" json:"leader_id"`
	Leader   *Employee `gorm:"foreignKey:LeaderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	ContactPersonID uint           `gorm:"not null;index" json:"contact_person_id"`
	ContactPerson   *ContactPerson `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	StartDate time.Time     `gorm:"not null" json:"start_date"`
	EndDate   *time.Time    `json:"end_date"`
	Deadline  *time.Time    `json:"deadline"`
	Status    ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
}

func (p *Project) Key() uint      { return p.ID }
func (p *Project) SetKey(id uint) { p.ID = id }

func (p *Project) Number() string {
	if p.ProjectNumber == nil {
		return ""
	}
	return *p.ProjectNumber
}
