package models

// ContactPerson: контактное лицо заказчика, email служит естественным ключом
type ContactPerson struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ContactPerson) TableName() string { return "contact_persons" }

func (c *ContactPerson) Key() uint      { return c.ID }
func (c *ContactPerson) SetKey(id uint) { c.ID = id }

func (c *ContactPerson) FullName() string {
	return joinName(c.FirstName, c.LastName)
}
