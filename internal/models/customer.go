package models

// Customer: организация-заказчик. Имя уникально только по соглашению.
type Customer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;index" json:"name"`
}

func (c *Customer) Key() uint      { return c.ID }
func (c *Customer) SetKey(id uint) { c.ID = id }
