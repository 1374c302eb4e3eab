package model

// Country is read-only reference data; users.country_code points at Alpha2.
type Country struct {
	Alpha2 string `gorm:"primaryKey;type:varchar(2)" json:"alpha2"`
	Alpha3 string `gorm:"type:varchar(3);not null" json:"alpha3"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
	Region string `gorm:"type:varchar(50);index" json:"region"`
}

func (Country) TableName() string { return "countries" }
