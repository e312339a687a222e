package models

// Setting is a key/value settings row (JSON value).
type Setting struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value JSON   `gorm:"type:json" json:"value"`
}

// TableName sets the table name.
func (Setting) TableName() string {
	return "settings"
}
