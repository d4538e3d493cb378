package mysql

import "gorm.io/gorm"

// The cmd builder wires schema setup through this function.
var _ func(*gorm.DB) error = AutoMigrate
