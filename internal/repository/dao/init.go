package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Agent{},
		&Draw{},
		&Ticket{},
		&Bet{},
		&BetLimitEntry{},
		&PrizeConfiguration{},
		&WinningTicket{},
	)
}
