package models

import (
	"log"

	"github.com/restobooks/backoffice_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Business{}, &User{},
		&Supplier{},
		&InventoryItem{},
		&Recipe{}, &RecipeIngredient{},
		&StockTake{}, &StockTakeItem{},
		&Invoice{},
		&Sale{},
		&FamilyExpense{},
		&AgendaEvent{},
		&Document{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
