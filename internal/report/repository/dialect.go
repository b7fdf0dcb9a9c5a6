package repository

import "gorm.io/gorm"

// Calendar-part extraction is the one piece of these queries SQL dialects
// disagree on. Everything else stays in portable SQL.

func yearExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "YEAR(" + column + ")"
	case "sqlite":
		return "CAST(STRFTIME('%Y', " + column + ") AS INTEGER)"
	default:
		return "CAST(EXTRACT(YEAR FROM " + column + ") AS INTEGER)"
	}
}

func monthExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "MONTH(" + column + ")"
	case "sqlite":
		return "CAST(STRFTIME('%m', " + column + ") AS INTEGER)"
	default:
		return "CAST(EXTRACT(MONTH FROM " + column + ") AS INTEGER)"
	}
}
