// Package tenant holds the multi-tenancy primitives. Every tenant-owned
// table carries a company_id column; queries go through Scope so a
// missing filter is visible at the call site.
package tenant

import "gorm.io/gorm"

func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
