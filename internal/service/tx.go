package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx runs fn inside a database transaction. With a nil db (in-memory repos
// under test) fn runs directly with a nil tx; repos must tolerate that.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
