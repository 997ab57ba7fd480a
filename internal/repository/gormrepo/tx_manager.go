package gormrepo

import (
	"context"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
)

// TransactionManager implements domain.TransactionManager using GORM
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) domain.TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn inside a transaction. Nested calls join the outer transaction.
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

type txKey struct{}

// conn returns the transaction carried by ctx, or db bound to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
