package repository

import (
	"time"

	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	UpdateStatus(id uuid.UUID, status model.TransactionStatus, updatedBy string) error
	UpdateCustomerInfo(id uuid.UUID, info model.ShippingInfo, updatedBy string) error
	TotalSales() (int64, error)
	Count() (int64, error)
	GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error)
}

// SalesMovementData aggregates sales per day for chart views.
type SalesMovementData struct {
	Date         string `json:"date"`
	Transactions int    `json:"transactions"`
	Amount       int64  `json:"amount"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create runs on the caller's tx so the transaction row and its items commit
// together with the stock decrements.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Items").Preload("Cashier").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Items").Preload("Cashier").First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) UpdateStatus(id uuid.UUID, status model.TransactionStatus, updatedBy string) error {
	return r.db.Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *transactionRepo) UpdateCustomerInfo(id uuid.UUID, info model.ShippingInfo, updatedBy string) error {
	return r.db.Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_name":  info.CustomerName,
			"customer_phone": info.PhoneNumber,
			"customer_addr":  info.Address,
			"updated_by":     updatedBy,
		}).Error
}

func (r *transactionRepo) TotalSales() (int64, error) {
	var total int64
	err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *transactionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Count(&count).Error
	return count, err
}

func (r *transactionRepo) GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as transactions,
			COALESCE(SUM(total_amount), 0) as amount
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.Transactions, &data.Amount); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
