package service

import (
	"time"

	"go-uniform-pos/internal/repository"
)

// DefaultLowStockThreshold matches the catalog view's "restock soon" cutoff.
const DefaultLowStockThreshold = 10

// DashboardStats is the read-only overview aggregation.
type DashboardStats struct {
	TotalSales        int64 `json:"total_sales"`
	TotalTransactions int64 `json:"total_transactions"`
	TotalUniforms     int64 `json:"total_uniforms"`
	LowStockItems     int64 `json:"low_stock_items"`
	TotalUsers        int64 `json:"total_users"`
}

// SalesReport reconciles money in against money out.
type SalesReport struct {
	TotalSales     int64 `json:"total_sales"`
	TotalPurchases int64 `json:"total_purchases"`
}

type ReportService interface {
	GetDashboardStats() (*DashboardStats, error)
	GetSalesReport() (*SalesReport, error)
	GetSalesMovement(days int) ([]repository.SalesMovementData, error)
}

type reportService struct {
	txRepo            repository.TransactionRepository
	procurementRepo   repository.ProcurementRepository
	uniformRepo       repository.UniformRepository
	userRepo          repository.UserRepository
	lowStockThreshold int
}

// NewReportService aggregates over the sales and procurement ledgers. A
// non-positive threshold falls back to the default.
func NewReportService(tRepo repository.TransactionRepository, pRepo repository.ProcurementRepository, uRepo repository.UniformRepository, userRepo repository.UserRepository, lowStockThreshold int) ReportService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &reportService{
		txRepo:            tRepo,
		procurementRepo:   pRepo,
		uniformRepo:       uRepo,
		userRepo:          userRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *reportService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalSales, err = s.txRepo.TotalSales(); err != nil {
		return nil, err
	}
	if stats.TotalTransactions, err = s.txRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalUniforms, err = s.uniformRepo.Count(); err != nil {
		return nil, err
	}
	if stats.LowStockItems, err = s.uniformRepo.CountLowStock(s.lowStockThreshold); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *reportService) GetSalesReport() (*SalesReport, error) {
	sales, err := s.txRepo.TotalSales()
	if err != nil {
		return nil, err
	}
	purchases, err := s.procurementRepo.TotalPurchases()
	if err != nil {
		return nil, err
	}
	return &SalesReport{TotalSales: sales, TotalPurchases: purchases}, nil
}

func (s *reportService) GetSalesMovement(days int) ([]repository.SalesMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetSalesMovement(startDate, endDate)
}
