package services

import (
	"context"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// reportDays is how far back the admin overview reaches, today included.
const reportDays = 7

// AdminOverview is the admin screen: aggregate stats, all purchase requests
// and the last week of daily reports.
type AdminOverview struct {
	Stats            *domain.AdminStats
	PurchaseRequests []domain.PurchaseRequest
	Reports          []domain.DailyReport
}

type AdminService struct {
	backend ports.Backend
	clock   ports.Clock
	log     *logger.Logger
}

func NewAdminService(backend ports.Backend, clock ports.Clock, log *logger.Logger) *AdminService {
	return &AdminService{backend: backend, clock: clock, log: log}
}

// Overview loads everything the admin screen shows. Individual daily
// reports that fail to load are dropped from the table rather than failing
// the whole screen.
func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	stats, err := s.backend.AdminStats(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.backend.AdminPurchaseRequests(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	reports := make([]domain.DailyReport, 0, reportDays)
	for i := reportDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(domain.ISODate)
		report, err := s.backend.DailyReport(ctx, date)
		if err != nil {
			s.log.Debugw("daily report unavailable", "date", date, "error", err)
			continue
		}
		reports = append(reports, *report)
	}

	return &AdminOverview{
		Stats:            stats,
		PurchaseRequests: requests,
		Reports:          reports,
	}, nil
}

// Report loads the meal report for a single day.
func (s *AdminService) Report(ctx context.Context, date string) (*domain.DailyReport, error) {
	return s.backend.DailyReport(ctx, date)
}

// Approve flips a purchase request's status and mirrors the outcome into
// the overview's local list so the screen updates without a reload.
func (s *AdminService) Approve(ctx context.Context, overview *AdminOverview, requestID int, approved bool) error {
	if err := s.backend.ApproveRequest(ctx, requestID, approved); err != nil {
		return err
	}

	status := domain.RequestApproved
	if !approved {
		status = domain.RequestRejected
	}
	for i := range overview.PurchaseRequests {
		if overview.PurchaseRequests[i].ID == requestID {
			overview.PurchaseRequests[i].Status = status
		}
	}
	return nil
}
