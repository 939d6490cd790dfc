package services_test

import (
	"context"
	"testing"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
	"github.com/novaschool/stolovaya/cafeteria-client/test/mocks"
)

func newAdminService(backend *mocks.MockBackend) *services.AdminService {
	return services.NewAdminService(backend, mocks.FixedClock{T: testNow}, logger.Nop())
}

func TestAdminService_Overview(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockBackend()
	backend.Stats = &domain.AdminStats{TodayPayments: 42, ActiveSubscriptions: 7}
	backend.AdminRequests = []domain.PurchaseRequest{
		{ID: 1, ProductName: "flour", Status: domain.RequestPending},
	}
	// Reports exist for three of the last seven days; the gaps must not fail
	// the screen.
	for _, date := range []string{"2025-01-13", "2025-01-14", "2025-01-15"} {
		backend.Reports[date] = &domain.DailyReport{Date: date, LunchCount: 5}
	}

	overview, err := newAdminService(backend).Overview(ctx)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if overview.Stats.TodayPayments != 42 {
		t.Errorf("stats = %+v", overview.Stats)
	}
	if len(overview.PurchaseRequests) != 1 {
		t.Errorf("requests = %+v", overview.PurchaseRequests)
	}
	if len(overview.Reports) != 3 {
		t.Fatalf("reports = %d, want the 3 available days", len(overview.Reports))
	}
	// Oldest first.
	if overview.Reports[0].Date != "2025-01-13" || overview.Reports[2].Date != "2025-01-15" {
		t.Errorf("report order: %s .. %s", overview.Reports[0].Date, overview.Reports[2].Date)
	}
}

func TestAdminService_Approve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		approved   bool
		wantStatus domain.RequestStatus
	}{
		{name: "approval_marks_request_approved", approved: true, wantStatus: domain.RequestApproved},
		{name: "rejection_marks_request_rejected", approved: false, wantStatus: domain.RequestRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mocks.NewMockBackend()
			backend.Stats = &domain.AdminStats{}
			backend.AdminRequests = []domain.PurchaseRequest{
				{ID: 1, ProductName: "flour", Status: domain.RequestPending},
				{ID: 2, ProductName: "salt", Status: domain.RequestPending},
			}
			svc := newAdminService(backend)

			overview, err := svc.Overview(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if err := svc.Approve(ctx, overview, 1, tt.approved); err != nil {
				t.Fatalf("Approve() error = %v", err)
			}

			if len(backend.ApproveCalls) != 1 || backend.ApproveCalls[0][0] != 1 {
				t.Errorf("backend approve calls = %v", backend.ApproveCalls)
			}
			if overview.PurchaseRequests[0].Status != tt.wantStatus {
				t.Errorf("request 1 status = %s, want %s", overview.PurchaseRequests[0].Status, tt.wantStatus)
			}
			if overview.PurchaseRequests[1].Status != domain.RequestPending {
				t.Errorf("request 2 status changed to %s", overview.PurchaseRequests[1].Status)
			}
		})
	}
}
