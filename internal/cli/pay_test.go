package cli_test

import (
	"strings"
	"testing"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/test/mocks"
)

var validCardArgs = []string{"--card", "4111111111111111", "--expiry", "12/29", "--cvc", "123"}

// cliNow is a Wednesday, so key "3" is the day the pay command resolves by
// default.
func seededStudentSession(t *testing.T, lunchQty int) (*mocks.MockKeyValue, *mocks.MockBackend) {
	t.Helper()
	kv := mocks.NewMockKeyValue()
	kv.Seed("access", mocks.SignedToken(cliNow.Add(time.Hour), "student"))
	backend := mocks.NewMockBackend()
	backend.Week = ports.RawWeek{
		"3": {Lunch: []ports.RawOffer{{MenuItems: "soup", Price: "250.00", AvailableQuantity: lunchQty}}},
	}
	return kv, backend
}

func TestPayCommand_HoldsSuccessOnScreen(t *testing.T) {
	kv, backend := seededStudentSession(t, 5)
	app := newTestApp(kv, backend)
	var slept []time.Duration
	app.Sleep = func(d time.Duration) { slept = append(slept, d) }

	out, err := runCommand(t, app, append([]string{"pay"}, validCardArgs...)...)
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if !strings.Contains(out, "Paid 250.00 for lunch on 2025-01-15") {
		t.Errorf("output = %q", out)
	}
	if len(backend.PayMealCalls) != 1 {
		t.Fatalf("PayMealCalls = %d", len(backend.PayMealCalls))
	}
	if len(slept) != 1 || slept[0] != services.SuccessDisplayWindow {
		t.Errorf("slept = %v, want one hold of %v", slept, services.SuccessDisplayWindow)
	}
}

func TestPayCommand_SoldOutMealNotPayable(t *testing.T) {
	kv, backend := seededStudentSession(t, 0)
	app := newTestApp(kv, backend)
	var slept []time.Duration
	app.Sleep = func(d time.Duration) { slept = append(slept, d) }

	_, err := runCommand(t, app, append([]string{"pay"}, validCardArgs...)...)
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if len(backend.PayMealCalls) != 0 {
		t.Errorf("payment dispatched for a sold-out meal: %v", backend.PayMealCalls)
	}
	if len(slept) != 0 {
		t.Errorf("held the screen after a failed payment: %v", slept)
	}
}

func TestSubscribeCommand_HoldsSuccessOnScreen(t *testing.T) {
	kv, backend := seededStudentSession(t, 5)
	app := newTestApp(kv, backend)
	var slept []time.Duration
	app.Sleep = func(d time.Duration) { slept = append(slept, d) }

	out, err := runCommand(t, app, append([]string{"subscribe"}, validCardArgs...)...)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if !strings.Contains(out, "Subscription active 2025-01-15") {
		t.Errorf("output = %q", out)
	}
	if len(slept) != 1 || slept[0] != services.SuccessDisplayWindow {
		t.Errorf("slept = %v, want one hold of %v", slept, services.SuccessDisplayWindow)
	}
}
