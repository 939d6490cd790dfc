package domain

// AdminStats mirrors the backend's aggregate counters for today.
type AdminStats struct {
	TodayPayments       int `json:"today_payments"`
	ActiveSubscriptions int `json:"active_subscriptions"`
	UniqueStudentsToday int `json:"unique_students_today"`
	MealsIssuedToday    int `json:"meals_issued_today"`
}

// DailyReport is one day of the admin's meals-and-spend report.
type DailyReport struct {
	Date              string `json:"date"`
	BreakfastCount    int    `json:"breakfast_count"`
	LunchCount        int    `json:"lunch_count"`
	SubscriptionsUsed int    `json:"subscriptions_used"`
	OneTimePayments   int    `json:"one_time_payments"`
	MealsIssued       int    `json:"meals_issued"`
}
