package domain

import "time"

// ISODate is the wire format for all calendar dates exchanged with the
// backend and kept in the session cache.
const ISODate = "2006-01-02"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealCombined  MealType = "combined"
)

// MealOffer is one published meal for a weekday. The backend serializes a
// list per meal slot but only the first entry carries the offer; absent or
// empty lists mean the menu is not published for that slot.
type MealOffer struct {
	Items             string
	Price             float64
	AvailableQuantity int
}

type DayMenu struct {
	Date      time.Time
	Breakfast *MealOffer
	Lunch     *MealOffer
}

func (d DayMenu) ISO() string {
	return d.Date.Format(ISODate)
}

// Offer returns the offer for a single meal slot, nil when unpublished.
func (d DayMenu) Offer(meal MealType) *MealOffer {
	switch meal {
	case MealBreakfast:
		return d.Breakfast
	case MealLunch:
		return d.Lunch
	}
	return nil
}

// Quantity returns the remaining portions for a meal slot, zero when the
// slot is unpublished.
func (d DayMenu) Quantity(meal MealType) int {
	if o := d.Offer(meal); o != nil {
		return o.AvailableQuantity
	}
	return 0
}

// Price returns the unit price for a meal slot, zero when unpublished.
func (d DayMenu) Price(meal MealType) float64 {
	if o := d.Offer(meal); o != nil {
		return o.Price
	}
	return 0
}

// Empty reports whether neither meal is published for the day.
func (d DayMenu) Empty() bool {
	return d.Breakfast == nil && d.Lunch == nil
}

// WeekMenu is the fully rebuilt view of one displayed week, Monday first.
type WeekMenu struct {
	Days [7]DayMenu

	// Selected indexes the day shown in detail: today when the displayed
	// week contains it, otherwise the first day.
	Selected int
}

func (w *WeekMenu) SelectedDay() DayMenu {
	return w.Days[w.Selected]
}

// MondayOf returns the Monday on or before t.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
