package services

import (
	"context"
	"strconv"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// MenuProvider builds the weekly menu view. Every navigation re-anchors the
// displayed week to the Monday on or before the reference date and fetches
// the whole week again; nothing is cached across navigations.
type MenuProvider struct {
	backend ports.Backend
	clock   ports.Clock
}

func NewMenuProvider(backend ports.Backend, clock ports.Clock) *MenuProvider {
	return &MenuProvider{backend: backend, clock: clock}
}

// LoadWeek fetches and assembles the week containing the reference date.
// The backend keys days "1".."7" (Monday..Sunday); missing keys become
// unpublished days. The selected day defaults to today when the displayed
// week contains it, otherwise to the week's first day.
func (m *MenuProvider) LoadWeek(ctx context.Context, reference time.Time) (*domain.WeekMenu, error) {
	raw, err := m.backend.WeeklyMenu(ctx)
	if err != nil {
		return nil, err
	}

	monday := domain.MondayOf(reference)
	week := &domain.WeekMenu{}
	for i := 0; i < 7; i++ {
		day := domain.DayMenu{Date: monday.AddDate(0, 0, i)}
		if rawDay, ok := raw[strconv.Itoa(i+1)]; ok {
			day.Breakfast = firstOffer(rawDay.Breakfast)
			day.Lunch = firstOffer(rawDay.Lunch)
		}
		week.Days[i] = day
	}

	today := m.clock.Now().Format(domain.ISODate)
	for i, day := range week.Days {
		if day.ISO() == today {
			week.Selected = i
			break
		}
	}
	return week, nil
}

// firstOffer projects the backend's per-slot list to its single meaningful
// entry.
func firstOffer(offers []ports.RawOffer) *domain.MealOffer {
	if len(offers) == 0 {
		return nil
	}
	price, err := strconv.ParseFloat(offers[0].Price, 64)
	if err != nil {
		price = 0
	}
	return &domain.MealOffer{
		Items:             offers[0].MenuItems,
		Price:             price,
		AvailableQuantity: offers[0].AvailableQuantity,
	}
}
