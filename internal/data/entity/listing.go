package entity

import (
	"github.com/google/uuid"
)

// Listing is read-only to the booking engine. Nightly price, fee schedule
// and cancellation policy are inputs; policy is copied onto each booking at
// creation time so later listing edits never reprice existing stays.
type Listing struct {
	Base
	HostID             uuid.UUID          `db:"host_id"`
	Title              string             `db:"title"`
	NightlyPrice       float64            `db:"nightly_price"`
	CleaningFee        float64            `db:"cleaning_fee"`
	MaxGuests          int                `db:"max_guests"`
	CancellationPolicy CancellationPolicy `db:"cancellation_policy"`
	InstantBookable    bool               `db:"instant_bookable"`
}
