package domain

import (
	"time"

	"github.com/google/uuid"
)

type Excursion struct {
	ID                   uuid.UUID
	Name                 string
	Date                 time.Time
	ConfirmationDeadline time.Time
}

type Transfer struct {
	ID          uuid.UUID
	Name        string
	ServiceDate time.Time
}
