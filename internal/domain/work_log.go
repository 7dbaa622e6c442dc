package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WorkLog struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userID"`
	ProviderID       int64           `json:"providerID"`
	Date             time.Time       `json:"date"`
	StartTime        string          `json:"startTime"` // HH:MM:SS
	EndTime          string          `json:"endTime"`   // HH:MM:SS
	MinutesDay       int             `json:"minutesDay"`
	MinutesNight     int             `json:"minutesNight"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	MealsQty         int             `json:"mealsQty"`
	UnitValueApplied decimal.Decimal `json:"unitValueApplied"`
	TotalMealCost    decimal.Decimal `json:"totalMealCost"`
	Note             *string         `json:"note"`
	CreatedAt        time.Time       `json:"createdAt"`
	Version          int32           `json:"-"`
}

type AuditAction string

const (
	AuditInsert AuditAction = "INSERT"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// WorkLogAudit 记录一次工时记录的变更，Old* 在 INSERT 时为空，New* 在 DELETE 时为空
type WorkLogAudit struct {
	ID        int64       `json:"id"`
	WorkLogID int64       `json:"workLogID"`
	UserID    int64       `json:"userID"`
	Action    AuditAction `json:"action"`
	ChangedAt time.Time   `json:"changedAt"`

	OldDate *time.Time `json:"oldDate"`
	NewDate *time.Time `json:"newDate"`

	OldTotalValue *decimal.Decimal `json:"oldTotalValue"`
	NewTotalValue *decimal.Decimal `json:"newTotalValue"`

	OldTotalMealCost *decimal.Decimal `json:"oldTotalMealCost"`
	NewTotalMealCost *decimal.Decimal `json:"newTotalMealCost"`

	OldMinutesDay *int `json:"oldMinutesDay"`
	NewMinutesDay *int `json:"newMinutesDay"`

	OldMinutesNight *int `json:"oldMinutesNight"`
	NewMinutesNight *int `json:"newMinutesNight"`

	OldMealsQty *int `json:"oldMealsQty"`
	NewMealsQty *int `json:"newMealsQty"`

	OldNote *string `json:"oldNote"`
	NewNote *string `json:"newNote"`
}
