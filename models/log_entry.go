package models

import "time"

// Timestamp layout used in the diary files; minute precision is enough
// for a meal log and keeps the files readable.
const (
	TimestampLayout = "2006-01-02 15:04"
	DateLayout      = "2006-01-02"
)

// Meal types accepted by the diary.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

// Water intake is recorded in cups, 0–10 per entry.
const (
	WaterMin = 0
	WaterMax = 10
)

func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// LogEntry is one meal/water observation in an owner's diary.
// Date is redundant with Timestamp but stored for fast grouping.
type LogEntry struct {
	Timestamp   string `json:"timestamp"` // "2006-01-02 15:04"
	Date        string `json:"date"`      // "2006-01-02", prefix of Timestamp
	MealType    string `json:"meal_type"`
	Description string `json:"description"`
	Water       int    `json:"water"` // cups
	OwnerID     string `json:"owner_id"`
}

// Month returns the "YYYY-MM" bucket key for the entry.
func (e LogEntry) Month() string {
	if len(e.Timestamp) < 7 {
		return e.Timestamp
	}
	return e.Timestamp[:7]
}

// Validate checks the fields the summary pass depends on.
func (e LogEntry) Validate() error {
	if e.Timestamp == "" {
		return &InvalidEntryError{Field: "timestamp", Reason: "missing"}
	}
	if e.Date == "" {
		return &InvalidEntryError{Field: "date", Reason: "missing"}
	}
	if !ValidMealType(e.MealType) {
		return &InvalidEntryError{Field: "meal_type", Reason: "unknown meal type " + e.MealType}
	}
	if e.Water < WaterMin || e.Water > WaterMax {
		return &InvalidEntryError{Field: "water", Reason: "out of range"}
	}
	return nil
}

// NewLogEntry stamps an entry with the given time at minute precision.
func NewLogEntry(ownerID, mealType, description string, water int, at time.Time) LogEntry {
	ts := at.Format(TimestampLayout)
	return LogEntry{
		Timestamp:   ts,
		Date:        ts[:len(DateLayout)],
		MealType:    mealType,
		Description: description,
		Water:       water,
		OwnerID:     ownerID,
	}
}

// DiaryFile is the persisted shape of one owner's diary: a schema
// version, the owner id, and the entries in logging order.
type DiaryFile struct {
	Version int        `json:"version"`
	Owner   string     `json:"owner"`
	Logs    []LogEntry `json:"logs"`
}

const DiarySchemaVersion = 1
