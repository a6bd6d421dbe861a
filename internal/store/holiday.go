package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ktr1133/chorewheel/internal/model"
)

type HolidayStore struct {
	db querier
}

func NewHolidayStore(db *sql.DB) *HolidayStore {
	return &HolidayStore{db: db}
}

func (s *HolidayStore) Add(date time.Time, name string) (*model.Holiday, error) {
	result, err := s.db.Exec(
		`INSERT INTO holidays (holiday_date, name) VALUES (?, ?)`,
		encodeDate(date), name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert holiday: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var h model.Holiday
	var d string
	err = s.db.QueryRow(`SELECT id, holiday_date, name FROM holidays WHERE id = ?`, id).
		Scan(&h.ID, &d, &h.Name)
	if err != nil {
		return nil, fmt.Errorf("get holiday: %w", err)
	}
	if h.Date, err = decodeDate(d); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HolidayStore) Remove(date time.Time) error {
	_, err := s.db.Exec(`DELETE FROM holidays WHERE holiday_date = ?`, encodeDate(date))
	if err != nil {
		return fmt.Errorf("remove holiday: %w", err)
	}
	return nil
}

// IsHoliday reports whether the calendar date is a holiday. Time-of-day is
// ignored.
func (s *HolidayStore) IsHoliday(date time.Time) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM holidays WHERE holiday_date = ?`,
		encodeDate(date),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check holiday: %w", err)
	}
	return count > 0, nil
}

func (s *HolidayStore) List() ([]model.Holiday, error) {
	rows, err := s.db.Query(`SELECT id, holiday_date, name FROM holidays ORDER BY holiday_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []model.Holiday
	for rows.Next() {
		var h model.Holiday
		var d string
		if err := rows.Scan(&h.ID, &d, &h.Name); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		if h.Date, err = decodeDate(d); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
