package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ktr1133/chorewheel/internal/database"
	"github.com/ktr1133/chorewheel/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedGroup creates a group with one manager and two assignable members.
func seedGroup(t *testing.T, db *sql.DB) (*model.Group, []model.GroupMember) {
	t.Helper()
	gs := NewGroupStore(db)

	group, err := gs.Create("Bag End", "UTC")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	var members []model.GroupMember
	for _, seed := range []struct {
		name    string
		manager bool
	}{
		{"Mom", true},
		{"Alice", false},
		{"Bob", false},
	} {
		m, err := gs.AddMember(group.ID, seed.name, seed.manager)
		if err != nil {
			t.Fatalf("add member %s: %v", seed.name, err)
		}
		members = append(members, *m)
	}
	return group, members
}

func seedDefinition(t *testing.T, db *sql.DB, groupID int64, mutate func(*model.ScheduledTask)) *model.ScheduledTask {
	t.Helper()
	def := &model.ScheduledTask{
		GroupID:         groupID,
		Title:           "Wash dishes",
		Description:     "All of them",
		Reward:          5,
		RecurrenceRules: "FREQ=DAILY;TIME=09:00",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
	if mutate != nil {
		mutate(def)
	}
	created, err := NewScheduledTaskStore(db).Create(def)
	if err != nil {
		t.Fatalf("create definition: %v", err)
	}
	return created
}
