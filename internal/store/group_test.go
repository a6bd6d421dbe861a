package store

import "testing"

func TestGroupCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupStore(db)

	group, err := gs.Create("Homeroom 3B", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if group.Name != "Homeroom 3B" {
		t.Errorf("name = %q, want %q", group.Name, "Homeroom 3B")
	}
	if group.Timezone != "Asia/Tokyo" {
		t.Errorf("timezone = %q, want Asia/Tokyo", group.Timezone)
	}

	got, err := gs.GetByID(group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if got.ID != group.ID {
		t.Errorf("id = %d, want %d", got.ID, group.ID)
	}
}

func TestGroupDefaultTimezone(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupStore(db)

	group, err := gs.Create("No zone", "")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if group.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", group.Timezone)
	}
}

func TestGroupGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := NewGroupStore(db).GetByID(9999)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestGroupRoster(t *testing.T) {
	db := setupTestDB(t)
	group, members := seedGroup(t, db)
	gs := NewGroupStore(db)

	roster, err := gs.ListMembers(group.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected 3 members, got %d", len(roster))
	}
	// Insertion order via sort_order
	if roster[0].Name != "Mom" || roster[1].Name != "Alice" || roster[2].Name != "Bob" {
		t.Errorf("roster order = %s, %s, %s", roster[0].Name, roster[1].Name, roster[2].Name)
	}
	if roster[0].Assignable() {
		t.Error("manager should not be assignable")
	}
	if !roster[1].Assignable() || !roster[2].Assignable() {
		t.Error("plain members should be assignable")
	}

	if err := gs.RemoveMember(members[2].ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	roster, _ = gs.ListMembers(group.ID)
	if len(roster) != 2 {
		t.Errorf("expected 2 members after removal, got %d", len(roster))
	}
}
