package store

import (
	"database/sql"
	"fmt"

	"github.com/ktr1133/chorewheel/internal/model"
)

type PushSubscriptionStore struct {
	db querier
}

func NewPushSubscriptionStore(db *sql.DB) *PushSubscriptionStore {
	return &PushSubscriptionStore{db: db}
}

const pushSubCols = `id, member_id, endpoint, p256dh_key, auth_key, device_name, created_at`

func scanPushSub(scanner interface{ Scan(...any) error }) (*model.PushSubscription, error) {
	var p model.PushSubscription
	err := scanner.Scan(&p.ID, &p.MemberID, &p.Endpoint, &p.P256dhKey, &p.AuthKey, &p.DeviceName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create registers a device subscription, replacing any prior registration of
// the same endpoint (a browser re-subscribing after a key rotation).
func (s *PushSubscriptionStore) Create(memberID int64, endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	_, err := s.db.Exec(
		`INSERT INTO push_subscriptions (member_id, endpoint, p256dh_key, auth_key, device_name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET member_id = excluded.member_id,
			p256dh_key = excluded.p256dh_key, auth_key = excluded.auth_key,
			device_name = excluded.device_name`,
		memberID, endpoint, p256dh, auth, deviceName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert push subscription: %w", err)
	}

	// The upsert path leaves last_insert_rowid stale, so read back by endpoint.
	row := s.db.QueryRow(`SELECT `+pushSubCols+` FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	p, err := scanPushSub(row)
	if err != nil {
		return nil, fmt.Errorf("get push subscription: %w", err)
	}
	return p, nil
}

func (s *PushSubscriptionStore) ListByMember(memberID int64) ([]model.PushSubscription, error) {
	rows, err := s.db.Query(
		`SELECT `+pushSubCols+` FROM push_subscriptions WHERE member_id = ? ORDER BY id ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.PushSubscription
	for rows.Next() {
		p, err := scanPushSub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		subs = append(subs, *p)
	}
	return subs, rows.Err()
}

// DeleteByEndpoint prunes a subscription the push service reported gone.
func (s *PushSubscriptionStore) DeleteByEndpoint(endpoint string) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
