// README: Trip store backed by PostgreSQL; routes are stored as JSONB.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kabu/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, t *Trip) error {
	route, err := json.Marshal(t.Route)
	if err != nil {
		return err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (origin_name, target_name, departure_time, gender, route_coordinates, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		t.Origin,
		t.Destination,
		t.DepartureTime,
		t.Gender,
		route,
		int64(t.UserID),
	)
	return row.Scan(&t.ID)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, origin_name, target_name, departure_time, gender, route_coordinates, user_id
		FROM trips
		WHERE id = $1`, int64(id),
	)
	return scanTrip(row)
}

// GetByIDs loads a batch of trips keyed by id. Missing ids are simply absent
// from the returned map.
func (s *Store) GetByIDs(ctx context.Context, ids []types.ID) (map[types.ID]*Trip, error) {
	trips := make(map[types.ID]*Trip, len(ids))
	if len(ids) == 0 {
		return trips, nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, origin_name, target_name, departure_time, gender, route_coordinates, user_id
		FROM trips
		WHERE id = ANY($1)`, raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips[t.ID] = t
	}
	return trips, rows.Err()
}

func (s *Store) GetByUser(ctx context.Context, userID types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, origin_name, target_name, departure_time, gender, route_coordinates, user_id
		FROM trips
		WHERE user_id = $1`, int64(userID),
	)
	return scanTrip(row)
}

func (s *Store) DeleteByUser(ctx context.Context, userID types.ID) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, `
		DELETE FROM trips WHERE user_id = $1 RETURNING id`, int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

// ExpiredIDs lists trips whose departure time has elapsed.
func (s *Store) ExpiredIDs(ctx context.Context, now time.Time) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id FROM trips WHERE departure_time <= $1`, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

// DeleteExpired removes trips whose departure time has elapsed and returns
// how many rows were deleted.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM trips WHERE departure_time <= $1`, now,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	var t Trip
	var route []byte
	var id, userID int64
	err := row.Scan(&id, &t.Origin, &t.Destination, &t.DepartureTime, &t.Gender, &route, &userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(route, &t.Route); err != nil {
		return nil, err
	}
	t.ID = types.ID(id)
	t.UserID = types.ID(userID)
	return &t, nil
}

func collectIDs(rows pgx.Rows) ([]types.ID, error) {
	var ids []types.ID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, types.ID(id))
	}
	return ids, rows.Err()
}
