// Package sqlite implements backend.DataAccess on an embedded SQLite
// database. Business and organization detail blobs are stored as JSON so
// the schema stays stable as registration fields evolve.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	_ "modernc.org/sqlite"
)

// Store implements backend.DataAccess using SQLite.
type Store struct {
	db *sql.DB
}

var _ backend.DataAccess = (*Store)(nil)

// New creates a SQLite-backed data-access store at the given path.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		account_number TEXT,
		registration_id TEXT,
		organization_id TEXT,
		is_attendee INTEGER NOT NULL DEFAULT 1,
		conference_name TEXT,
		location TEXT,
		conference_package TEXT,
		primary_stream TEXT,
		secondary_stream TEXT,
		company TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_users_account ON users(account_number);
	CREATE INDEX IF NOT EXISTS idx_users_registration ON users(registration_id);

	CREATE TABLE IF NOT EXISTS conference_sessions (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		speaker TEXT,
		start_time TEXT,
		end_time TEXT,
		room TEXT,
		track TEXT,
		conference_date TEXT,
		description TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_date ON conference_sessions(conference_date);

	CREATE TABLE IF NOT EXISTS businesses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		details_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_businesses_user ON businesses(user_id);

	CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		details_json TEXT
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

const identityColumns = `id, name, email, account_number, registration_id,
	organization_id, is_attendee, conference_name, location,
	conference_package, primary_stream, secondary_stream, company`

// LookupIdentity resolves a user by account number, registration id or
// primary id.
func (s *Store) LookupIdentity(ctx context.Context, identifier string) (*backend.Identity, error) {
	query := `SELECT ` + identityColumns + `
		FROM users
		WHERE account_number = ? OR registration_id = ? OR id = ?
		LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, identifier, identifier, identifier)

	var id backend.Identity
	var email, account, registration, organization sql.NullString
	var conference, location, pkg, primary, secondary, company sql.NullString

	err := row.Scan(
		&id.ID, &id.Name, &email, &account, &registration,
		&organization, &id.IsAttendee, &conference, &location,
		&pkg, &primary, &secondary, &company,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	id.Email = email.String
	id.AccountNumber = account.String
	id.RegistrationID = registration.String
	id.OrganizationID = organization.String
	id.ConferenceName = conference.String
	id.Location = location.String
	id.ConferencePackage = pkg.String
	id.PrimaryStream = primary.String
	id.SecondaryStream = secondary.String
	id.Company = company.String
	return &id, nil
}

// QuerySessions returns conference sessions matching the filter, ordered by
// date and start time.
func (s *Store) QuerySessions(ctx context.Context, f backend.ScheduleFilter) ([]backend.ConferenceSession, error) {
	query := `SELECT id, topic, speaker, start_time, end_time, room, track,
			conference_date, description
		FROM conference_sessions WHERE 1=1`
	var args []any

	if f.Speaker != "" {
		query += ` AND speaker LIKE ?`
		args = append(args, "%"+f.Speaker+"%")
	}
	if f.Topic != "" {
		query += ` AND topic LIKE ?`
		args = append(args, "%"+f.Topic+"%")
	}
	if f.Room != "" {
		query += ` AND room LIKE ?`
		args = append(args, "%"+f.Room+"%")
	}
	if f.Track != "" {
		query += ` AND track LIKE ?`
		args = append(args, "%"+f.Track+"%")
	}
	if f.Date != "" {
		query += ` AND conference_date = ?`
		args = append(args, f.Date)
	}
	query += ` ORDER BY conference_date, start_time`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []backend.ConferenceSession
	for rows.Next() {
		var cs backend.ConferenceSession
		var speaker, start, end, room, track, date, description sql.NullString
		if err := rows.Scan(&cs.ID, &cs.Topic, &speaker, &start, &end,
			&room, &track, &date, &description); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		cs.Speaker = speaker.String
		cs.StartTime = start.String
		cs.EndTime = end.String
		cs.Room = room.String
		cs.Track = track.String
		cs.Date = date.String
		cs.Description = description.String
		sessions = append(sessions, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// SearchAttendees returns attendee profiles matching the filter.
func (s *Store) SearchAttendees(ctx context.Context, f backend.AttendeeFilter) ([]backend.Attendee, error) {
	query := `SELECT id, name, company, location, primary_stream,
			secondary_stream, conference_package
		FROM users WHERE is_attendee = 1`
	var args []any

	if f.Name != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+f.Name+"%")
	}
	if f.Location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+f.Location+"%")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	query += ` ORDER BY name LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendees: %w", err)
	}
	defer rows.Close()

	var attendees []backend.Attendee
	for rows.Next() {
		var a backend.Attendee
		var company, location, primary, secondary, pkg sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &company, &location,
			&primary, &secondary, &pkg); err != nil {
			return nil, fmt.Errorf("scan attendee row: %w", err)
		}
		a.Company = company.String
		a.Location = location.String
		a.PrimaryStream = primary.String
		a.SecondaryStream = secondary.String
		a.ConferencePackage = pkg.String
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendees: %w", err)
	}
	return attendees, nil
}

// SearchBusinesses returns directory entries matching the filter. Sector,
// location and free-text criteria are matched against the JSON detail blob.
func (s *Store) SearchBusinesses(ctx context.Context, f backend.BusinessFilter) ([]backend.Business, error) {
	query := `SELECT id, user_id, details_json FROM businesses WHERE 1=1`
	var args []any

	if f.Sector != "" {
		query += ` AND json_extract(details_json, '$.industry_sector') LIKE ?`
		args = append(args, "%"+f.Sector+"%")
	}
	if f.Location != "" {
		query += ` AND json_extract(details_json, '$.location') LIKE ?`
		args = append(args, "%"+f.Location+"%")
	}
	if f.Query != "" {
		query += ` AND (json_extract(details_json, '$.company_name') LIKE ?
			OR json_extract(details_json, '$.brief_description') LIKE ?)`
		args = append(args, "%"+f.Query+"%", "%"+f.Query+"%")
	}
	query += ` ORDER BY json_extract(details_json, '$.company_name')`

	return s.queryBusinesses(ctx, query, args...)
}

// UserBusinesses returns the businesses registered by one user.
func (s *Store) UserBusinesses(ctx context.Context, userID string) ([]backend.Business, error) {
	query := `SELECT id, user_id, details_json FROM businesses WHERE user_id = ?
		ORDER BY json_extract(details_json, '$.company_name')`
	return s.queryBusinesses(ctx, query, userID)
}

func (s *Store) queryBusinesses(ctx context.Context, query string, args ...any) ([]backend.Business, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	var businesses []backend.Business
	for rows.Next() {
		var b backend.Business
		var detailsJSON string
		if err := rows.Scan(&b.ID, &b.UserID, &detailsJSON); err != nil {
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		if err := json.Unmarshal([]byte(detailsJSON), &b.Details); err != nil {
			return nil, fmt.Errorf("decode business details: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

// AddBusiness inserts a new directory entry for the user. It reports false
// when the insert affected no row.
func (s *Store) AddBusiness(ctx context.Context, userID string, details backend.BusinessDetails) (bool, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return false, fmt.Errorf("encode business details: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO businesses (id, user_id, details_json) VALUES (?, ?, ?)`,
		core.NewID(), userID, string(detailsJSON))
	if err != nil {
		return false, fmt.Errorf("insert business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// Organization returns the organization record with the given id. Detail
// values are normalized to text regardless of how they were stored in the
// JSON blob.
func (s *Store) Organization(ctx context.Context, id string) (*backend.Organization, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, details_json FROM organizations WHERE id = ?`, id)

	var org backend.Organization
	var detailsJSON sql.NullString
	err := row.Scan(&org.ID, &org.Name, &detailsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan organization row: %w", err)
	}

	if detailsJSON.Valid && detailsJSON.String != "" {
		var raw map[string]any
		if err := json.Unmarshal([]byte(detailsJSON.String), &raw); err != nil {
			return nil, fmt.Errorf("decode organization details: %w", err)
		}
		org.Details = make(map[string]string, len(raw))
		for k, v := range raw {
			org.Details[k] = core.CoerceText(v)
		}
	}
	return &org, nil
}

// SeedUser inserts or replaces a user record. Used by setup tooling and
// tests to populate the directory.
func (s *Store) SeedUser(ctx context.Context, id backend.Identity) error {
	query := `INSERT OR REPLACE INTO users (` + identityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		id.ID, id.Name, id.Email, id.AccountNumber, id.RegistrationID,
		id.OrganizationID, id.IsAttendee, id.ConferenceName, id.Location,
		id.ConferencePackage, id.PrimaryStream, id.SecondaryStream, id.Company)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}

// SeedSession inserts or replaces a conference session record.
func (s *Store) SeedSession(ctx context.Context, cs backend.ConferenceSession) error {
	if cs.ID == "" {
		cs.ID = core.NewID()
	}
	query := `INSERT OR REPLACE INTO conference_sessions
		(id, topic, speaker, start_time, end_time, room, track, conference_date, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		cs.ID, cs.Topic, cs.Speaker, cs.StartTime, cs.EndTime,
		cs.Room, cs.Track, cs.Date, cs.Description)
	if err != nil {
		return fmt.Errorf("seed session: %w", err)
	}
	return nil
}

// SeedOrganization inserts or replaces an organization record.
func (s *Store) SeedOrganization(ctx context.Context, org backend.Organization) error {
	detailsJSON, err := json.Marshal(org.Details)
	if err != nil {
		return fmt.Errorf("encode organization details: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO organizations (id, name, details_json) VALUES (?, ?, ?)`,
		org.ID, org.Name, string(detailsJSON))
	if err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}
	return nil
}
