// Package store persists canonical payslip records. The pipeline hands
// ownership of each PayslipItem to the store immediately after creation and
// never mutates it again.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/akshaydev2089/payslip-vault/dto"
)

// ErrNotFound is returned when a payslip id has no stored record.
var ErrNotFound = errors.New("payslip not found")

// PayslipStore is the persistence collaborator. Save accepts any record
// value but the store holds exactly one record type; anything that is not a
// *dto.PayslipItem is rejected with dto.ErrUnsupportedType.
type PayslipStore interface {
	Save(ctx context.Context, record any) error
	List(ctx context.Context) ([]*dto.PayslipItem, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PayslipItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const schema = `
CREATE TABLE IF NOT EXISTS payslips (
	id             TEXT PRIMARY KEY,
	created_at     TIMESTAMP NOT NULL,
	month          TEXT NOT NULL,
	year           INTEGER NOT NULL,
	credits        REAL NOT NULL,
	debits         REAL NOT NULL,
	dsop           REAL NOT NULL,
	tax            REAL NOT NULL,
	name           TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	account_number TEXT NOT NULL DEFAULT '',
	pan_number     TEXT NOT NULL DEFAULT '',
	encrypted_data BLOB,
	earnings       TEXT NOT NULL DEFAULT '{}',
	deductions     TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_payslips_created_at ON payslips (created_at DESC);
`

// SQLiteStore stores payslips in a local sqlite database. The connection
// and schema are initialized lazily on first use, at most once.
type SQLiteStore struct {
	path   string
	logger *slog.Logger

	once    sync.Once
	db      *sql.DB
	initErr error
}

func NewSQLiteStore(path string, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{path: path, logger: logger}
}

func (s *SQLiteStore) init() {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		s.initErr = fmt.Errorf("failed to open payslip database: %w", err)
		return
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent API calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		s.initErr = fmt.Errorf("failed to create payslip schema: %w", err)
		db.Close()
		return
	}

	s.db = db
	s.logger.Info("payslip store ready", "path", s.path)
}

func (s *SQLiteStore) ready() (*sql.DB, error) {
	s.once.Do(s.init)
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.db, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, record any) error {
	item, ok := record.(*dto.PayslipItem)
	if !ok {
		return fmt.Errorf("%w: got %T", dto.ErrUnsupportedType, record)
	}

	db, err := s.ready()
	if err != nil {
		return err
	}

	earnings, err := json.Marshal(item.Earnings)
	if err != nil {
		return fmt.Errorf("failed to encode earnings: %w", err)
	}
	deductions, err := json.Marshal(item.Deductions)
	if err != nil {
		return fmt.Errorf("failed to encode deductions: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO payslips
			(id, created_at, month, year, credits, debits, dsop, tax,
			 name, location, account_number, pan_number, encrypted_data, earnings, deductions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(), item.CreatedAt.UTC(), item.Month, item.Year,
		item.Credits, item.Debits, item.DSOP, item.Tax,
		item.Name, item.Location, item.AccountNumber, item.PANNumber,
		item.EncryptedData, string(earnings), string(deductions),
	)
	if err != nil {
		return fmt.Errorf("failed to save payslip: %w", err)
	}

	s.logger.Info("payslip saved", "id", item.ID, "month", item.Month, "year", item.Year)
	return nil
}

// List returns all stored payslips, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]*dto.PayslipItem, error) {
	db, err := s.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	// never nil, so an empty table serializes as [] rather than null
	items := []*dto.PayslipItem{}
	for rows.Next() {
		item, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*dto.PayslipItem, error) {
	db, err := s.ready()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id.String())
	item, err := scanPayslip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := s.ready()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM payslips WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("payslip deleted", "id", id)
	return nil
}

const selectColumns = `
	SELECT id, created_at, month, year, credits, debits, dsop, tax,
	       name, location, account_number, pan_number, encrypted_data, earnings, deductions
	FROM payslips`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayslip(row rowScanner) (*dto.PayslipItem, error) {
	var (
		item       dto.PayslipItem
		rawID      string
		createdAt  time.Time
		earnings   string
		deductions string
	)
	err := row.Scan(&rawID, &createdAt, &item.Month, &item.Year,
		&item.Credits, &item.Debits, &item.DSOP, &item.Tax,
		&item.Name, &item.Location, &item.AccountNumber, &item.PANNumber,
		&item.EncryptedData, &earnings, &deductions)
	if err != nil {
		return nil, err
	}

	item.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt payslip id %q: %w", rawID, err)
	}
	item.CreatedAt = createdAt

	if err := json.Unmarshal([]byte(earnings), &item.Earnings); err != nil {
		return nil, fmt.Errorf("corrupt earnings for %s: %w", rawID, err)
	}
	if err := json.Unmarshal([]byte(deductions), &item.Deductions); err != nil {
		return nil, fmt.Errorf("corrupt deductions for %s: %w", rawID, err)
	}
	return &item, nil
}
