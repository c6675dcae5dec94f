// Package receipts keeps a local SQLite journal of confirmed payments.
package receipts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/billpay/internal/payment"
	_ "modernc.org/sqlite"
)

const dbFile = ".billpay/receipts.db"

const schema = `
CREATE TABLE IF NOT EXISTS receipts (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    consumer_no TEXT NOT NULL,
    amount REAL NOT NULL,
    payment_type TEXT NOT NULL,
    language TEXT NOT NULL,
    method TEXT NOT NULL,
    instrument_no TEXT NOT NULL DEFAULT '',
    instrument_date TEXT NOT NULL DEFAULT '',
    mobile_number TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_consumer ON receipts(consumer_no);
`

// Receipt is one journaled confirmation.
type Receipt struct {
	Seq            int64               `json:"seq"`
	ID             string              `json:"id"`
	ConsumerNo     string              `json:"consumer_no"`
	Amount         float64             `json:"amount"`
	PaymentType    payment.PaymentType `json:"payment_type"`
	Language       payment.Language    `json:"language"`
	Method         payment.MethodID    `json:"method"`
	InstrumentNo   string              `json:"instrument_no,omitempty"`
	InstrumentDate string              `json:"instrument_date,omitempty"`
	MobileNumber   string              `json:"mobile_number"`
	Email          string              `json:"email"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Filter narrows List.
type Filter struct {
	ConsumerNo string
	Method     payment.MethodID
	Limit      int // 0 means no limit
}

// Store reads and writes receipts.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens (creating if needed) the journal under baseDir.
func Open(baseDir string) (*Store, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	s, err := NewStore(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open connection and creates the schema.
func NewStore(conn *sql.DB) (*Store, error) {
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{conn: conn, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record journals c and returns the stored receipt.
func (s *Store) Record(ctx context.Context, c payment.Confirmation) (Receipt, error) {
	number, date := "", ""
	if c.Method != nil {
		number, date = payment.Instrument(c.Method)
	}
	r := Receipt{
		ID:             uuid.NewString(),
		ConsumerNo:     c.ConsumerNo,
		Amount:         c.Amount,
		PaymentType:    c.PaymentType.OrDefault(),
		Language:       c.Language,
		Method:         c.MethodID(),
		InstrumentNo:   number,
		InstrumentDate: date,
		MobileNumber:   c.MobileNumber,
		Email:          c.Email,
		CreatedAt:      s.now().UTC(),
	}

	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO receipts (id, consumer_no, amount, payment_type, language, method,
			instrument_no, instrument_date, mobile_number, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ConsumerNo, r.Amount, string(r.PaymentType), string(r.Language), string(r.Method),
		r.InstrumentNo, r.InstrumentDate, r.MobileNumber, r.Email, r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Receipt{}, fmt.Errorf("insert receipt: %w", err)
	}
	if r.Seq, err = res.LastInsertId(); err != nil {
		return Receipt{}, fmt.Errorf("receipt seq: %w", err)
	}
	return r, nil
}

// List returns receipts newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Receipt, error) {
	query := `SELECT seq, id, consumer_no, amount, payment_type, language, method,
		instrument_no, instrument_date, mobile_number, email, created_at
		FROM receipts`
	var (
		where []string
		args  []any
	)
	if f.ConsumerNo != "" {
		where = append(where, "consumer_no = ?")
		args = append(args, f.ConsumerNo)
	}
	if f.Method != "" {
		where = append(where, "method = ?")
		args = append(args, string(f.Method))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		var (
			r                                 Receipt
			paymentType, language, method, at string
		)
		if err := rows.Scan(&r.Seq, &r.ID, &r.ConsumerNo, &r.Amount, &paymentType, &language, &method,
			&r.InstrumentNo, &r.InstrumentDate, &r.MobileNumber, &r.Email, &at); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		r.PaymentType = payment.PaymentType(paymentType)
		r.Language = payment.Language(language)
		r.Method = payment.MethodID(method)
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", at, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
