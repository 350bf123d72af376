package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BioHaZard1/Rashr/internal/profile"
)

// RecordScan stores a resolved profile and its diagnostics
func (d *DB) RecordScan(p *profile.Profile) (*ScanRecord, error) {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	rec := &ScanRecord{
		ID:              p.ID(),
		Device:          p.Device(),
		RawDevice:       p.RawDevice(),
		Manufacturer:    p.Manufacturer(),
		RecoveryKind:    p.RecoveryKind().String(),
		RecoveryPath:    p.RecoveryPath(),
		RecoveryExt:     p.RecoveryExt(),
		KernelKind:      p.KernelKind().String(),
		KernelPath:      p.KernelPath(),
		KernelExt:       p.KernelExt(),
		FOTA:            p.IsFOTA(),
		RecoveryVersion: p.RecoveryVersion(),
		KernelVersion:   p.KernelVersion(),
		ProfileJSON:     string(profileJSON),
		ScannedAt:       p.ScannedAt(),
	}
	diags := p.Diagnostics()
	rec.Diagnostics = len(diags)

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO scans (id, device, raw_device, manufacturer,
			recovery_kind, recovery_path, recovery_ext, kernel_kind, kernel_path, kernel_ext, fota,
			recovery_version, kernel_version, profile_json, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Device, nullString(rec.RawDevice), nullString(rec.Manufacturer),
		rec.RecoveryKind, nullString(rec.RecoveryPath), rec.RecoveryExt,
		rec.KernelKind, nullString(rec.KernelPath), rec.KernelExt, rec.FOTA,
		nullString(rec.RecoveryVersion), nullString(rec.KernelVersion), rec.ProfileJSON, rec.ScannedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record scan: %w", err)
	}

	for i, msg := range diags {
		if _, err := tx.Exec(`
			INSERT INTO scan_diagnostics (scan_id, seq, message) VALUES (?, ?, ?)
		`, rec.ID, i, msg); err != nil {
			return nil, fmt.Errorf("failed to record diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

const scanColumns = `
	s.id, s.device, s.raw_device, s.manufacturer,
	s.recovery_kind, s.recovery_path, s.recovery_ext, s.kernel_kind, s.kernel_path, s.kernel_ext, s.fota,
	s.recovery_version, s.kernel_version, s.profile_json, s.scanned_at,
	(SELECT COUNT(*) FROM scan_diagnostics d WHERE d.scan_id = s.id)
`

// GetScan returns a scan by id
func (d *DB) GetScan(id string) (*ScanRecord, error) {
	row := d.conn.QueryRow(`SELECT `+scanColumns+` FROM scans s WHERE s.id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// RecentScans returns the latest scans, newest first. An empty device
// returns scans of every device.
func (d *DB) RecentScans(device string, limit int) ([]*ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error

	if device != "" {
		rows, err = d.conn.Query(`
			SELECT `+scanColumns+` FROM scans s
			WHERE s.device = ?
			ORDER BY s.scanned_at DESC
			LIMIT ?
		`, device, limit)
	} else {
		rows, err = d.conn.Query(`
			SELECT `+scanColumns+` FROM scans s
			ORDER BY s.scanned_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []*ScanRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, rec)
	}
	return scans, rows.Err()
}

// ScanDiagnostics returns the diagnostics of a scan in their original order
func (d *DB) ScanDiagnostics(id string) ([]string, error) {
	if _, err := d.GetScan(id); err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`
		SELECT message FROM scan_diagnostics WHERE scan_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	diags := []string{}
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		diags = append(diags, msg)
	}
	return diags, rows.Err()
}

// DeleteOldScans removes scans older than the given age
func (d *DB) DeleteOldScans(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM scan_diagnostics WHERE scan_id IN (SELECT id FROM scans WHERE scanned_at < ?)
	`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete diagnostics: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM scans WHERE scanned_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete scans: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ScanCount returns the number of stored scans
func (d *DB) ScanCount() (int, error) {
	var n int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM scans").Scan(&n)
	return n, err
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*ScanRecord, error) {
	var rec ScanRecord
	var rawDevice, manufacturer, recoveryPath, kernelPath sql.NullString
	var recoveryExt, kernelExt, recoveryVersion, kernelVersion, profileJSON sql.NullString

	err := row.Scan(
		&rec.ID, &rec.Device, &rawDevice, &manufacturer,
		&rec.RecoveryKind, &recoveryPath, &recoveryExt, &rec.KernelKind, &kernelPath, &kernelExt, &rec.FOTA,
		&recoveryVersion, &kernelVersion, &profileJSON, &rec.ScannedAt,
		&rec.Diagnostics,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.RawDevice = rawDevice.String
	rec.Manufacturer = manufacturer.String
	rec.RecoveryPath = recoveryPath.String
	rec.RecoveryExt = recoveryExt.String
	rec.KernelPath = kernelPath.String
	rec.KernelExt = kernelExt.String
	rec.RecoveryVersion = recoveryVersion.String
	rec.KernelVersion = kernelVersion.String
	rec.ProfileJSON = profileJSON.String

	return &rec, nil
}

// Helper functions for nullable values
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
