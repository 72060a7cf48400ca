package history

const recordColumns = `id, timestamp, path, fingerprint, size, kept_path, outcome, error_message`

// Recent returns the most recent deletion records, newest first.
func (h *DB) Recent(limit int) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM deletions
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`
	return h.query(query, limit)
}

// Failures returns the most recent records whose outcome was not a
// successful deletion, newest first.
func (h *DB) Failures(limit int) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM deletions
	WHERE outcome != 'deleted'
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`
	return h.query(query, limit)
}

// TotalFreed returns the byte total of all successful deletions.
func (h *DB) TotalFreed() (int64, error) {
	query := `
	SELECT COALESCE(SUM(size), 0)
	FROM deletions
	WHERE outcome = 'deleted'
	`
	var total int64
	err := h.db.QueryRow(query).Scan(&total)
	return total, err
}

func (h *DB) query(query string, args ...any) ([]Record, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Path, &rec.Fingerprint,
			&rec.Size, &rec.KeptPath, &rec.Outcome, &rec.ErrorMsg,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
