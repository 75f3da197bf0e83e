package state

import (
	"database/sql"
	"errors"
	"time"
)

// QueueState is the saved play queue.
type QueueState struct {
	CurrentIndex int
	Position     time.Duration
	Paths        []string
}

// Interface is the session store used by the application.
type Interface interface {
	GetQueue() (*QueueState, error)
	SaveQueue(state QueueState) error
	SavePosition(index int, at time.Duration)
}

var _ Interface = (*Manager)(nil)

// GetQueue returns the saved queue. An empty database yields an empty
// queue with CurrentIndex -1.
func (m *Manager) GetQueue() (*QueueState, error) {
	var index int
	var posMS int64
	row := m.db.QueryRow(`SELECT current_index, position_ms FROM session_state WHERE id = 1`)
	err := row.Scan(&index, &posMS)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := m.db.Query(`SELECT path FROM session_tracks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: index,
		Position:     time.Duration(posMS) * time.Millisecond,
		Paths:        paths,
	}, nil
}

// SaveQueue replaces the saved queue. A pending debounced position is
// dropped since it refers to the previous queue.
func (m *Manager) SaveQueue(state QueueState) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()

	return withTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session_tracks`); err != nil {
			return err
		}
		if err := upsertPosition(tx, position{index: state.CurrentIndex, at: state.Position}); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO session_tracks (position, path) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, p := range state.Paths {
			if _, err := stmt.Exec(i, p); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func savePosition(db *sql.DB, p position) error {
	return upsertPosition(db, p)
}

func upsertPosition(db execer, p position) error {
	_, err := db.Exec(`
		INSERT INTO session_state (id, current_index, position_ms, saved_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_index = excluded.current_index,
			position_ms = excluded.position_ms,
			saved_at = excluded.saved_at
	`, p.index, p.at.Milliseconds(), time.Now().Unix())
	return err
}
