package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Preference keys shared by the frontends.
const (
	KeyLastLevel = "last_level"
	KeyMuted     = "muted"
)

func highScoreKey(levelID string) string {
	return "highscore." + levelID
}

// Get returns a preference value. ok is false when the key is not set.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read preference %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores a preference value, replacing any previous one.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	return nil
}

// Delete removes a preference. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete preference %q: %w", key, err)
	}
	return nil
}

// GetInt returns an integer preference, or def when it is not set.
func (s *Store) GetInt(key string, def int) (int, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("storage: preference %q is not a number: %w", key, err)
	}
	return n, nil
}

// PutInt stores an integer preference.
func (s *Store) PutInt(key string, value int) error {
	return s.Put(key, strconv.Itoa(value))
}

// GetBool returns a boolean preference, or def when it is not set.
func (s *Store) GetBool(key string, def bool) (bool, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("storage: preference %q is not a boolean: %w", key, err)
	}
	return b, nil
}

// PutBool stores a boolean preference.
func (s *Store) PutBool(key string, value bool) error {
	return s.Put(key, strconv.FormatBool(value))
}

// UpdateHighScore stores score as the level's best if it beats the stored
// one. Reports whether it did. The comparison happens inside the write so
// sessions sharing the database cannot lower the best.
func (s *Store) UpdateHighScore(levelID string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	key := highScoreKey(levelID)
	res, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 WHERE CAST(excluded.value AS INTEGER) > CAST(preferences.value AS INTEGER)`,
		key, strconv.Itoa(score),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	return n > 0, nil
}

// RecordRun saves a finished run and raises the level's best score if the
// run beat it. Reports whether it did. Runs scoring zero are not saved.
func (s *Store) RecordRun(levelID string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	if _, err := s.SaveScore(levelID, score); err != nil {
		return false, err
	}
	return s.UpdateHighScore(levelID, score)
}
