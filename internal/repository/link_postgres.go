package repository

import (
	"database/sql"
	"fmt"

	"wingsync/internal/models"
)

type LinkPostgres struct {
	db *sql.DB
}

func NewLinkPostgres(db *sql.DB) *LinkPostgres {
	return &LinkPostgres{db: db}
}

// probe runs a cheap connectivity check before every call. Once the session
// committed to postgres at startup there is no fallback, so a dead connection
// surfaces as ErrStorageUnavailable instead of silently switching stores.
func (r *LinkPostgres) probe() error {
	if err := r.db.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *LinkPostgres) Upsert(link models.Link) error {
	if err := r.probe(); err != nil {
		return err
	}

	_, err := r.db.Exec(`
		INSERT INTO discord_whitelist (uuid, username, discord_id, discord_username, linked_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (uuid) DO UPDATE SET
			username = $2,
			discord_id = $3,
			discord_username = $4,
			linked_at = NOW()
	`, link.UUID, link.Username, link.DiscordID, link.DiscordName)
	if err != nil {
		return fmt.Errorf("failed to upsert link: %w", err)
	}
	return nil
}

func (r *LinkPostgres) RemoveByUUID(uuid string) error {
	if err := r.probe(); err != nil {
		return err
	}

	_, err := r.db.Exec(`DELETE FROM discord_whitelist WHERE uuid = $1`, uuid)
	if err != nil {
		return fmt.Errorf("failed to remove link: %w", err)
	}
	return nil
}

func (r *LinkPostgres) RemoveByName(username string) error {
	if err := r.probe(); err != nil {
		return err
	}

	_, err := r.db.Exec(`
		DELETE FROM discord_whitelist WHERE uuid IN (
			SELECT uuid FROM discord_whitelist WHERE LOWER(username) = LOWER($1) LIMIT 1
		)
	`, username)
	if err != nil {
		return fmt.Errorf("failed to remove link by name: %w", err)
	}
	return nil
}

func (r *LinkPostgres) FindByDiscordID(discordID string) ([]string, error) {
	if err := r.probe(); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT username FROM discord_whitelist WHERE discord_id = $1 ORDER BY username
	`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		usernames = append(usernames, name)
	}
	return usernames, rows.Err()
}

func (r *LinkPostgres) FindDiscordNameByUsername(username string) (string, error) {
	if err := r.probe(); err != nil {
		return "", err
	}

	var discordName string
	err := r.db.QueryRow(`
		SELECT discord_username FROM discord_whitelist WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&discordName)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query link: %w", err)
	}
	return discordName, nil
}

func (r *LinkPostgres) FindDiscordIDByUUID(uuid string) (string, error) {
	if err := r.probe(); err != nil {
		return "", err
	}

	var discordID string
	err := r.db.QueryRow(`
		SELECT discord_id FROM discord_whitelist WHERE uuid = $1
	`, uuid).Scan(&discordID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query link: %w", err)
	}
	return discordID, nil
}

func (r *LinkPostgres) All() ([]models.Link, error) {
	if err := r.probe(); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT uuid, username, discord_id, discord_username, linked_at
		FROM discord_whitelist ORDER BY linked_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.UUID, &l.Username, &l.DiscordID, &l.DiscordName, &l.LinkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *LinkPostgres) Count() (int, error) {
	if err := r.probe(); err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM discord_whitelist`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return n, nil
}

func (r *LinkPostgres) Close() error {
	return r.db.Close()
}
