package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

func (s *Store) ensureSchema() error {
	s.schemaOnce.Do(func() {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS ai_feedback (
				id              BIGSERIAL PRIMARY KEY,
				material_id     TEXT,
				pair_id         BIGINT NOT NULL,
				en              TEXT NOT NULL,
				ko              TEXT,
				paths           JSONB NOT NULL,
				teacher_name    TEXT,
				embedding       JSONB,
				embedding_model TEXT,
				created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS ai_path_stats (
				path TEXT PRIMARY KEY,
				uses BIGINT NOT NULL DEFAULT 0
			);
		`)
		s.schemaErr = err
	})
	return s.schemaErr
}

func (s *Store) putDB(ctx context.Context, e Entry) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	paths, err := json.Marshal(e.Paths)
	if err != nil {
		return err
	}
	var embedding []byte
	if len(e.Embedding) > 0 {
		embedding, err = json.Marshal(e.Embedding)
		if err != nil {
			return err
		}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_feedback
			(material_id, pair_id, en, ko, paths, teacher_name, embedding, embedding_model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, nullable(e.MaterialID), e.PairID, e.EN, nullable(e.KO), paths,
		nullable(e.TeacherName), embedding, nullable(e.EmbeddingModel), e.CreatedAt)
	return err
}

func (s *Store) bumpPathsDB(ctx context.Context, paths []string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, p := range paths {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ai_path_stats (path, uses) VALUES ($1, 1)
			ON CONFLICT (path) DO UPDATE SET uses = ai_path_stats.uses + 1
		`, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) pathUsesDB(ctx context.Context, path string) (int, error) {
	if err := s.ensureSchema(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT uses FROM ai_path_stats WHERE path = $1`, path).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) allDB(ctx context.Context) ([]Entry, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(material_id, ''), pair_id, en, COALESCE(ko, ''),
			paths, COALESCE(teacher_name, ''), COALESCE(embedding, 'null'),
			COALESCE(embedding_model, ''), created_at
		FROM ai_feedback ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var paths, embedding []byte
		if err := rows.Scan(&e.MaterialID, &e.PairID, &e.EN, &e.KO,
			&paths, &e.TeacherName, &embedding, &e.EmbeddingModel, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paths, &e.Paths); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(embedding, &e.Embedding)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
