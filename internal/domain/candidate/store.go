package candidate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const candidateColumns = `
    id, candidate_id, name, position, experience, skills, education, is_shortlisted,
    resume_name, resume_enc IS NOT NULL, created_at`

func scanCandidate(row pgx.Row) (Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.CandidateID, &c.Name, &c.Position, &c.Experience, &c.Skills, &c.Education, &c.IsShortlisted,
		&c.ResumeName, &c.HasResume, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	return c, err
}

// Create allocates the next candidate id. resume.Data is stored as given;
// the service seals it first.
func (s *Store) Create(ctx context.Context, c Candidate, resume *File) (Candidate, error) {
	var name, contentType string
	var data []byte
	if resume != nil {
		name, contentType, data = resume.Name, resume.ContentType, resume.Data
	}
	var seq int64
	if err := s.DB.QueryRow(ctx, "SELECT nextval('candidate_code_seq')").Scan(&seq); err != nil {
		return Candidate{}, err
	}
	return scanCandidate(s.DB.QueryRow(ctx, `
    INSERT INTO candidates (candidate_id, name, position, experience, skills, education, resume_name, resume_content_type, resume_enc)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING`+candidateColumns,
		FormatCode(seq), c.Name, c.Position, c.Experience, c.Skills, c.Education, name, contentType, data))
}

func (s *Store) Get(ctx context.Context, id string) (Candidate, error) {
	return scanCandidate(s.DB.QueryRow(ctx, "SELECT"+candidateColumns+" FROM candidates WHERE candidate_id = $1 OR id::text = $1", id))
}

func (s *Store) List(ctx context.Context, shortlistedOnly bool) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+candidateColumns+" FROM candidates WHERE (NOT $1 OR is_shortlisted) ORDER BY candidate_id", shortlistedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) SetShortlisted(ctx context.Context, id string, shortlisted bool) (Candidate, error) {
	return scanCandidate(s.DB.QueryRow(ctx, `
    UPDATE candidates SET is_shortlisted = $2
    WHERE candidate_id = $1 OR id::text = $1
    RETURNING`+candidateColumns, id, shortlisted))
}

func (s *Store) Resume(ctx context.Context, id string) (File, error) {
	var f File
	err := s.DB.QueryRow(ctx, `
    SELECT resume_name, resume_content_type, resume_enc
    FROM candidates
    WHERE candidate_id = $1 OR id::text = $1
  `, id).Scan(&f.Name, &f.ContentType, &f.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return File{}, ErrNotFound
	}
	return f, err
}
