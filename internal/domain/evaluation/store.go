package evaluation

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

const evaluationColumns = `
    ev.id, ev.candidate_id, c.name, c.position, ev.evaluator_id,
    ev.technical_skills, ev.problem_solving, ev.behavioral_fit, ev.cultural_fit, ev.communication_skills,
    ev.adaptability, ev.situational_judgment, ev.motivation_interest, ev.overall_impression,
    ev.comments, COALESCE(ev.final_decision, ''), ev.created_at, ev.updated_at`

func scanEvaluation(row pgx.Row) (Evaluation, error) {
	var e Evaluation
	err := row.Scan(&e.ID, &e.CandidateID, &e.CandidateName, &e.Position, &e.EvaluatorID,
		&e.TechnicalSkills, &e.ProblemSolving, &e.BehavioralFit, &e.CulturalFit, &e.CommunicationSkills,
		&e.Adaptability, &e.SituationalJudgment, &e.MotivationInterest, &e.OverallImpression,
		&e.Comments, &e.FinalDecision, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	e.Total = e.Criteria.Total()
	return e, err
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func (s *Store) CandidateExists(ctx context.Context, candidateID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM candidates WHERE candidate_id = $1)", candidateID).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, e Evaluation) (Evaluation, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluations (candidate_id, evaluator_id, technical_skills, problem_solving, behavioral_fit, cultural_fit,
                             communication_skills, adaptability, situational_judgment, motivation_interest,
                             overall_impression, comments, final_decision)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `, e.CandidateID, e.EvaluatorID, e.TechnicalSkills, e.ProblemSolving, e.BehavioralFit, e.CulturalFit,
		e.CommunicationSkills, e.Adaptability, e.SituationalJudgment, e.MotivationInterest,
		e.OverallImpression, e.Comments, nullable(e.FinalDecision)).Scan(&id); err != nil {
		return Evaluation{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (Evaluation, error) {
	return scanEvaluation(s.DB.QueryRow(ctx, `
    SELECT`+evaluationColumns+`
    FROM evaluations ev
    JOIN candidates c ON c.candidate_id = ev.candidate_id
    WHERE ev.id::text = $1
  `, id))
}

func (s *Store) ListByCandidate(ctx context.Context, candidateID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+evaluationColumns+`
    FROM evaluations ev
    JOIN candidates c ON c.candidate_id = ev.candidate_id
    WHERE ev.candidate_id = $1
    ORDER BY ev.created_at DESC
  `, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) SetFinalDecision(ctx context.Context, id, decision string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "UPDATE evaluations SET final_decision = $2, updated_at = now() WHERE id::text = $1", id, decision)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
