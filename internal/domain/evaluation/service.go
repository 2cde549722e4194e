package evaluation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrms/internal/platform/pdfdoc"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, logger: zap.L().Named("evaluation.service")}
}

func (s *Service) Create(ctx context.Context, input NewEvaluation) (Evaluation, error) {
	input.CandidateID = strings.TrimSpace(input.CandidateID)
	if err := input.Criteria.Validate(); err != nil {
		return Evaluation{}, err
	}
	if input.FinalDecision != "" && !ValidDecision(input.FinalDecision) {
		return Evaluation{}, ErrInvalidDecision
	}
	exists, err := s.store.CandidateExists(ctx, input.CandidateID)
	if err != nil {
		return Evaluation{}, err
	}
	if !exists {
		return Evaluation{}, ErrCandidateNotFound
	}

	e, err := s.store.Create(ctx, Evaluation{
		CandidateID:   input.CandidateID,
		EvaluatorID:   input.EvaluatorID,
		Criteria:      input.Criteria,
		Comments:      strings.TrimSpace(input.Comments),
		FinalDecision: input.FinalDecision,
	})
	if err != nil {
		return Evaluation{}, err
	}
	s.logger.Info("evaluation recorded", zap.String("candidateId", e.CandidateID), zap.Int("total", e.Total))
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (Evaluation, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByCandidate(ctx context.Context, candidateID string) ([]Evaluation, error) {
	return s.store.ListByCandidate(ctx, candidateID)
}

func (s *Service) SetFinalDecision(ctx context.Context, id, decision string) (Evaluation, error) {
	if !ValidDecision(decision) {
		return Evaluation{}, ErrInvalidDecision
	}
	ok, err := s.store.SetFinalDecision(ctx, id, decision)
	if err != nil {
		return Evaluation{}, err
	}
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) WriteReport(w io.Writer, e Evaluation) error {
	criteria := e.Criteria.list()
	scores := make([]pdfdoc.Field, 0, len(criteria)+1)
	for _, item := range criteria {
		scores = append(scores, pdfdoc.Field{Label: item.Label, Value: fmt.Sprintf("%d / %d", item.Score, MaxCriterionScore)})
	}
	scores = append(scores, pdfdoc.Field{Label: "Total", Value: fmt.Sprintf("%d / %d", e.Criteria.Total(), MaxCriterionScore*len(criteria))})

	decision := e.FinalDecision
	if decision == "" {
		decision = "Pending"
	}
	comments := e.Comments
	if comments == "" {
		comments = "N/A"
	}
	evaluator := e.EvaluatorID
	if evaluator == "" {
		evaluator = "-"
	}
	return pdfdoc.Render(w, pdfdoc.Document{
		Title:    "Candidate Evaluation",
		Subtitle: fmt.Sprintf("%s (%s) - %s", e.CandidateName, e.CandidateID, e.Position),
		Sections: []pdfdoc.Section{
			{Heading: "Scores", Fields: scores},
			{Heading: "Outcome", Fields: []pdfdoc.Field{
				{Label: "Comments", Value: comments},
				{Label: "Final decision", Value: decision},
				{Label: "Evaluated on", Value: e.CreatedAt.Format(time.DateOnly)},
				{Label: "Evaluator", Value: evaluator},
			}},
		},
	})
}
