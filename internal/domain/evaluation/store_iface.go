package evaluation

import "context"

type StoreAPI interface {
	CandidateExists(ctx context.Context, candidateID string) (bool, error)
	Create(ctx context.Context, e Evaluation) (Evaluation, error)
	Get(ctx context.Context, id string) (Evaluation, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Evaluation, error)
	SetFinalDecision(ctx context.Context, id, decision string) (bool, error)
}
