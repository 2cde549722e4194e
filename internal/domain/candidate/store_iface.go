package candidate

import "context"

type StoreAPI interface {
	Create(ctx context.Context, c Candidate, resume *File) (Candidate, error)
	Get(ctx context.Context, id string) (Candidate, error)
	List(ctx context.Context, shortlistedOnly bool) ([]Candidate, error)
	SetShortlisted(ctx context.Context, id string, shortlisted bool) (Candidate, error)
	Resume(ctx context.Context, id string) (File, error)
}
