package candidate

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Sealer encrypts documents at rest.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type Service struct {
	store  StoreAPI
	sealer Sealer
	logger *zap.Logger
}

func NewService(store StoreAPI, sealer Sealer) *Service {
	return &Service{store: store, sealer: sealer, logger: zap.L().Named("candidate.service")}
}

func (s *Service) Create(ctx context.Context, input NewCandidate) (Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Candidate{}, ErrNameRequired
	}
	if input.Experience < 0 {
		return Candidate{}, ErrInvalidExp
	}

	var resume *File
	if input.Resume != nil && len(input.Resume.Data) > 0 {
		sealed, err := s.sealer.Seal(input.Resume.Data)
		if err != nil {
			return Candidate{}, err
		}
		resume = &File{Name: input.Resume.Name, ContentType: input.Resume.ContentType, Data: sealed}
	}

	c, err := s.store.Create(ctx, Candidate{
		Name:       name,
		Position:   strings.TrimSpace(input.Position),
		Experience: input.Experience,
		Skills:     SplitSkills(input.Skills),
		Education:  strings.TrimSpace(input.Education),
	}, resume)
	if err != nil {
		return Candidate{}, err
	}
	s.logger.Info("candidate created", zap.String("candidateId", c.CandidateID), zap.Bool("resume", c.HasResume))
	return c, nil
}

func (s *Service) List(ctx context.Context, shortlistedOnly bool) ([]Candidate, error) {
	return s.store.List(ctx, shortlistedOnly)
}

func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	return s.store.Get(ctx, id)
}

// SetShortlist sets the flag explicitly, or flips it when value is nil.
func (s *Service) SetShortlist(ctx context.Context, id string, value *bool) (Candidate, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	next := !current.IsShortlisted
	if value != nil {
		next = *value
	}
	return s.store.SetShortlisted(ctx, current.CandidateID, next)
}

func (s *Service) Resume(ctx context.Context, id string) (File, error) {
	f, err := s.store.Resume(ctx, id)
	if err != nil {
		return File{}, err
	}
	if len(f.Data) == 0 {
		return File{}, ErrNoResume
	}
	plain, err := s.sealer.Open(f.Data)
	if err != nil {
		return File{}, err
	}
	f.Data = plain
	if f.ContentType == "" {
		f.ContentType = "application/octet-stream"
	}
	return f, nil
}
