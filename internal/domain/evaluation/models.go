package evaluation

import (
	"errors"
	"time"
)

const (
	DecisionSelected = "Selected"
	DecisionRejected = "Rejected"
	DecisionOnHold   = "On Hold"

	MaxCriterionScore = 10
)

var Decisions = []string{DecisionSelected, DecisionRejected, DecisionOnHold}

var (
	ErrNotFound          = errors.New("evaluation not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidScore      = errors.New("each criterion must be scored between 0 and 10")
	ErrInvalidDecision   = errors.New("final decision must be Selected, Rejected or On Hold")
)

// Criteria are the nine interview scores, each 0-10.
type Criteria struct {
	TechnicalSkills     int `json:"technicalSkills"`
	ProblemSolving      int `json:"problemSolving"`
	BehavioralFit       int `json:"behavioralFit"`
	CulturalFit         int `json:"culturalFit"`
	CommunicationSkills int `json:"communicationSkills"`
	Adaptability        int `json:"adaptability"`
	SituationalJudgment int `json:"situationalJudgment"`
	MotivationInterest  int `json:"motivationInterest"`
	OverallImpression   int `json:"overallImpression"`
}

type Evaluation struct {
	ID            string `json:"id"`
	CandidateID   string `json:"candidateId"`
	CandidateName string `json:"candidateName,omitempty"`
	Position      string `json:"position,omitempty"`
	EvaluatorID   string `json:"evaluatorId"`
	Criteria
	Comments      string    `json:"comments"`
	FinalDecision string    `json:"finalDecision,omitempty"`
	Total         int       `json:"totalScore"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type NewEvaluation struct {
	CandidateID   string
	EvaluatorID   string
	Criteria      Criteria
	Comments      string
	FinalDecision string
}
