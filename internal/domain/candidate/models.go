package candidate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("candidate not found")
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidExp     = errors.New("experience must not be negative")
	ErrNoResume       = errors.New("candidate has no resume")
	ErrResumeTooLarge = errors.New("resume exceeds the upload limit")
)

type Candidate struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidateId"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	Experience    float64   `json:"experience"`
	Skills        []string  `json:"skills"`
	Education     string    `json:"education"`
	IsShortlisted bool      `json:"isShortlisted"`
	ResumeName    string    `json:"resumeName,omitempty"`
	HasResume     bool      `json:"hasResume"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NewCandidate struct {
	Name       string
	Position   string
	Experience float64
	Skills     string
	Education  string
	Resume     *File
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func FormatCode(seq int64) string {
	return fmt.Sprintf("C%03d", seq)
}

// SplitSkills turns "Go, SQL,,  Docker" into ["Go", "SQL", "Docker"].
func SplitSkills(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
