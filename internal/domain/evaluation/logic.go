package evaluation

import "slices"

type criterion struct {
	Label string
	Score int
}

func (c Criteria) list() []criterion {
	return []criterion{
		{"Technical Skills", c.TechnicalSkills},
		{"Problem Solving", c.ProblemSolving},
		{"Behavioral Fit", c.BehavioralFit},
		{"Cultural Fit", c.CulturalFit},
		{"Communication Skills", c.CommunicationSkills},
		{"Adaptability", c.Adaptability},
		{"Situational Judgment", c.SituationalJudgment},
		{"Motivation & Interest", c.MotivationInterest},
		{"Overall Impression", c.OverallImpression},
	}
}

func (c Criteria) Validate() error {
	for _, item := range c.list() {
		if item.Score < 0 || item.Score > MaxCriterionScore {
			return ErrInvalidScore
		}
	}
	return nil
}

func (c Criteria) Total() int {
	total := 0
	for _, item := range c.list() {
		total += item.Score
	}
	return total
}

func ValidDecision(decision string) bool {
	return slices.Contains(Decisions, decision)
}
