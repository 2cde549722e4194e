package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallScore(t *testing.T) {
	overall, err := OverallScore(Scores{Attendance: 90, Quality: 80, Collaboration: 70})
	require.NoError(t, err)
	assert.Equal(t, 80.0, overall)

	overall, err = OverallScore(Scores{Attendance: 100, Quality: 100, Collaboration: 99})
	require.NoError(t, err)
	assert.Equal(t, 99.67, overall)

	_, err = OverallScore(Scores{Attendance: 101})
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = OverallScore(Scores{Quality: -1})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestFeedbackBands(t *testing.T) {
	assert.Equal(t, FeedbackExcellent, Feedback(90))
	assert.Equal(t, FeedbackGood, Feedback(89.99))
	assert.Equal(t, FeedbackGood, Feedback(75))
	assert.Equal(t, FeedbackAverage, Feedback(50))
	assert.Equal(t, FeedbackNeedsWork, Feedback(49.5))
}

func TestValidProgress(t *testing.T) {
	assert.True(t, ValidProgress(0))
	assert.True(t, ValidProgress(100))
	assert.False(t, ValidProgress(-1))
	assert.False(t, ValidProgress(101))
}
