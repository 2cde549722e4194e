package notifications

const (
	TypeLeaveSubmitted = "leave_submitted"
	TypeLeaveDecided   = "leave_decided"
	TypeLoanSubmitted  = "loan_submitted"
	TypeLoanDecided    = "loan_decided"
	TypeExitSubmitted  = "exit_submitted"
	TypeExitDecided    = "exit_decided"
	TypeGoalAssigned   = "goal_assigned"
	TypeGoalScored     = "goal_scored"
)
