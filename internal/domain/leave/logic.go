package leave

import (
	"slices"
	"strings"
	"time"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

func ValidType(leaveType string) bool {
	return slices.Contains(Types, leaveType)
}

// OverallStatus folds both approvals: one rejection rejects the request,
// both approvals approve it.
func OverallStatus(hr, pm string) string {
	switch {
	case hr == StatusRejected || pm == StatusRejected:
		return StatusRejected
	case hr == StatusApproved && pm == StatusApproved:
		return StatusApproved
	}
	return StatusPending
}

// Decide applies one approver's decision to req. A decided field is final
// and a project manager rejection must carry a reason.
func Decide(req Request, approver, status, reason string) (Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return req, ErrInvalidDecision
	}
	reason = strings.TrimSpace(reason)
	if approver == ApproverPM && status == StatusRejected && reason == "" {
		return req, ErrReasonRequired
	}

	var current *string
	switch approver {
	case ApproverHR:
		current = &req.HRApproval
	case ApproverPM:
		current = &req.PMApproval
	default:
		return req, ErrInvalidDecision
	}
	if *current != StatusPending && *current != "" {
		return req, ErrInvalidState
	}
	*current = status
	if status == StatusRejected && reason != "" {
		req.RejectionReason = reason
	}
	req.Status = OverallStatus(req.HRApproval, req.PMApproval)
	return req, nil
}
