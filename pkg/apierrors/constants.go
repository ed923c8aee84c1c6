package apierrors

const (
	MsgFailListTask         = "errorListTask"
	MsgFailGetTask          = "failGetTask"
	MsgInvalidTaskPayload   = "invalidTaskPayload"
	MsgTaskNotFound         = "taskNotFound"
	MsgFailCreateTask       = "failCreateTask"
	MsgFailUpdateTask       = "failUpdateTask"
	MsgFailDeleteTask       = "failDeleteTask"
	MsgInvalidTimerAction   = "invalidTimerTransition"
	MsgInvalidQuickInput    = "invalidQuickInput"
	MsgFailImportCommits    = "failImportCommits"
	MsgCommitSourceDisabled = "commitSourceDisabled"
	MsgFailBriefing         = "failBriefing"
	MsgInvalidReviewDate    = "invalidReviewDate"
	MsgReviewNotFound       = "reviewNotFound"
	MsgFailListReviews      = "failListReviews"
	MsgFailGenerateReview   = "failGenerateReview"
	MsgInvalidQuery         = "invalidQuery"
)
