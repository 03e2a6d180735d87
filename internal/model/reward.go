package model

type GetClaimableRequest struct {
	CandidateID string `json:"candidate_id" form:"candidate_id"`
}

type GetClaimableResponse struct {
	CandidateID     string `json:"candidate_id"`
	ClaimableAmount uint64 `json:"claimable_amount"`
	EndDay          int64  `json:"end_day"`
}

type GetClaimableListRequest struct {
	CandidateIDs []string `json:"candidate_ids" form:"candidate_ids"`
}

type ClaimableItem struct {
	CandidateID     string `json:"candidate_id"`
	ClaimableAmount uint64 `json:"claimable_amount"`
	EndDay          int64  `json:"end_day"`
}

type GetClaimableListResponse struct {
	Claimables []ClaimableItem `json:"claimables"`
}

type ClaimRequest struct {
	CandidateID         string `json:"candidate_id"`
	DesiredOutputAmount uint64 `json:"desired_output_amount"`
	DonationBps         uint64 `json:"donation_bps"`
}

type ClaimResponse struct {
	CandidateID         string `json:"candidate_id"`
	EndDay              int64  `json:"end_day"`
	ClaimableAmount     uint64 `json:"claimable_amount"`
	ActualSpent         uint64 `json:"actual_spent"`
	DesiredOutputAmount uint64 `json:"desired_output_amount"`
	DonationBps         uint64 `json:"donation_bps"`
}
