package model

type VoteRequest struct {
	CandidateID string `json:"candidate_id"`
	Points      uint64 `json:"points"`
}

type VoteResponse struct {
	Day       int64  `json:"day"`
	Points    uint64 `json:"points"`
	Remaining uint64 `json:"remaining"`
}

type CandidateVote struct {
	Day         int64  `json:"day"`
	CandidateID string `json:"candidate_id"`
	Points      uint64 `json:"points"`
}

type GetMyVotesRequest struct {
	Day int64 `json:"day" form:"day"`
}

type GetMyVotesResponse struct {
	Votes []CandidateVote `json:"votes"`
}
