package domain

import (
	"context"
	"encoding/json"

	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

const (
	TopicActivated = "mintpad.activated"
	TopicVoted     = "mintpad.voted"
	TopicClaimed   = "mintpad.claimed"
)

type ActivatedEvent struct {
	UserID string `json:"user_id"`
	Day    int64  `json:"day"`
	Amount uint64 `json:"amount"`
}

type VotedEvent struct {
	UserID      string `json:"user_id"`
	CandidateID string `json:"candidate_id"`
	Day         int64  `json:"day"`
	Points      uint64 `json:"points"`
}

type ClaimedEvent struct {
	UserID              string `json:"user_id"`
	CandidateID         string `json:"candidate_id"`
	EndDay              int64  `json:"end_day"`
	Spent               uint64 `json:"spent"`
	DesiredOutputAmount uint64 `json:"desired_output_amount"`
	DonationBps         uint64 `json:"donation_bps"`
}

// publishEvent emits after the owning transaction commits. Failures are
// logged, never surfaced to the caller.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	err = publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", topic, err)
	}
}
