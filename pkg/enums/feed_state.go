package enums

// FeedState tracks the admin order feed subscription lifecycle.
type FeedState string

const (
	FeedUnsubscribed FeedState = "unsubscribed"
	FeedSubscribing  FeedState = "subscribing"
	FeedLive         FeedState = "live"
	FeedError        FeedState = "error"
)

// IsValid reports whether the value matches the canonical feed state enum.
func (f FeedState) IsValid() bool {
	switch f {
	case FeedUnsubscribed, FeedSubscribing, FeedLive, FeedError:
		return true
	default:
		return false
	}
}
