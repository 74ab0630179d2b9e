package kafka

import "time"

// ReviewEvent is the payload shared by all review lifecycle events.
type ReviewEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ReviewID  uint      `json:"review_id"`
	FoodID    uint      `json:"food_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating,omitempty"`
	Liked     bool      `json:"liked,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeReviewCreated = "review.created"
	EventTypeReviewDeleted = "review.deleted"
	EventTypeReviewLiked   = "review.liked"
)

// Kafka topics
const (
	TopicReviewCreated = "review-created"
	TopicReviewDeleted = "review-deleted"
	TopicReviewLiked   = "review-liked"
)

// TopicForEventType maps an event type to the topic it is published on.
func TopicForEventType(eventType string) string {
	switch eventType {
	case EventTypeReviewCreated:
		return TopicReviewCreated
	case EventTypeReviewDeleted:
		return TopicReviewDeleted
	case EventTypeReviewLiked:
		return TopicReviewLiked
	default:
		return ""
	}
}
