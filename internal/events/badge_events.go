package events

// Badge event types
const (
	TypeBadgeAwarded = "badge.awarded"
)

// BadgeAwardedEvent fires once per newly awarded badge
type BadgeAwardedEvent struct {
	BaseEvent
	BadgeID   string `json:"badge_id"`
	BadgeName string `json:"badge_name"`
	Tier      string `json:"tier"`
	Category  string `json:"category"`
}

// NewBadgeAwardedEvent creates a badge awarded event
func NewBadgeAwardedEvent(userID int64, badgeID, name, tier, category string) *BadgeAwardedEvent {
	return &BadgeAwardedEvent{
		BaseEvent: newBaseEvent(TypeBadgeAwarded, userID),
		BadgeID:   badgeID,
		BadgeName: name,
		Tier:      tier,
		Category:  category,
	}
}
