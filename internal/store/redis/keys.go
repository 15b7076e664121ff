package redis

const (
	// KeyPrefixLink is the prefix for published link keys
	KeyPrefixLink = "linkforge:link:"
	// KeyPrefixCampaignMetrics is the prefix for campaign metrics keys
	KeyPrefixCampaignMetrics = "linkforge:campaign:metrics:"
	// KeyPrefixCampaignActivity is the prefix for campaign activity lists
	KeyPrefixCampaignActivity = "linkforge:campaign:activity:"
	// KeyPrefixUserLinks is the prefix for per-user link timelines
	KeyPrefixUserLinks = "linkforge:user:links:"
	// KeyPrefixUserPremium is the prefix for user premium flags
	KeyPrefixUserPremium = "linkforge:user:premium:"
)

// LinkKey returns the Redis key for a published link by ID
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// CampaignMetricsKey returns the Redis key for a campaign's metrics
func CampaignMetricsKey(campaignID string) string {
	return KeyPrefixCampaignMetrics + campaignID
}

// CampaignActivityKey returns the Redis key for a campaign's activity list
func CampaignActivityKey(campaignID string) string {
	return KeyPrefixCampaignActivity + campaignID
}

// UserLinksKey returns the Redis key for a user's link timeline
func UserLinksKey(userID string) string {
	return KeyPrefixUserLinks + userID
}

// UserPremiumKey returns the Redis key for a user's premium flag
func UserPremiumKey(userID string) string {
	return KeyPrefixUserPremium + userID
}
