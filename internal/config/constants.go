package config

import "time"

const (
	// Configuration file paths
	ConfigPathRewardTables = "configs/reward_tables.json"
	ConfigPathItemTypes    = "configs/item_types.json"
	ConfigPathCampaigns    = "configs/campaigns.json"

	// DefaultMaxExpandDepth bounds recursive composite-reward expansion.
	// A legitimate table chain rarely nests more than two or three levels.
	DefaultMaxExpandDepth = 8

	// DefaultDeadLetterPath is where undeliverable events are appended.
	DefaultDeadLetterPath = "logs/dead_letter.jsonl"

	// DefaultLogDir is where session log files are written.
	DefaultLogDir = "logs"

	// DefaultEventMaxRetries is the publish attempt budget per event.
	DefaultEventMaxRetries = 5

	// DefaultRewardLogRetentionDays is how long audit rows are kept.
	DefaultRewardLogRetentionDays = 90
)

// DefaultEventRetryDelay is the base delay between publish retries.
const DefaultEventRetryDelay = 2 * time.Second

// DefaultCleanupInterval is how often the audit cleanup job runs.
const DefaultCleanupInterval = 6 * time.Hour
