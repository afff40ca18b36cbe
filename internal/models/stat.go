package models

// StatType identifies a player box-score statistic
type StatType string

const (
	StatPoints   StatType = "points"
	StatRebounds StatType = "rebounds"
	StatAssists  StatType = "assists"
	StatThrees   StatType = "threes"
	StatSteals   StatType = "steals"
	StatBlocks   StatType = "blocks"
)

// BlendMode controls how multiple seasons of stats are reduced to one row
type BlendMode string

const (
	BlendLatest BlendMode = "latest"
	BlendMean   BlendMode = "mean"
)

// BetDirection represents the side of an over/under prop bet
type BetDirection string

const (
	DirectionOver  BetDirection = "OVER"
	DirectionUnder BetDirection = "UNDER"
)
