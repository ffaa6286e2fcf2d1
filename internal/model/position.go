package model

// TickRef wraps the tick index of a position bound.
type TickRef struct {
	TickIdx string `json:"tickIdx"`
}

// PositionToken carries the token fields needed to scale raw amounts.
type PositionToken struct {
	Decimals string `json:"decimals"`
}

// Position is an open liquidity position snapshot from the positions subgraph.
// Positions with zero liquidity are filtered server-side but tolerated here.
type Position struct {
	ID              string        `json:"id"`
	Owner           string        `json:"owner"`
	TickLower       TickRef       `json:"tickLower"`
	TickUpper       TickRef       `json:"tickUpper"`
	Liquidity       string        `json:"liquidity"`
	DepositedToken0 string        `json:"depositedToken0"`
	DepositedToken1 string        `json:"depositedToken1"`
	Token0          PositionToken `json:"token0"`
	Token1          PositionToken `json:"token1"`
}
