package model

// Token is a pool token as returned by the pools subgraph.
// Numeric fields arrive as JSON strings and are parsed on use.
type Token struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
}

// Pool is a concentrated-liquidity pool snapshot. The same shape is used for
// current reads and for reads pinned to a historical block, where only the
// fee counters and token0Price are populated.
type Pool struct {
	ID                  string `json:"id"`
	Token0              Token  `json:"token0"`
	Token1              Token  `json:"token1"`
	Tick                string `json:"tick"`
	Liquidity           string `json:"liquidity"`
	FeesToken0          string `json:"feesToken0"`
	FeesToken1          string `json:"feesToken1"`
	Token0Price         string `json:"token0Price"`
	TotalValueLockedUSD string `json:"totalValueLockedUSD"`
	VolumeUSD           string `json:"volumeUSD"`
}

// Reserves are the on-chain token balances of a pool, cross-checked against
// the subgraph TVL. Values are in human units.
type Reserves struct {
	Reserve0 string `json:"reserve0"`
	Reserve1 string `json:"reserve1"`
}
