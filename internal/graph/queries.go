package graph

import "fmt"

func poolsQuery(first int) string {
	return fmt.Sprintf(`{
  pools(first: %d, orderBy: totalValueLockedUSD, orderDirection: desc) {
    id
    volumeUSD
    token0 { id symbol decimals }
    token1 { id symbol decimals }
    totalValueLockedUSD
    feesToken0
    feesToken1
    token0Price
    tick
    liquidity
  }
}`, first)
}

func poolsAtBlockQuery(block uint64, first int) string {
	return fmt.Sprintf(`{
  pools(block: { number: %d }, first: %d, orderBy: id) {
    id
    feesToken0
    feesToken1
    token0Price
    tick
    liquidity
  }
}`, block, first)
}

func blocksQuery(newerThan, olderThan int64) string {
	return fmt.Sprintf(`{
  blocks(
    first: 1
    orderBy: timestamp
    orderDirection: desc
    where: { timestamp_gt: %d, timestamp_lt: %d }
  ) {
    number
  }
}`, newerThan, olderThan)
}

func positionsQuery(poolID string, first, skip int) string {
	return fmt.Sprintf(`{
  positions(first: %d, skip: %d, where: { liquidity_gt: 0, pool: "%s" }) {
    id
    owner
    tickLower { tickIdx }
    tickUpper { tickIdx }
    liquidity
    depositedToken0
    depositedToken1
    token0 { decimals }
    token1 { decimals }
  }
}`, first, skip, poolID)
}
