package model

import "math"

// APR provenance tags.
const (
	APRSourceFees   = "fees"
	APRSourceOracle = "oracle"
)

// YieldRecord is the normalized per-pool output of one refresh cycle.
// AprBase/ApyBase always come from the fee-over-TVL math; the reward fields
// are present only when the external oracle knows the pool.
type YieldRecord struct {
	Pool             string    `json:"pool"`
	Chain            string    `json:"chain"`
	Project          string    `json:"project"`
	Symbol           string    `json:"symbol"`
	TvlUsd           float64   `json:"tvlUsd"`
	AprBase          float64   `json:"aprBase"`
	ApyBase          float64   `json:"apyBase"`
	AprReward        *float64  `json:"aprReward,omitempty"`
	ApyReward        *float64  `json:"apyReward,omitempty"`
	AprSource        string    `json:"aprSource"`
	UnderlyingTokens []string  `json:"underlyingTokens"`
	URL              string    `json:"url"`
	Reserves         *Reserves `json:"reserves,omitempty"`
}

// Valid reports whether the record carries every required field.
func (r YieldRecord) Valid() bool {
	return r.Pool != "" &&
		r.Chain != "" &&
		r.Project != "" &&
		r.Symbol != "" &&
		len(r.UnderlyingTokens) > 0 &&
		r.URL != ""
}

// KeepFinite reports whether all numeric fields are finite.
func (r YieldRecord) KeepFinite() bool {
	values := []float64{r.TvlUsd, r.AprBase, r.ApyBase}
	if r.AprReward != nil {
		values = append(values, *r.AprReward)
	}
	if r.ApyReward != nil {
		values = append(values, *r.ApyReward)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
