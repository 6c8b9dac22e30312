package types

// QueryMsg is the externally tagged union of all queries, e.g. {"pool":{"pool_id":1}}.
type QueryMsg struct {
	Config   *QueryConfigRequest   `json:"config,omitempty"`
	Pool     *QueryPoolRequest     `json:"pool,omitempty"`
	AllPools *QueryAllPoolsRequest `json:"all_pools,omitempty"`
}

// QueryConfigRequest returns the contract's config.
type QueryConfigRequest struct{}

// QueryPoolRequest returns a single registered pool.
type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryAllPoolsRequest returns every registered pool, ascending by id.
type QueryAllPoolsRequest struct{}

// ValidateBasic checks exactly one variant is set.
func (q QueryMsg) ValidateBasic() error {
	set := 0
	if q.Config != nil {
		set++
	}
	if q.Pool != nil {
		set++
	}
	if q.AllPools != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidRequest.Wrapf("query msg must set exactly one variant, got %d", set)
	}
	return nil
}
