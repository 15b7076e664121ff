package domain

// QuotaUnlimited is the sentinel used for premium accounts in
// QuotaStatus.MaxLinks and QuotaStatus.RemainingLinks.
const QuotaUnlimited = -1

// QuotaStatus is the derived publishing allowance for one user.
// It is never persisted; every check recomputes it from the store.
type QuotaStatus struct {
	IsLimitReached bool
	LinksPublished int
	MaxLinks       int
	RemainingLinks int
}

// Unlimited reports whether the status belongs to a premium account.
func (q QuotaStatus) Unlimited() bool {
	return q.MaxLinks == QuotaUnlimited
}
