package audit

import "context"

// AuditRepository is insert-only.
type AuditRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	// List returns one page of entries matching filter and the total match count.
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}
