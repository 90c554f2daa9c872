package audit

import "context"

type AuditService interface {
	Record(ctx context.Context, req RecordRequest) (Entry, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)
}
