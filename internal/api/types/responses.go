package types

import "github.com/techstock/engine/internal/query"

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID  string `json:"request_id,omitempty"`
	Page       int    `json:"page,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages,omitempty"`
}

// MetaFromPagination converts the query layer's pagination echo to the
// response envelope.
func MetaFromPagination(p query.Pagination) *Meta {
	return &Meta{Page: p.Page, PageSize: p.Size, Total: p.Total, TotalPages: p.TotalPages}
}

type StatsResponse struct {
	TotalResources      int64 `json:"total_resources"`
	TotalSubscriptions  int64 `json:"total_subscriptions"`
	TotalResourceGroups int64 `json:"total_resource_groups"`
	TotalApplications   int64 `json:"total_applications"`
}
