package audit

import "time"

type AuditLogResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actor_id"`
	Action     Action         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func ToAuditLogResponse(l AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt,
	}
}

func ToAuditLogResponses(ls []AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, ToAuditLogResponse(l))
	}
	return out
}
