package device

import "time"

type CreateBlacklistRequest struct {
	Fingerprint  string  `json:"fingerprint" binding:"required"`
	IsPermanent  bool    `json:"is_permanent"`
	BlockedUntil *string `json:"blocked_until"` // RFC3339; wajib jika tidak permanen
	Reason       *string `json:"reason"`
}

type BlacklistResponse struct {
	ID           string  `json:"id"`
	Fingerprint  string  `json:"fingerprint"`
	IsPermanent  bool    `json:"is_permanent"`
	BlockedUntil *string `json:"blocked_until,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func mapToResponse(e BlacklistEntry) BlacklistResponse {
	resp := BlacklistResponse{
		ID:          e.ID.String(),
		Fingerprint: e.Fingerprint,
		IsPermanent: e.IsPermanent,
		Reason:      e.Reason,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.BlockedUntil != nil {
		v := e.BlockedUntil.Format(time.RFC3339)
		resp.BlockedUntil = &v
	}
	return resp
}
