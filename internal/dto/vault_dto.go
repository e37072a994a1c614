package dto

import "github.com/google/uuid"

type EnsureVaultRequest struct {
	// JoinVaultId carries the id from an invite deep link (?join=...).
	// Optional: absent means bootstrap-or-reuse.
	JoinVaultId string `json:"join_vault_id"`
}

type EnsureVaultResponse struct {
	VaultId    uuid.UUID `json:"vault_id"`
	VaultName  string    `json:"vault_name"`
	Role       string    `json:"role"`
	InviteLink string    `json:"invite_link"`
	// Joined is false when the supplied invite was invalid and a fresh
	// vault was created instead.
	Joined bool `json:"joined"`
}
