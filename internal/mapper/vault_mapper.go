package mapper

import (
	"booknest-be/internal/entity"
	"booknest-be/internal/model"
)

type VaultMapper struct{}

func NewVaultMapper() *VaultMapper {
	return &VaultMapper{}
}

func (m *VaultMapper) ToEntity(v *model.Vault) *entity.Vault {
	if v == nil {
		return nil
	}
	return &entity.Vault{
		Id:        v.Id,
		Name:      v.Name,
		CreatedBy: v.CreatedBy,
		CreatedAt: v.CreatedAt,
	}
}

func (m *VaultMapper) ToModel(v *entity.Vault) *model.Vault {
	if v == nil {
		return nil
	}
	return &model.Vault{
		Id:        v.Id,
		Name:      v.Name,
		CreatedBy: v.CreatedBy,
		CreatedAt: v.CreatedAt,
	}
}

func (m *VaultMapper) MemberToEntity(mm *model.Member) *entity.Member {
	if mm == nil {
		return nil
	}
	return &entity.Member{
		Id:       mm.Id,
		VaultId:  mm.VaultId,
		Name:     mm.Name,
		Role:     entity.MemberRole(mm.Role),
		JoinedAt: mm.JoinedAt,
	}
}

func (m *VaultMapper) MemberToModel(e *entity.Member) *model.Member {
	if e == nil {
		return nil
	}
	return &model.Member{
		Id:       e.Id,
		VaultId:  e.VaultId,
		Name:     e.Name,
		Role:     string(e.Role),
		JoinedAt: e.JoinedAt,
	}
}

func (m *VaultMapper) MembersToEntities(models []*model.Member) []*entity.Member {
	entities := make([]*entity.Member, len(models))
	for i, mm := range models {
		entities[i] = m.MemberToEntity(mm)
	}
	return entities
}

func (m *VaultMapper) IndexToEntity(mi *model.MemberIndex) *entity.MemberIndex {
	if mi == nil {
		return nil
	}
	return &entity.MemberIndex{
		MemberId:  mi.MemberId,
		VaultId:   mi.VaultId,
		UpdatedAt: mi.UpdatedAt,
	}
}

func (m *VaultMapper) IndexToModel(e *entity.MemberIndex) *model.MemberIndex {
	if e == nil {
		return nil
	}
	return &model.MemberIndex{
		MemberId:  e.MemberId,
		VaultId:   e.VaultId,
		UpdatedAt: e.UpdatedAt,
	}
}
