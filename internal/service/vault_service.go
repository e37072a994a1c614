package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booknest-be/internal/dto"
	"booknest-be/internal/entity"
	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/repository/specification"
	"booknest-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultVaultName = "Our BookNest"

type IVaultService interface {
	// EnsureVault resolves the member to a vault, creating or joining one as
	// needed. Every authenticated session calls this before touching books.
	EnsureVault(ctx context.Context, memberId uuid.UUID, displayName string, joinVaultId string) (*dto.EnsureVaultResponse, error)
	InviteLink(vaultId uuid.UUID) string
}

type vaultService struct {
	uowFactory unitofwork.RepositoryFactory
	appBaseUrl string
	log        logger.ILogger
}

func NewVaultService(uowFactory unitofwork.RepositoryFactory, appBaseUrl string, log logger.ILogger) IVaultService {
	return &vaultService{
		uowFactory: uowFactory,
		appBaseUrl: appBaseUrl,
		log:        log,
	}
}

func (s *vaultService) EnsureVault(ctx context.Context, memberId uuid.UUID, displayName string, joinVaultId string) (*dto.EnsureVaultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Fast path: the member already belongs to a vault.
	index, err := uow.MemberIndexRepository().Get(ctx, memberId)
	if err != nil {
		return nil, err
	}
	if index != nil {
		vault, err := uow.VaultRepository().FindOne(ctx, specification.ByID{ID: index.VaultId})
		if err != nil {
			return nil, err
		}
		if vault != nil {
			member, err := uow.MemberRepository().FindOne(ctx,
				specification.ByVaultID{VaultID: vault.Id},
				specification.ByID{ID: memberId},
			)
			if err != nil {
				return nil, err
			}
			role := entity.MemberRoleChild
			if member != nil {
				role = member.Role
			}
			return s.response(vault, role, true), nil
		}
		// Stale index pointing at a deleted vault. Fall through and rebuild.
		s.log.Warn("vault", "member index references missing vault", map[string]interface{}{
			"member_id": memberId,
			"vault_id":  index.VaultId,
		})
	}

	if joinVaultId != "" {
		resp, err := s.join(ctx, memberId, displayName, joinVaultId)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, ErrInviteInvalid) {
			return nil, err
		}
		// Invalid invites degrade to a fresh vault so the member is never
		// left stranded without one.
		s.log.Warn("vault", "invite invalid, creating fresh vault", map[string]interface{}{
			"member_id":     memberId,
			"join_vault_id": joinVaultId,
		})
	}

	return s.create(ctx, memberId, displayName)
}

func (s *vaultService) join(ctx context.Context, memberId uuid.UUID, displayName, joinVaultId string) (*dto.EnsureVaultResponse, error) {
	vaultId, err := uuid.Parse(joinVaultId)
	if err != nil {
		return nil, ErrInviteInvalid
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	vault, err := uow.VaultRepository().FindOne(ctx, specification.ByID{ID: vaultId})
	if err != nil {
		return nil, err
	}
	if vault == nil {
		return nil, ErrInviteInvalid
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	member := &entity.Member{
		Id:       memberId,
		VaultId:  vault.Id,
		Name:     displayName,
		Role:     entity.MemberRoleChild,
		JoinedAt: time.Now(),
	}
	if err := uow.MemberRepository().Save(ctx, member); err != nil {
		return nil, err
	}
	if err := uow.MemberIndexRepository().Save(ctx, &entity.MemberIndex{
		MemberId:  memberId,
		VaultId:   vault.Id,
		UpdatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("vault", "member joined vault", map[string]interface{}{
		"member_id": memberId,
		"vault_id":  vault.Id,
	})
	return s.response(vault, entity.MemberRoleChild, true), nil
}

func (s *vaultService) create(ctx context.Context, memberId uuid.UUID, displayName string) (*dto.EnsureVaultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	vault := &entity.Vault{
		Id:        uuid.New(),
		Name:      defaultVaultName,
		CreatedBy: memberId,
		CreatedAt: time.Now(),
	}
	if err := uow.VaultRepository().Create(ctx, vault); err != nil {
		return nil, err
	}
	if err := uow.MemberRepository().Save(ctx, &entity.Member{
		Id:       memberId,
		VaultId:  vault.Id,
		Name:     displayName,
		Role:     entity.MemberRoleParent,
		JoinedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.MemberIndexRepository().Save(ctx, &entity.MemberIndex{
		MemberId:  memberId,
		VaultId:   vault.Id,
		UpdatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("vault", "vault created", map[string]interface{}{
		"member_id": memberId,
		"vault_id":  vault.Id,
	})
	resp := s.response(vault, entity.MemberRoleParent, false)
	return resp, nil
}

func (s *vaultService) response(vault *entity.Vault, role entity.MemberRole, joined bool) *dto.EnsureVaultResponse {
	return &dto.EnsureVaultResponse{
		VaultId:    vault.Id,
		VaultName:  vault.Name,
		Role:       string(role),
		InviteLink: s.InviteLink(vault.Id),
		Joined:     joined,
	}
}

func (s *vaultService) InviteLink(vaultId uuid.UUID) string {
	return fmt.Sprintf("%s/?join=%s", s.appBaseUrl, vaultId)
}
