package room

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"

	"github.com/syncroom/server/internal/repository/connection"
)

// kick close code, matched by the extension client
const kickCloseCode = 4001

type KickMemberParams struct {
	KickedMemberID string
	SenderID       string
	RoomID         string
}

// KickMember disconnects a member on a controller's command. A moderator may
// not kick the owner or another moderator; removing a moderator is the owner's
// exclusive right.
func (s *service) KickMember(ctx context.Context, params *KickMemberParams) error {
	if params.KickedMemberID == params.SenderID {
		return fmt.Errorf("%w: cannot kick yourself", ErrValidationError)
	}

	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, senderRole, err := s.getRoomAndRole(ctx, params.RoomID, params.SenderID)
	if err != nil {
		return err
	}
	if senderRole < RoleModerator {
		return ErrPermissionDenied
	}

	kickedRole := resolveRole(&r, params.KickedMemberID)
	if kickedRole == RoleOwner {
		return ErrPermissionDenied
	}
	if kickedRole == RoleModerator && senderRole != RoleOwner {
		return ErrPermissionDenied
	}

	if kickedRole == RoleModerator {
		r.ModeratorIDs = slices.DeleteFunc(r.ModeratorIDs, func(id string) bool { return id == params.KickedMemberID })
		if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
			return fmt.Errorf("failed to set room: %w", err)
		}
		s.broadcastModeratorsUpdated(ctx, params.RoomID, r.ModeratorIDs)
	}

	conn, err := s.connRepo.RemoveByMemberID(params.KickedMemberID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.sendToConn(ctx, conn, &Output{Type: "KICKED"})
	s.sender.Close(conn, kickCloseCode)

	s.broadcast(ctx, params.RoomID, &Output{
		Type: "MEMBER_KICKED",
		Payload: map[string]any{
			"member_id": params.KickedMemberID,
		},
	})

	return nil
}

type PromoteMemberParams struct {
	PromotedMemberID string
	SenderID         string
	RoomID           string
}

// PromoteMember grants moderator rights. Owner only. The owner and existing
// moderators cannot be promoted, which keeps the owner out of the moderator
// set.
func (s *service) PromoteMember(ctx context.Context, params *PromoteMemberParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.checkOwner(ctx, params.RoomID, params.SenderID)
	if err != nil {
		return err
	}

	if resolveRole(&r, params.PromotedMemberID) != RoleMember {
		return fmt.Errorf("%w: member is already privileged", ErrValidationError)
	}

	member, err := s.connRepo.GetMemberByID(params.PromotedMemberID)
	if err != nil || member.RoomID != params.RoomID {
		return ErrMemberNotFound
	}

	r.ModeratorIDs = append(r.ModeratorIDs, params.PromotedMemberID)
	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastModeratorsUpdated(ctx, params.RoomID, r.ModeratorIDs)

	return nil
}

type DemoteMemberParams struct {
	DemotedMemberID string
	SenderID        string
	RoomID          string
}

func (s *service) DemoteMember(ctx context.Context, params *DemoteMemberParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.checkOwner(ctx, params.RoomID, params.SenderID)
	if err != nil {
		return err
	}

	if resolveRole(&r, params.DemotedMemberID) != RoleModerator {
		return fmt.Errorf("%w: member is not a moderator", ErrValidationError)
	}

	r.ModeratorIDs = slices.DeleteFunc(r.ModeratorIDs, func(id string) bool { return id == params.DemotedMemberID })
	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastModeratorsUpdated(ctx, params.RoomID, r.ModeratorIDs)

	return nil
}

type TogglePrivacyParams struct {
	Enabled  bool
	Password string
	SenderID string
	RoomID   string
}

// TogglePrivacy flips the room's privacy flag. Owner only; enabling requires a
// password, which is stored as a bcrypt hash.
func (s *service) TogglePrivacy(ctx context.Context, params *TogglePrivacyParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.checkOwner(ctx, params.RoomID, params.SenderID)
	if err != nil {
		return err
	}

	if params.Enabled {
		if params.Password == "" {
			return fmt.Errorf("%w: password is required to enable privacy", ErrValidationError)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		r.IsPrivate = true
		r.PasswordHash = string(hash)
	} else {
		r.IsPrivate = false
		r.PasswordHash = ""
	}

	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcast(ctx, params.RoomID, &Output{
		Type: "PRIVACY_UPDATED",
		Payload: map[string]any{
			"enabled": r.IsPrivate,
		},
	})

	return nil
}
