package room

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/syncroom/server/internal/repository/room"
)

type Role int

const (
	RoleMember Role = iota
	RoleModerator
	RoleOwner
)

// resolveRole derives the member's role from the persisted room document. It
// is resolved fresh on every privileged command so a revoked moderator is
// rejected on their next attempt.
func resolveRole(r *room.Room, memberID string) Role {
	if r.OwnerID == memberID {
		return RoleOwner
	}
	if slices.Contains(r.ModeratorIDs, memberID) {
		return RoleModerator
	}

	return RoleMember
}

// getRoom reads the room document, translating the repository's not-found
// sentinel so commands racing a room deletion answer with ErrRoomNotFound
// instead of an opaque failure.
func (s *service) getRoom(ctx context.Context, roomID string) (room.Room, error) {
	r, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return room.Room{}, ErrRoomNotFound
		}
		return room.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	return r, nil
}

func (s *service) getRoomAndRole(ctx context.Context, roomID, memberID string) (room.Room, Role, error) {
	r, err := s.getRoom(ctx, roomID)
	if err != nil {
		return room.Room{}, RoleMember, err
	}

	return r, resolveRole(&r, memberID), nil
}

func (s *service) checkController(ctx context.Context, roomID, memberID string) (room.Room, error) {
	r, role, err := s.getRoomAndRole(ctx, roomID, memberID)
	if err != nil {
		return room.Room{}, err
	}

	if role < RoleModerator {
		return room.Room{}, ErrPermissionDenied
	}

	return r, nil
}

func (s *service) checkOwner(ctx context.Context, roomID, memberID string) (room.Room, error) {
	r, role, err := s.getRoomAndRole(ctx, roomID, memberID)
	if err != nil {
		return room.Room{}, err
	}

	if role != RoleOwner {
		return room.Room{}, ErrPermissionDenied
	}

	return r, nil
}
