package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) promote(t *testing.T, roomID, ownerID, memberID string) {
	t.Helper()
	require.NoError(t, e.svc.PromoteMember(context.Background(), &PromoteMemberParams{
		PromotedMemberID: memberID,
		SenderID:         ownerID,
		RoomID:           roomID,
	}))
}

func TestKickAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	mod, _ := env.joinRoom(t, roomID, "mod", "")
	member, _ := env.joinRoom(t, roomID, "member", "")
	other, otherConn := env.joinRoom(t, roomID, "other", "")
	env.promote(t, roomID, ownerID, mod.JoinedMember.ID)

	kick := func(senderID, targetID string) error {
		return env.svc.KickMember(ctx, &KickMemberParams{
			KickedMemberID: targetID,
			SenderID:       senderID,
			RoomID:         roomID,
		})
	}

	require.ErrorIs(t, kick(member.JoinedMember.ID, other.JoinedMember.ID), ErrPermissionDenied)
	require.ErrorIs(t, kick(mod.JoinedMember.ID, ownerID), ErrPermissionDenied)
	require.ErrorIs(t, kick(ownerID, ownerID), ErrValidationError)

	env.sender.clear()
	require.NoError(t, kick(mod.JoinedMember.ID, other.JoinedMember.ID))
	require.Len(t, env.sender.outputs("KICKED"), 1)
	require.Len(t, env.sender.closed, 1)
	assert.Same(t, otherConn, env.sender.closed[0])

	kicked := env.sender.outputs("MEMBER_KICKED")
	require.NotEmpty(t, kicked)
	assert.Equal(t, other.JoinedMember.ID, kicked[0].Payload.(map[string]any)["member_id"])
}

func TestKickModeratorIsOwnersRight(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	modA, _ := env.joinRoom(t, roomID, "mod-a", "")
	modB, _ := env.joinRoom(t, roomID, "mod-b", "")
	env.promote(t, roomID, ownerID, modA.JoinedMember.ID)
	env.promote(t, roomID, ownerID, modB.JoinedMember.ID)

	err := env.svc.KickMember(ctx, &KickMemberParams{
		KickedMemberID: modB.JoinedMember.ID,
		SenderID:       modA.JoinedMember.ID,
		RoomID:         roomID,
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	env.sender.clear()
	require.NoError(t, env.svc.KickMember(ctx, &KickMemberParams{
		KickedMemberID: modB.JoinedMember.ID,
		SenderID:       ownerID,
		RoomID:         roomID,
	}))

	// the kick demotes first, so the moderator set is announced without the id
	updated := env.sender.outputs("MODERATORS_UPDATED")
	require.NotEmpty(t, updated)
	ids := updated[0].Payload.(map[string]any)["moderator_ids"].([]string)
	assert.Equal(t, []string{modA.JoinedMember.ID}, ids)
}

func TestPromoteAndDemoteRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	mod, _ := env.joinRoom(t, roomID, "mod", "")
	member, _ := env.joinRoom(t, roomID, "member", "")
	env.promote(t, roomID, ownerID, mod.JoinedMember.ID)

	// moderators cannot grant moderator rights
	err := env.svc.PromoteMember(ctx, &PromoteMemberParams{
		PromotedMemberID: member.JoinedMember.ID,
		SenderID:         mod.JoinedMember.ID,
		RoomID:           roomID,
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	err = env.svc.PromoteMember(ctx, &PromoteMemberParams{
		PromotedMemberID: mod.JoinedMember.ID,
		SenderID:         ownerID,
		RoomID:           roomID,
	})
	require.ErrorIs(t, err, ErrValidationError)

	err = env.svc.PromoteMember(ctx, &PromoteMemberParams{
		PromotedMemberID: ownerID,
		SenderID:         ownerID,
		RoomID:           roomID,
	})
	require.ErrorIs(t, err, ErrValidationError)

	err = env.svc.PromoteMember(ctx, &PromoteMemberParams{
		PromotedMemberID: "not-connected",
		SenderID:         ownerID,
		RoomID:           roomID,
	})
	require.ErrorIs(t, err, ErrMemberNotFound)

	err = env.svc.DemoteMember(ctx, &DemoteMemberParams{
		DemotedMemberID: member.JoinedMember.ID,
		SenderID:        ownerID,
		RoomID:          roomID,
	})
	require.ErrorIs(t, err, ErrValidationError)

	env.sender.clear()
	require.NoError(t, env.svc.DemoteMember(ctx, &DemoteMemberParams{
		DemotedMemberID: mod.JoinedMember.ID,
		SenderID:        ownerID,
		RoomID:          roomID,
	}))
	updated := env.sender.outputs("MODERATORS_UPDATED")
	require.NotEmpty(t, updated)
	assert.Empty(t, updated[0].Payload.(map[string]any)["moderator_ids"])
}

func TestTogglePrivacy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	member, _ := env.joinRoom(t, roomID, "member", "")

	err := env.svc.TogglePrivacy(ctx, &TogglePrivacyParams{
		Enabled:  true,
		Password: "hunter2",
		SenderID: member.JoinedMember.ID,
		RoomID:   roomID,
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	// enabling without a password fails and leaves the room public
	err = env.svc.TogglePrivacy(ctx, &TogglePrivacyParams{
		Enabled:  true,
		SenderID: ownerID,
		RoomID:   roomID,
	})
	require.ErrorIs(t, err, ErrValidationError)
	_, err = env.svc.JoinRoomSession(ctx, &JoinRoomSessionParams{Username: "guest", RoomID: roomID})
	require.NoError(t, err)

	require.NoError(t, env.svc.TogglePrivacy(ctx, &TogglePrivacyParams{
		Enabled:  true,
		Password: "hunter2",
		SenderID: ownerID,
		RoomID:   roomID,
	}))
	updated := env.sender.outputs("PRIVACY_UPDATED")
	require.NotEmpty(t, updated)
	assert.Equal(t, true, updated[0].Payload.(map[string]any)["enabled"])

	_, err = env.svc.JoinRoomSession(ctx, &JoinRoomSessionParams{Username: "guest", RoomID: roomID, Password: "wrong"})
	require.ErrorIs(t, err, ErrWrongPassword)

	guest, _ := env.joinRoom(t, roomID, "guest", "hunter2")
	assert.Equal(t, "guest", guest.JoinedMember.Username)

	require.NoError(t, env.svc.TogglePrivacy(ctx, &TogglePrivacyParams{
		Enabled:  false,
		SenderID: ownerID,
		RoomID:   roomID,
	}))
	_, err = env.svc.JoinRoomSession(ctx, &JoinRoomSessionParams{Username: "late", RoomID: roomID})
	require.NoError(t, err)
}
