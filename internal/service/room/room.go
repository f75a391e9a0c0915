package room

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/syncroom/server/internal/repository/connection"
	"github.com/syncroom/server/internal/repository/room"
)

const roomIDLength = 8

type CreateRoomSessionParams struct {
	Username string
}

func (s *service) CreateRoomSession(ctx context.Context, params *CreateRoomSessionParams) (string, error) {
	connectToken := uuid.NewString()
	if err := s.roomRepo.SetCreateRoomSession(ctx, connectToken, &room.CreateRoomSession{
		Username: params.Username,
	}); err != nil {
		return "", fmt.Errorf("failed to set create room session: %w", err)
	}

	return connectToken, nil
}

type JoinRoomSessionParams struct {
	Username string
	RoomID   string
	Password string
}

// JoinRoomSession validates access to the room before minting a connect token.
// Private rooms require the password here, not at websocket connect time.
func (s *service) JoinRoomSession(ctx context.Context, params *JoinRoomSessionParams) (string, error) {
	r, err := s.getRoom(ctx, params.RoomID)
	if err != nil {
		return "", err
	}

	if r.IsPrivate {
		if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(params.Password)); err != nil {
			return "", ErrWrongPassword
		}
	}

	connectToken := uuid.NewString()
	if err := s.roomRepo.SetJoinRoomSession(ctx, connectToken, &room.JoinRoomSession{
		Username: params.Username,
		RoomID:   params.RoomID,
	}); err != nil {
		return "", fmt.Errorf("failed to set join room session: %w", err)
	}

	return connectToken, nil
}

type CreateRoomParams struct {
	ConnectToken string
	Conn         *websocket.Conn
}

type CreateRoomResponse struct {
	MemberID string
	RoomID   string
}

func (s *service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	session, err := s.roomRepo.GetCreateRoomSession(ctx, params.ConnectToken)
	if err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to get create room session: %w", err)
	}

	memberID := uuid.NewString()
	roomID := s.generator.GenerateRandomString(roomIDLength)

	if err := s.roomRepo.SetRoom(ctx, &room.Room{
		ID:           roomID,
		OwnerID:      memberID,
		ModeratorIDs: []string{},
		Queue:        []room.Video{},
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	if err := s.connRepo.Add(params.Conn, connection.Member{
		ID:       memberID,
		Username: session.Username,
		RoomID:   roomID,
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to add conn: %w", err)
	}

	s.logger.InfoContext(ctx, "room created", "room_id", roomID, "owner_id", memberID)

	return CreateRoomResponse{
		MemberID: memberID,
		RoomID:   roomID,
	}, nil
}

type JoinRoomParams struct {
	ConnectToken string
	RoomID       string
	Conn         *websocket.Conn
}

type JoinRoomResponse struct {
	JoinedMember Member
	RoomID       string
	Queue        []Video
	CurrentVideo *CurrentVideo
	CurrentTime  float64
	Paused       bool
	ModeratorIDs []string
	OwnerID      string
	Members      []Member
}

// JoinRoom admits a validated session into the room and returns the full state
// snapshot the late joiner needs; the periodic reconciliation keeps them in
// step from there.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	session, err := s.roomRepo.GetJoinRoomSession(ctx, params.ConnectToken)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to get join room session: %w", err)
	}

	if session.RoomID != params.RoomID {
		return JoinRoomResponse{}, ErrRoomNotFound
	}

	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.getRoom(ctx, params.RoomID)
	if err != nil {
		return JoinRoomResponse{}, err
	}

	joinedMember := connection.Member{
		ID:       uuid.NewString(),
		Username: session.Username,
		RoomID:   params.RoomID,
	}
	if err := s.connRepo.Add(params.Conn, joinedMember); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to add conn: %w", err)
	}

	members := s.getMembers(params.RoomID)
	s.broadcast(ctx, params.RoomID, &Output{
		Type: "MEMBER_JOINED",
		Payload: map[string]any{
			"member":  Member{ID: joinedMember.ID, Username: joinedMember.Username},
			"members": members,
		},
	})

	return JoinRoomResponse{
		JoinedMember: Member{ID: joinedMember.ID, Username: joinedMember.Username},
		RoomID:       params.RoomID,
		Queue:        queueFromRepo(r.Queue),
		CurrentVideo: currentVideoFromRepo(r.CurrentVideo),
		CurrentTime:  s.computePosition(&r, rt),
		Paused:       rt.playback != nil && rt.playback.isPaused,
		ModeratorIDs: r.ModeratorIDs,
		OwnerID:      r.OwnerID,
		Members:      members,
	}, nil
}

type DeleteRoomParams struct {
	SenderID string
	RoomID   string
}

// DeleteRoom is the owner's exclusive teardown: the document is removed, every
// member notified and disconnected, and all ephemeral state discarded.
func (s *service) DeleteRoom(ctx context.Context, params *DeleteRoomParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()

	if _, err := s.checkOwner(ctx, params.RoomID, params.SenderID); err != nil {
		rt.mu.Unlock()
		return err
	}

	if err := s.roomRepo.RemoveRoom(ctx, params.RoomID); err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("failed to remove room: %w", err)
	}
	rt.mu.Unlock()

	s.broadcast(ctx, params.RoomID, &Output{Type: "ROOM_DELETED"})
	for _, conn := range s.connRepo.GetConnsByRoomID(params.RoomID) {
		if _, err := s.connRepo.RemoveByConn(conn); err == nil {
			s.sender.Close(conn, websocket.CloseNormalClosure)
		}
	}

	s.registry.remove(params.RoomID)

	s.logger.InfoContext(ctx, "room deleted", "room_id", params.RoomID)

	return nil
}

type DisconnectMemberResponse struct {
	Member Member
}

// DisconnectMember drops the member's connection. Room and playback state
// survive even with zero connected members, until the room is deleted.
func (s *service) DisconnectMember(ctx context.Context, conn *websocket.Conn) (DisconnectMemberResponse, error) {
	member, err := s.connRepo.RemoveByConn(conn)
	if err != nil {
		return DisconnectMemberResponse{}, ErrMemberNotFound
	}

	s.broadcast(ctx, member.RoomID, &Output{
		Type: "MEMBER_LEFT",
		Payload: map[string]any{
			"member_id": member.ID,
			"members":   s.getMembers(member.RoomID),
		},
	})

	return DisconnectMemberResponse{Member: Member{ID: member.ID, Username: member.Username}}, nil
}

type SendChatParams struct {
	Message  string
	SenderID string
	RoomID   string
}

// SendChat relays a chat line to the room. No history is stored.
func (s *service) SendChat(ctx context.Context, params *SendChatParams) error {
	if params.Message == "" {
		return fmt.Errorf("%w: message is empty", ErrValidationError)
	}
	if utf8.RuneCountInString(params.Message) > s.chatMessageLimit {
		return fmt.Errorf("%w: message is too long", ErrValidationError)
	}

	member, err := s.connRepo.GetMemberByID(params.SenderID)
	if err != nil || member.RoomID != params.RoomID {
		return ErrMemberNotFound
	}

	s.broadcast(ctx, params.RoomID, &Output{
		Type: "CHAT_MESSAGE",
		Payload: map[string]any{
			"member":  Member{ID: member.ID, Username: member.Username},
			"message": params.Message,
		},
	})

	return nil
}

func (s *service) getMembers(roomID string) []Member {
	connMembers := s.connRepo.GetMembersByRoomID(roomID)
	members := make([]Member, 0, len(connMembers))
	for _, m := range connMembers {
		members = append(members, Member{ID: m.ID, Username: m.Username})
	}

	return members
}
