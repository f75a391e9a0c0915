package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/repository/connection"
)

type repo struct {
	connList map[*websocket.Conn]connection.Member
	idList   map[string]*websocket.Conn
	roomList map[string]map[string]struct{}
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		connList: make(map[*websocket.Conn]connection.Member),
		idList:   make(map[string]*websocket.Conn),
		roomList: make(map[string]map[string]struct{}),
		logger:   logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, member connection.Member) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "member_id", member.ID, "room_id", member.RoomID)
	if _, ok := r.connList[conn]; ok {
		return connection.ErrAlreadyExists
	}
	if _, ok := r.idList[member.ID]; ok {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = member
	r.idList[member.ID] = conn
	if r.roomList[member.RoomID] == nil {
		r.roomList[member.RoomID] = make(map[string]struct{})
	}
	r.roomList[member.RoomID][member.ID] = struct{}{}

	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) (connection.Member, error) {
	funcName := "connection.inmemory.RemoveByConn"
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.connList[conn]
	if !ok {
		r.logger.Debug(funcName, "error", connection.ErrNotFound)
		return connection.Member{}, connection.ErrNotFound
	}

	r.remove(conn, member)

	r.logger.Debug(funcName, "member_id", member.ID)
	return member, nil
}

func (r *repo) RemoveByMemberID(memberID string) (*websocket.Conn, error) {
	funcName := "connection.inmemory.RemoveByMemberID"
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.idList[memberID]
	if !ok {
		r.logger.Debug(funcName, "error", connection.ErrNotFound)
		return nil, connection.ErrNotFound
	}

	r.remove(conn, r.connList[conn])

	r.logger.Debug(funcName, "member_id", memberID)
	return conn, nil
}

// remove must be called with the write lock held.
func (r *repo) remove(conn *websocket.Conn, member connection.Member) {
	delete(r.connList, conn)
	delete(r.idList, member.ID)
	if members, ok := r.roomList[member.RoomID]; ok {
		delete(members, member.ID)
		if len(members) == 0 {
			delete(r.roomList, member.RoomID)
		}
	}
}

func (r *repo) GetMember(conn *websocket.Conn) (connection.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.connList[conn]
	if !ok {
		return connection.Member{}, connection.ErrNotFound
	}

	return member, nil
}

func (r *repo) GetMemberByID(memberID string) (connection.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[memberID]
	if !ok {
		return connection.Member{}, connection.ErrNotFound
	}

	return r.connList[conn], nil
}

func (r *repo) GetConn(memberID string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[memberID]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) GetConnsByRoomID(roomID string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(r.roomList[roomID]))
	for memberID := range r.roomList[roomID] {
		if conn, ok := r.idList[memberID]; ok {
			conns = append(conns, conn)
		}
	}

	return conns
}

func (r *repo) GetMembersByRoomID(roomID string) []connection.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]connection.Member, 0, len(r.roomList[roomID]))
	for memberID := range r.roomList[roomID] {
		if conn, ok := r.idList[memberID]; ok {
			members = append(members, r.connList[conn])
		}
	}

	return members
}
