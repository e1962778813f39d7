package island

// IslandData is a read-only snapshot of the island config plus the loaded
// rooms, used by the host simulation for connectivity queries. It is built
// fresh from the shared state on demand, never kept live.
type IslandData struct {
	Island Island
	Rooms  []Room
}

// NewIslandData builds a snapshot from a config and room list.
func NewIslandData(isl Island, rooms []Room) *IslandData {
	return &IslandData{Island: isl, Rooms: rooms}
}

// RoomsAreAdjacent reports whether two loaded rooms share a face. A room is
// never adjacent to itself, and unknown room ids are silently not adjacent.
// When duplicate room ids exist, the first registration wins for lookup.
func (d *IslandData) RoomsAreAdjacent(a, b RoomID) bool {
	if a == b {
		return false
	}
	roomA := d.findRoom(a)
	roomB := d.findRoom(b)
	if roomA == nil || roomB == nil {
		return false
	}
	return AreAdjacent(roomA, roomB)
}

// DockRoom returns the configured entry room, or nil if it has not been
// registered.
func (d *IslandData) DockRoom() *Room {
	return d.findRoom(d.Island.DockRoomID)
}

func (d *IslandData) findRoom(id RoomID) *Room {
	for i := range d.Rooms {
		if d.Rooms[i].RoomID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}
