package dashboard

import "strings"

const (
	// DefaultLargeRoomCapacity is the capacity of a large room.
	DefaultLargeRoomCapacity = 8
	// DefaultRoomCapacity is the capacity of any other room.
	DefaultRoomCapacity = 3
)

// DefaultLargeRooms are the rooms with large capacity in the reference
// layout.
var DefaultLargeRooms = []string{"53", "54"}

// CapacityPolicy maps room identifiers to capacities. It is read-only after
// construction and safe for concurrent use.
type CapacityPolicy struct {
	large         map[string]struct{}
	largeCapacity int
	roomCapacity  int
}

// NewCapacityPolicy copies largeRooms into a new policy.
func NewCapacityPolicy(
	largeRooms []string,
	largeCapacity, roomCapacity int,
) CapacityPolicy {
	res := CapacityPolicy{
		large:         make(map[string]struct{}, len(largeRooms)),
		largeCapacity: largeCapacity,
		roomCapacity:  roomCapacity,
	}
	for _, r := range largeRooms {
		if r = strings.TrimSpace(r); r != "" {
			res.large[r] = struct{}{}
		}
	}
	return res
}

// DefaultCapacityPolicy returns the reference layout policy.
func DefaultCapacityPolicy() CapacityPolicy {
	return NewCapacityPolicy(
		DefaultLargeRooms, DefaultLargeRoomCapacity, DefaultRoomCapacity,
	)
}

// Capacity returns the capacity of a room.
func (p CapacityPolicy) Capacity(room string) int {
	if _, ok := p.large[strings.TrimSpace(room)]; ok {
		return p.largeCapacity
	}
	return p.roomCapacity
}

// TotalCapacity sums capacities of the given rooms.
func (p CapacityPolicy) TotalCapacity(rooms []string) int {
	var res int
	for _, r := range rooms {
		res += p.Capacity(r)
	}
	return res
}
