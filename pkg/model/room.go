package model

const (
	RoomKindWorkstation = "workstation"
	RoomKindMeetingRoom = "meeting_room"
)

type Room struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name     string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Capacity int    `json:"capacity" bson:"capacity" validate:"required,min=1,max=1000"`
	Kind     string `json:"kind" bson:"kind" validate:"required,oneof=workstation meeting_room"`
}

type RoomUpdate struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Capacity *int   `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	Kind     string `json:"kind,omitempty" validate:"omitempty,oneof=workstation meeting_room"`
}
